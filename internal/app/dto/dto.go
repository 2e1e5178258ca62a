package dto

import (
	"encoding/json"
	"time"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Игры (Games) ============

type GameResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ImageURL    *string `json:"image_url"`
	MinRAMMb    int     `json:"min_ram_mb"`
}

type GameListResponse struct {
	Games []GameResponse `json:"games"`
	Total int            `json:"total"`
}

type GameDataResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DockerImage string `json:"docker_image"`
}

type CreateGameRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"required,min=2,max=50"`
	Description string `json:"description"`
	MinRAMMb    int    `json:"min_ram_mb" binding:"omitempty,gt=0"`
}

type UpdateGameRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description"`
	MinRAMMb    *int    `json:"min_ram_mb" binding:"omitempty,gt=0"`
}

// ============ Локации и пакеты ============

type LocationResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	Region            string `json:"region"`
	PricePerCoreCents int64  `json:"price_per_core_cents"`
	PricePerGbCents   int64  `json:"price_per_gb_cents"`
}

type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

// PackageResponse пакет с ценой, рассчитанной на момент запроса
type PackageResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	GameID       uint   `json:"game_id"`
	GameName     string `json:"game_name"`
	LocationID   uint   `json:"location_id"`
	LocationName string `json:"location_name"`
	CPUPercent   int    `json:"cpu_percent"`
	RAMMb        int    `json:"ram_mb"`
	DiskMb       int    `json:"disk_mb"`
	DurationDays int    `json:"duration_days"`
	PriceCents   int64  `json:"price_cents"`
}

type PackageListResponse struct {
	Packages []PackageResponse `json:"packages"`
	Total    int               `json:"total"`
}

// ============ Расчёт цены (калькулятор) ============

type QuoteRequest struct {
	CPUPercent   int  `json:"cpu_percent" binding:"required,gt=0"`
	RAMMb        int  `json:"ram_mb" binding:"required,gt=0"`
	DiskMb       int  `json:"disk_mb" binding:"required,gt=0"`
	DurationDays int  `json:"duration_days" binding:"required,gt=0"`
	LocationID   uint `json:"location_id" binding:"required"`
	// Для котировки апгрейда
	ServerID uint `json:"server_id"`
}

type QuoteResponse struct {
	PriceCents int64 `json:"price_cents"`
}

// ============ Заказы (Checkout) ============

type CheckoutRequest struct {
	Type         string          `json:"type" binding:"required,oneof=NEW UPGRADE TO_PAYED PACKAGE FREE_SERVER"`
	CPUPercent   int             `json:"cpu_percent"`
	RAMMb        int             `json:"ram_mb"`
	DiskMb       int             `json:"disk_mb"`
	DurationDays int             `json:"duration_days"`
	LocationID   uint            `json:"location_id"`
	PackageID    uint            `json:"package_id"`
	ServerID     uint            `json:"server_id"`
	GameDataID   uint            `json:"game_data_id"`
	GameConfig   json.RawMessage `json:"game_config"`
	ServerName   string          `json:"server_name" binding:"omitempty,max=100"`
}

type OrderResponse struct {
	ID           uint       `json:"id"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	CPUPercent   int        `json:"cpu_percent"`
	RAMMb        int        `json:"ram_mb"`
	DiskMb       int        `json:"disk_mb"`
	DurationDays int        `json:"duration_days"`
	PriceCents   int64      `json:"price_cents"`
	GameName     string     `json:"game_name,omitempty"`
	ServerID     *uint      `json:"server_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	Creator      string     `json:"creator,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type CheckoutResponse struct {
	Order        OrderResponse `json:"order"`
	SessionID    string        `json:"session_id,omitempty"`
	ClientSecret string        `json:"client_secret,omitempty"`
}

// ============ Серверы ============

type ServerResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	GameName     string    `json:"game_name"`
	LocationName string    `json:"location_name"`
	CPUPercent   int       `json:"cpu_percent"`
	RAMMb        int       `json:"ram_mb"`
	DiskMb       int       `json:"disk_mb"`
	FreeServer   bool      `json:"free_server"`
	Status       string    `json:"status"`
	ExpiresAt    time.Time `json:"expires_at"`
	// Живые данные из панели (только в детальном ответе)
	IP   string `json:"ip,omitempty"`
	Port int    `json:"port,omitempty"`
}

type ServerListResponse struct {
	Servers []ServerResponse `json:"servers"`
	Total   int              `json:"total"`
}

type RenameServerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type PowerRequest struct {
	Signal string `json:"signal" binding:"required,oneof=start stop restart kill"`
}

type BackupResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Bytes     int64     `json:"bytes"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Пользователи (Users) ============

type UserResponse struct {
	ID       uint   `json:"id"`
	Login    string `json:"login"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     int    `json:"role"`
}

type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}
