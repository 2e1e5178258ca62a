package ds

import "time"

// Статусы сервера
const (
	ServerStatusInstalling = "installing"
	ServerStatusRunning    = "running"
	ServerStatusSuspended  = "suspended"
)

// Провиженный игровой сервер (зеркало записи во внешней хостинг-панели)
type GameServer struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index"`
	PanelIdentifier string `gorm:"type:varchar(50);unique;not null"` // идентификатор во внешней панели
	Name            string `gorm:"type:varchar(100);not null"`
	LocationID      uint   `gorm:"not null"`
	GameDataID      uint   `gorm:"not null"`

	CPUPercent int `gorm:"type:int;not null"`
	RAMMb      int `gorm:"type:int;not null"`
	DiskMb     int `gorm:"type:int;not null"`

	FreeServer bool      `gorm:"type:boolean;default:false;not null"`
	Status     string    `gorm:"type:varchar(20);not null"`
	ExpiresAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`

	User     User     `gorm:"foreignKey:UserID"`
	Location Location `gorm:"foreignKey:LocationID"`
	GameData GameData `gorm:"foreignKey:GameDataID"`
}
