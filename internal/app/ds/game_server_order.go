package ds

import (
	"time"

	"github.com/google/uuid"
)

// Типы заказа (дискриминатор)
const (
	OrderTypeNew        = "NEW"         // новый платный сервер
	OrderTypeUpgrade    = "UPGRADE"     // апгрейд железа существующего сервера
	OrderTypeToPayed    = "TO_PAYED"    // перевод бесплатного сервера на платный тариф
	OrderTypePackage    = "PACKAGE"     // готовый пакет
	OrderTypeFreeServer = "FREE_SERVER" // бесплатный сервер
)

// Статусы заказа
const (
	OrderStatusPending        = "PENDING"
	OrderStatusPaid           = "PAID"
	OrderStatusActive         = "ACTIVE"
	OrderStatusExpired        = "EXPIRED"
	OrderStatusCreationFailed = "CREATION_FAILED"
	OrderStatusDeleted        = "DELETED"
)

// Таблица заказов на аренду/изменение игровых серверов
type GameServerOrder struct {
	ID     uint   `gorm:"primaryKey"`
	Type   string `gorm:"type:varchar(20);not null"`
	Status string `gorm:"type:varchar(20);not null;index"`
	UserID uint   `gorm:"not null;index"`

	// Запрошенное железо
	CPUPercent   int `gorm:"type:int;not null"`
	RAMMb        int `gorm:"type:int;not null"`
	DiskMb       int `gorm:"type:int;not null"`
	DurationDays int `gorm:"type:int;not null"`

	// Цена фиксируется при создании заказа и больше не пересчитывается
	PriceCents int64 `gorm:"type:bigint;not null"`

	// Стабильный ключ идемпотентности: генерируется до первого обращения
	// к платёжному провайдеру, при ретрае переиспользуется
	IdempotencyKey  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StripeSessionID *string   `gorm:"type:varchar(255);index"`

	CreationGameDataID uint  `gorm:"not null"`
	CreationLocationID uint  `gorm:"not null"`
	ServerID           *uint `gorm:"default:null;index"` // для UPGRADE / TO_PAYED

	// Игровая конфигурация (проверенная на границе, хранится как есть)
	GameConfig []byte `gorm:"type:jsonb"`

	CreatedAt time.Time  `gorm:"not null"`
	PaidAt    *time.Time `gorm:"default:null"`
	ExpiresAt *time.Time `gorm:"default:null"`

	User             User     `gorm:"foreignKey:UserID"`
	CreationGameData GameData `gorm:"foreignKey:CreationGameDataID"`
	CreationLocation Location `gorm:"foreignKey:CreationLocationID"`
}

// IsTerminalOrderStatus сообщает, достиг ли заказ конечного состояния
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCreationFailed || status == OrderStatusDeleted || status == OrderStatusExpired
}
