package ds

// Локация (performance group): регион размещения с ценами за единицу ресурса.
// Цены вынесены в отдельные таблицы, чтение локации всегда идёт с Preload обеих.
type Location struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"type:varchar(100);not null"`
	Region  string `gorm:"type:varchar(50)"`
	Enabled bool   `gorm:"type:boolean;default:true;not null"`

	CPU CPUPrice `gorm:"foreignKey:LocationID"`
	RAM RAMPrice `gorm:"foreignKey:LocationID"`
}

// Цена за одно vCore ядро (в центах за расчётный период 30 дней)
type CPUPrice struct {
	ID                uint  `gorm:"primaryKey"`
	LocationID        uint  `gorm:"not null;uniqueIndex"`
	PricePerCoreCents int64 `gorm:"type:bigint;not null"`
}

// Цена за 1 GB RAM (в центах за расчётный период 30 дней)
type RAMPrice struct {
	ID              uint  `gorm:"primaryKey"`
	LocationID      uint  `gorm:"not null;uniqueIndex"`
	PricePerGbCents int64 `gorm:"type:bigint;not null"`
}
