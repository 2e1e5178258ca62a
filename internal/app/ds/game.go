package ds

// Таблица игр - справочная информация каталога
type Game struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(100);not null"`
	Slug        string  `gorm:"type:varchar(50);unique;not null"` // minecraft, rust, valheim...
	Description string  `gorm:"type:text"`
	ImageURL    *string `gorm:"type:varchar(255)"` // Nullable
	MinRAMMb    int     `gorm:"type:int;default:1024"`
	Enabled     bool    `gorm:"type:boolean;default:true;not null"`
}

// Вариант установки игры (docker образ + стартовая команда для панели)
type GameData struct {
	ID             uint   `gorm:"primaryKey"`
	GameID         uint   `gorm:"not null;index"`
	Name           string `gorm:"type:varchar(100);not null"` // например "Paper 1.21"
	DockerImage    string `gorm:"type:varchar(255);not null"`
	StartupCommand string `gorm:"type:text"`

	Game Game `gorm:"foreignKey:GameID"`
}

// Готовый пакет: игра + фиксированная конфигурация железа в локации.
// Цена пакета не хранится, всегда считается pricing-движком.
type GamePackage struct {
	ID           uint   `gorm:"primaryKey"`
	GameID       uint   `gorm:"not null;index"`
	LocationID   uint   `gorm:"not null;index"`
	Name         string `gorm:"type:varchar(100);not null"`
	CPUPercent   int    `gorm:"type:int;not null"` // 100 = 1 vCore
	RAMMb        int    `gorm:"type:int;not null"`
	DiskMb       int    `gorm:"type:int;not null"`
	DurationDays int    `gorm:"type:int;not null"`
	Enabled      bool   `gorm:"type:boolean;default:true;not null"`

	Game     Game     `gorm:"foreignKey:GameID"`
	Location Location `gorm:"foreignKey:LocationID"`
}
