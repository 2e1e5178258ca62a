package ds

import "errors"

// HardwareConfig выбранная пользователем конфигурация железа.
// Создаётся на стороне клиента, передаётся в checkout по значению и
// дальше не изменяется.
type HardwareConfig struct {
	CPUPercent   int  `json:"cpu_percent"`   // 100 = 1 vCore
	RAMMb        int  `json:"ram_mb"`
	DiskMb       int  `json:"disk_mb"`
	DurationDays int  `json:"duration_days"`
	LocationID   uint `json:"location_id"`
}

var (
	ErrInvalidCPU      = errors.New("cpu_percent должен быть больше нуля")
	ErrInvalidRAM      = errors.New("ram_mb должен быть больше нуля")
	ErrInvalidDisk     = errors.New("disk_mb должен быть больше нуля")
	ErrInvalidDuration = errors.New("duration_days должен быть больше нуля")
	ErrInvalidLocation = errors.New("не указана локация")
)

// Validate проверяет величины до любого обращения к pricing-движку.
// Движок принимает только уже проверенные неотрицательные значения.
func (h HardwareConfig) Validate() error {
	if h.CPUPercent <= 0 {
		return ErrInvalidCPU
	}
	if h.RAMMb <= 0 {
		return ErrInvalidRAM
	}
	if h.DiskMb <= 0 {
		return ErrInvalidDisk
	}
	if h.DurationDays <= 0 {
		return ErrInvalidDuration
	}
	if h.LocationID == 0 {
		return ErrInvalidLocation
	}
	return nil
}
