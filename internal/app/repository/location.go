package repository

import (
	"errors"
	"fmt"

	"backend/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для локаций (справочник цен)

var ErrLocationNotFound = errors.New("локация не найдена или отключена")

// GetEnabledLocation читает локацию вместе с обеими ценовыми записями.
// Используется перед любым расчётом цены: без CPU/RAM записей расчёт невозможен.
func (r *Repository) GetEnabledLocation(id uint) (*ds.Location, error) {
	var location ds.Location
	err := r.db.Preload("CPU").Preload("RAM").
		Where("id = ? AND enabled = ?", id, true).
		First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if location.CPU.ID == 0 || location.RAM.ID == 0 {
		return nil, fmt.Errorf("у локации %d нет ценовых записей", id)
	}

	return &location, nil
}

func (r *Repository) GetAllLocations() ([]ds.Location, error) {
	var locations []ds.Location
	err := r.db.Preload("CPU").Preload("RAM").
		Where("enabled = ?", true).
		Order("name").
		Find(&locations).Error
	return locations, err
}
