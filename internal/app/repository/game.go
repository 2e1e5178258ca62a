package repository

import (
	"backend/internal/app/ds"
)

// Методы для каталога игр

func (r *Repository) GetAllGames() ([]ds.Game, error) {
	var games []ds.Game
	err := r.db.Where("enabled = ?", true).Order("name").Find(&games).Error
	return games, err
}

func (r *Repository) SearchGamesByName(name string) ([]ds.Game, error) {
	var games []ds.Game
	err := r.db.Where("name ILIKE ? AND enabled = ?", "%"+name+"%", true).Find(&games).Error
	return games, err
}

func (r *Repository) GetGameByID(id uint) (*ds.Game, error) {
	var game ds.Game
	err := r.db.Where("id = ? AND enabled = ?", id, true).First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *Repository) GameExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Game{}).Where("id = ? AND enabled = ?", id, true).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateGame(name, slug, description string, minRAMMb int) (*ds.Game, error) {
	game := ds.Game{
		Name:        name,
		Slug:        slug,
		Description: description,
		MinRAMMb:    minRAMMb,
		Enabled:     true,
	}
	err := r.db.Create(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *Repository) UpdateGame(id uint, name, description *string, minRAMMb *int) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if minRAMMb != nil {
		updates["min_ram_mb"] = *minRAMMb
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Game{}).Where("id = ?", id).Updates(updates).Error
}

// Логическое удаление игры из каталога
func (r *Repository) DeleteGame(id uint) error {
	return r.db.Model(&ds.Game{}).Where("id = ?", id).Update("enabled", false).Error
}

func (r *Repository) UpdateGameImage(id uint, imageURL string) error {
	return r.db.Model(&ds.Game{}).Where("id = ?", id).Update("image_url", imageURL).Error
}

func (r *Repository) DeleteGameImage(id uint) error {
	return r.db.Model(&ds.Game{}).Where("id = ?", id).Update("image_url", nil).Error
}

// GetGameData возвращает вариант установки вместе с игрой
func (r *Repository) GetGameData(id uint) (*ds.GameData, error) {
	var gameData ds.GameData
	err := r.db.Preload("Game").First(&gameData, id).Error
	if err != nil {
		return nil, err
	}
	return &gameData, nil
}

func (r *Repository) GetGameDataForGame(gameID uint) ([]ds.GameData, error) {
	var list []ds.GameData
	err := r.db.Where("game_id = ?", gameID).Find(&list).Error
	return list, err
}

// GetEnabledPackage возвращает пакет с игрой и локацией (цены предзагружены)
func (r *Repository) GetEnabledPackage(id uint) (*ds.GamePackage, error) {
	var pkg ds.GamePackage
	err := r.db.Preload("Game").
		Preload("Location").Preload("Location.CPU").Preload("Location.RAM").
		Where("id = ? AND enabled = ?", id, true).
		First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *Repository) GetAllPackages() ([]ds.GamePackage, error) {
	var packages []ds.GamePackage
	err := r.db.Preload("Game").
		Preload("Location").Preload("Location.CPU").Preload("Location.RAM").
		Where("enabled = ?", true).
		Find(&packages).Error
	return packages, err
}
