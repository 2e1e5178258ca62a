package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для провиженных серверов

var ErrServerNotFound = errors.New("сервер не найден")

func (r *Repository) CreateServer(server *ds.GameServer) error {
	return r.db.Create(server).Error
}

func (r *Repository) GetServerByID(id uint) (*ds.GameServer, error) {
	var server ds.GameServer
	err := r.db.Preload("Location").Preload("GameData").Preload("GameData.Game").
		First(&server, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, err
	}
	return &server, nil
}

func (r *Repository) GetServerByPanelIdentifier(identifier string) (*ds.GameServer, error) {
	var server ds.GameServer
	err := r.db.Preload("Location").Preload("GameData").Preload("GameData.Game").
		Where("panel_identifier = ?", identifier).
		First(&server).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, err
	}
	return &server, nil
}

func (r *Repository) GetUserServers(userID uint) ([]ds.GameServer, error) {
	var servers []ds.GameServer
	err := r.db.Preload("Location").Preload("GameData").Preload("GameData.Game").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&servers).Error
	return servers, err
}

// UpdateServerBuild применяет оплаченный апгрейд железа
func (r *Repository) UpdateServerBuild(id uint, cpuPercent, ramMb, diskMb int, expiresAt time.Time) error {
	return r.db.Model(&ds.GameServer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cpu_percent": cpuPercent,
			"ram_mb":      ramMb,
			"disk_mb":     diskMb,
			"expires_at":  expiresAt,
		}).Error
}

// MarkServerPaid снимает признак бесплатного сервера (после TO_PAYED)
func (r *Repository) MarkServerPaid(id uint, expiresAt time.Time) error {
	return r.db.Model(&ds.GameServer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"free_server": false,
			"expires_at":  expiresAt,
		}).Error
}

func (r *Repository) RenameServer(id, userID uint, name string) error {
	result := r.db.Model(&ds.GameServer{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServerNotFound
	}
	return nil
}

func (r *Repository) UpdateServerStatus(id uint, status string) error {
	return r.db.Model(&ds.GameServer{}).
		Where("id = ?", id).
		Update("status", status).Error
}
