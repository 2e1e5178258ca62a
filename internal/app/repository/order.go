package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Методы для заказов

var (
	ErrOrderNotFound    = errors.New("заказ не найден")
	ErrFreeLimitReached = errors.New("достигнут лимит бесплатных серверов")
	ErrWrongOrderStatus = errors.New("недопустимый статус заказа для этой операции")
)

// CreateOrder сохраняет новый платный заказ в статусе PENDING.
// Цена и ключ идемпотентности уже должны быть заполнены вызывающим.
func (r *Repository) CreateOrder(order *ds.GameServerOrder) error {
	return r.db.Create(order).Error
}

// CreateFreeOrderAtomic создаёт бесплатный заказ с проверкой лимита в
// одной транзакции. Строка пользователя блокируется FOR UPDATE, поэтому
// два одновременных запроса одного пользователя не пройдут проверку оба.
func (r *Repository) CreateFreeOrderAtomic(order *ds.GameServerOrder, maxFree int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user ds.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, order.UserID).Error; err != nil {
			return err
		}

		var count int64
		err := tx.Model(&ds.GameServerOrder{}).
			Where("user_id = ? AND type = ? AND status NOT IN ?",
				order.UserID, ds.OrderTypeFreeServer,
				[]string{ds.OrderStatusCreationFailed, ds.OrderStatusDeleted, ds.OrderStatusExpired}).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count >= int64(maxFree) {
			return ErrFreeLimitReached
		}

		return tx.Create(order).Error
	})
}

// AttachPaymentSession записывает id платёжной сессии на заказ
func (r *Repository) AttachPaymentSession(orderID uint, sessionID string) error {
	result := r.db.Model(&ds.GameServerOrder{}).
		Where("id = ? AND status = ?", orderID, ds.OrderStatusPending).
		Update("stripe_session_id", sessionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWrongOrderStatus
	}
	return nil
}

func (r *Repository) GetOrderByID(id uint) (*ds.GameServerOrder, error) {
	var order ds.GameServerOrder
	err := r.db.Preload("User").Preload("CreationGameData").Preload("CreationGameData.Game").
		Where("id = ? AND status != ?", id, ds.OrderStatusDeleted).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *Repository) GetOrderBySessionID(sessionID string) (*ds.GameServerOrder, error) {
	var order ds.GameServerOrder
	err := r.db.Preload("User").Preload("CreationGameData").Preload("CreationGameData.Game").
		Where("stripe_session_id = ?", sessionID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrders возвращает заказы с фильтрами; creatorID nil - все заказы
func (r *Repository) GetOrders(status string, creatorID *uint) ([]ds.GameServerOrder, error) {
	query := r.db.Preload("User").Where("status != ?", ds.OrderStatusDeleted)

	if status != "" {
		query = query.Where("status = ?", status)
	}
	if creatorID != nil {
		query = query.Where("user_id = ?", *creatorID)
	}

	var orders []ds.GameServerOrder
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// MarkOrderPaid переводит PENDING -> PAID. Повторный вызов для уже
// оплаченного заказа не считается ошибкой (идемпотентность webhook).
func (r *Repository) MarkOrderPaid(orderID uint, paidAt time.Time) (bool, error) {
	result := r.db.Model(&ds.GameServerOrder{}).
		Where("id = ? AND status = ?", orderID, ds.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":  ds.OrderStatusPaid,
			"paid_at": paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkOrderActive привязывает провиженный сервер и завершает заказ
func (r *Repository) MarkOrderActive(orderID, serverID uint) error {
	result := r.db.Model(&ds.GameServerOrder{}).
		Where("id = ? AND status = ?", orderID, ds.OrderStatusPaid).
		Updates(map[string]interface{}{
			"status":    ds.OrderStatusActive,
			"server_id": serverID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWrongOrderStatus
	}
	return nil
}

// MarkOrderCreationFailed фиксирует провал провижининга; заказ остаётся
// в истории для ручной сверки
func (r *Repository) MarkOrderCreationFailed(orderID uint) error {
	return r.db.Model(&ds.GameServerOrder{}).
		Where("id = ?", orderID).
		Update("status", ds.OrderStatusCreationFailed).Error
}

// DeleteOrder логически удаляет заказ; разрешено только для PENDING
func (r *Repository) DeleteOrder(orderID, userID uint) error {
	result := r.db.Model(&ds.GameServerOrder{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, ds.OrderStatusPending).
		Update("status", ds.OrderStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrWrongOrderStatus
	}
	return nil
}

// GetLatestPaidOrderForServer последний оплаченный заказ по серверу
// (для генерации счёта)
func (r *Repository) GetLatestPaidOrderForServer(serverID uint) (*ds.GameServerOrder, error) {
	var order ds.GameServerOrder
	err := r.db.Preload("User").Preload("CreationGameData").Preload("CreationGameData.Game").
		Where("server_id = ? AND status IN ?", serverID,
			[]string{ds.OrderStatusPaid, ds.OrderStatusActive}).
		Order("paid_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
