package handler

import (
	"errors"
	"net/http"
	"strconv"

	"backend/internal/app/checkout"
	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ============ ЗАКАЗЫ И CHECKOUT ============

func orderToDTO(o ds.GameServerOrder) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID,
		Type:         o.Type,
		Status:       o.Status,
		CPUPercent:   o.CPUPercent,
		RAMMb:        o.RAMMb,
		DiskMb:       o.DiskMb,
		DurationDays: o.DurationDays,
		PriceCents:   o.PriceCents,
		ServerID:     o.ServerID,
		CreatedAt:    o.CreatedAt,
		PaidAt:       o.PaidAt,
	}
	if o.CreationGameData.Game.Name != "" {
		resp.GameName = o.CreationGameData.Game.Name
	}
	if o.User.Login != "" {
		resp.Creator = o.User.Login
	}
	return resp
}

// checkoutStatusCode переводит ошибку жизненного цикла в HTTP статус
func checkoutStatusCode(err error) int {
	switch {
	case errors.Is(err, repository.ErrLocationNotFound),
		errors.Is(err, repository.ErrServerNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, checkout.ErrNotYourServer),
		errors.Is(err, repository.ErrFreeLimitReached):
		return http.StatusForbidden
	case errors.Is(err, checkout.ErrServerNotFree),
		errors.Is(err, checkout.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, checkout.ErrPaymentUnavailable),
		errors.Is(err, checkout.ErrProvisioningFailed):
		return http.StatusBadGateway
	}
	return http.StatusBadRequest
}

// CreateCheckout оформляет заказ
// @Summary Оформление заказа
// @Description Создаёт заказ выбранного типа; для платных типов возвращает платёжную сессию
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Параметры заказа"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/checkout [post]
func (h *APIHandler) CreateCheckout(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	var request dto.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Repository.GetUserByID(userID)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не найден")
		return
	}

	result, err := h.Checkout.CreateOrder(c.Request.Context(), user, checkout.Request{
		Type: request.Type,
		Hardware: ds.HardwareConfig{
			CPUPercent:   request.CPUPercent,
			RAMMb:        request.RAMMb,
			DiskMb:       request.DiskMb,
			DurationDays: request.DurationDays,
			LocationID:   request.LocationID,
		},
		PackageID:    request.PackageID,
		ServerID:     request.ServerID,
		GameDataID:   request.GameDataID,
		DurationDays: request.DurationDays,
		GameConfig:   request.GameConfig,
		ServerName:   request.ServerName,
	})
	if err != nil {
		h.errorResponse(c, checkoutStatusCode(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, dto.CheckoutResponse{
		Order:        orderToDTO(*result.Order),
		SessionID:    result.SessionID,
		ClientSecret: result.ClientSecret,
	})
}

// RetryPaymentSession повторно создаёт платёжную сессию для PENDING заказа
// @Summary Повтор платёжной сессии
// @Description Создаёт платёжную сессию заново после сбоя провайдера; цена не пересчитывается
// @Tags Checkout
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.CheckoutResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id}/session [post]
func (h *APIHandler) RetryPaymentSession(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказа")
		return
	}

	order, err := h.Repository.GetOrderByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return
	}
	if order.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Заказ принадлежит другому пользователю")
		return
	}

	result, err := h.Checkout.EnsurePaymentSession(c.Request.Context(), order)
	if err != nil {
		h.errorResponse(c, checkoutStatusCode(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		Order:        orderToDTO(*result.Order),
		SessionID:    result.SessionID,
		ClientSecret: result.ClientSecret,
	})
}

// GetOrders получает список заказов
// @Summary Список заказов
// @Description Возвращает заказы пользователя; менеджер и админ видят все заказы
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Success 200 {object} dto.OrderListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	status := c.Query("status")

	// Клиент видит только свои заказы
	var creatorID *uint
	if userRole == role.Customer {
		creatorID = &userID
	}

	orders, err := h.Repository.GetOrders(status, creatorID)
	if err != nil {
		logrus.Error("Error getting orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заказов")
		return
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = orderToDTO(o)
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: resp,
		Total:  len(resp),
	})
}

// GetOrder получает один заказ
// @Summary Получение заказа
// @Description Возвращает заказ по ID; чужие заказы доступны только менеджеру и админу
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	userID, userRole, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказа")
		return
	}

	order, err := h.Repository.GetOrderByID(uint(id))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return
	}

	if order.UserID != userID && userRole == role.Customer {
		h.errorResponse(c, http.StatusForbidden, "Заказ принадлежит другому пользователю")
		return
	}

	c.JSON(http.StatusOK, orderToDTO(*order))
}

// DeleteOrder отменяет PENDING заказ
// @Summary Отмена заказа
// @Description Логически удаляет неоплаченный заказ пользователя
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *APIHandler) DeleteOrder(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заказа")
		return
	}

	if err := h.Repository.DeleteOrder(uint(id), userID); err != nil {
		if errors.Is(err, repository.ErrWrongOrderStatus) {
			h.errorResponse(c, http.StatusConflict, "Отменить можно только неоплаченный заказ")
			return
		}
		logrus.Error("Error deleting order: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка отмены заказа")
		return
	}

	h.successResponse(c, http.StatusOK, "заказ отменён", nil)
}
