package handler

import (
	"errors"
	"io"
	"net/http"

	"backend/internal/app/payment"
	"backend/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentWebhook принимает колбэк платёжного провайдера
// @Summary Webhook платёжного провайдера
// @Description Обрабатывает события оплаты; авторизация по HMAC подписи тела
// @Tags Async
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "HMAC-SHA256 подпись тела"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/async/payment-webhook [post]
func (h *APIHandler) PaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "cannot read webhook body")
		return
	}

	signature := c.GetHeader("X-Webhook-Signature")
	event, err := payment.VerifyWebhook(body, signature, h.WebhookSecret)
	if err != nil {
		logrus.Warn("Webhook rejected: ", err)
		h.errorResponse(c, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	switch event.Type {
	case payment.EventSessionCompleted:
		if err := h.Checkout.HandlePaymentSuccess(c.Request.Context(), event.SessionID); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				h.errorResponse(c, http.StatusNotFound, "order not found for session")
				return
			}
			// Провал провижининга уже зафиксирован в заказе; провайдеру
			// отвечаем 200, чтобы он не ретраил оплаченное событие
			logrus.Error("Webhook processing failed: ", err)
		}
	case payment.EventSessionExpired:
		order, err := h.Repository.GetOrderBySessionID(event.SessionID)
		if err == nil {
			// Сессия истекла: заказ остаётся PENDING, пользователь может
			// запросить новую сессию через /orders/:id/session
			logrus.Infof("payment session expired for order %d", order.ID)
		}
	default:
		logrus.Infof("ignoring webhook event type %q", event.Type)
	}

	h.successResponse(c, http.StatusOK, "event processed", nil)
}
