package handler

import (
	"fmt"

	"backend/internal/app/checkout"
	"backend/internal/app/dto"
	"backend/internal/app/panel"
	"backend/internal/app/repository"
	"backend/internal/app/role"
	"backend/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	Checkout    *checkout.Service
	Panel       *panel.Client
	AuthHandler *AuthHandler

	// Секрет подписи webhook платёжного провайдера
	WebhookSecret string
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient,
	checkoutService *checkout.Service, panelClient *panel.Client,
	authHandler *AuthHandler, webhookSecret string) *APIHandler {
	return &APIHandler{
		Repository:    r,
		MinIOClient:   minioClient,
		Checkout:      checkoutService,
		Panel:         panelClient,
		AuthHandler:   authHandler,
		WebhookSecret: webhookSecret,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Customer, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}
