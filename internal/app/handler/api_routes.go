package handler

import (
	"backend/internal/app/middleware"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Игры (Games) - публичные и для админов ============
	games := api.Group("/games")
	{
		// Публичные эндпоинты (без авторизации)
		games.GET("", h.GetGames)                 // GET список с поиском
		games.GET("/:id", h.GetGame)              // GET одна игра
		games.GET("/:id/variants", h.GetGameData) // GET варианты установки

		// Только для админов (управление каталогом)
		games.POST("", authMiddleware.WithAuthCheck(role.Admin), h.CreateGame)
		games.PUT("/:id", authMiddleware.WithAuthCheck(role.Admin), h.UpdateGame)
		games.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin), h.DeleteGame)
		games.POST("/:id/image", authMiddleware.WithAuthCheck(role.Admin), h.UploadGameImage)
		games.DELETE("/:id/image", authMiddleware.WithAuthCheck(role.Admin), h.DeleteGameImage)
	}

	// ============ Локации и пакеты (публичный каталог) ============
	api.GET("/locations", h.GetLocations)
	api.GET("/packages", h.GetPackages)

	// ============ Checkout - расчёт цены и оформление ============
	checkoutGroup := api.Group("/checkout")
	{
		// Калькулятор публичный: цену можно смотреть до регистрации
		checkoutGroup.POST("/quote", h.GetQuote)

		checkoutGroup.POST("", authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin), h.CreateCheckout)
	}

	// ============ Заказы (Orders) ============
	orders := api.Group("/orders")
	orders.Use(authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin))
	{
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		// Повторное создание платёжной сессии после сбоя провайдера
		orders.POST("/:id/session", h.RetryPaymentSession)
	}

	// ============ Серверы пользователя ============
	servers := api.Group("/servers")
	servers.Use(authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin))
	{
		servers.GET("", h.GetServers)
		servers.GET("/:id", h.GetServer)
		servers.PUT("/:id/name", h.RenameServer)
		servers.POST("/:id/power", h.SendPowerSignal)
		servers.GET("/:id/backups", h.GetServerBackups)
	}

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		// Защищенные эндпоинты
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin), h.AuthHandler.UpdateProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Customer, role.Manager, role.Admin), h.AuthHandler.LogoutUser)
	}

	// Колбэки платёжного провайдера (авторизация по HMAC подписи)
	async := api.Group("/async")
	{
		async.POST("/payment-webhook", h.PaymentWebhook)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
