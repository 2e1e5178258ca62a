package api

import (
	"context"

	"backend/internal/app/checkout"
	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/mail"
	"backend/internal/app/middleware"
	"backend/internal/app/panel"
	"backend/internal/app/payment"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/storage"
	"backend/internal/pkg"

	_ "backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Game Server Rental API
// @version 1.0
// @description Панель аренды игровых серверов: каталог, расчёт цены, заказы, серверы

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// StartServer собирает все зависимости и запускает HTTP сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("cannot read config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("cannot init repository: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("cannot init redis: %v", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey,
		cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		logrus.Fatalf("cannot init minio: %v", err)
	}

	paymentClient := payment.NewClient(cfg.Payment)
	panelClient := panel.NewClient(cfg.Panel)
	mailClient := mail.NewClient(cfg.Mail)

	checkoutService := checkout.NewService(repo, paymentClient, panelClient, mailClient,
		checkout.FreeTierLimits{
			MaxServers:   cfg.FreeTier.MaxServers,
			CPUPercent:   cfg.FreeTier.CPUPercent,
			RAMMb:        cfg.FreeTier.RAMMb,
			DiskMb:       cfg.FreeTier.DiskMb,
			DurationDays: cfg.FreeTier.DurationDays,
		},
		cfg.Payment.SuccessURL, cfg.Payment.CancelURL)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, checkoutService, panelClient,
		authHandler, cfg.Payment.WebhookSecret)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	apiHandler.RegisterAPIRoutes(router, authMiddleware)

	// Swagger документация
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app := pkg.NewApp(cfg, router)
	app.RunApp()
}
