package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	JWT         JWTConfig
	Redis       RedisConfig
	Minio       MinioConfig
	Payment     PaymentConfig
	Panel       PanelConfig
	Mail        MailConfig
	FreeTier    FreeTierConfig
}

type JWTConfig struct {
	Token         string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PaymentConfig настройки платёжного провайдера (checkout sessions)
type PaymentConfig struct {
	BaseURL       string
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

// PanelConfig настройки внешней хостинг-панели (REST API)
type PanelConfig struct {
	BaseURL string
	APIKey  string
}

type MailConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

// FreeTierConfig лимиты бесплатных серверов
type FreeTierConfig struct {
	MaxServers   int // максимум одновременных бесплатных заказов на пользователя
	CPUPercent   int
	RAMMb        int
	DiskMb       int
	DurationDays int
}

const (
	envRedisHost = "REDIS_HOST"
	envRedisPort = "REDIS_PORT"
	envRedisUser = "REDIS_USER"
	envRedisPass = "REDIS_PASSWORD"

	envMinioEndpoint = "MINIO_ENDPOINT"
	envMinioAccess   = "MINIO_ACCESS_KEY"
	envMinioSecret   = "MINIO_SECRET_KEY"

	envPaymentKey     = "PAYMENT_SECRET_KEY"
	envWebhookSecret  = "PAYMENT_WEBHOOK_SECRET"
	envPanelAPIKey    = "PANEL_API_KEY"
	envMailPassword   = "MAIL_PASSWORD"
	envJWTSecretToken = "JWT_SECRET"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// секрет JWT только из окружения
	cfg.JWT = JWTConfig{
		Token:         os.Getenv(envJWTSecretToken),
		ExpiresIn:     time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}

	// инициализация Redis конфигурации из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	// ключи внешних сервисов из env, адреса из toml
	cfg.Minio.Endpoint = os.Getenv(envMinioEndpoint)
	cfg.Minio.AccessKey = os.Getenv(envMinioAccess)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecret)
	cfg.Payment.SecretKey = os.Getenv(envPaymentKey)
	cfg.Payment.WebhookSecret = os.Getenv(envWebhookSecret)
	cfg.Panel.APIKey = os.Getenv(envPanelAPIKey)
	cfg.Mail.Password = os.Getenv(envMailPassword)

	if cfg.FreeTier.MaxServers <= 0 {
		cfg.FreeTier.MaxServers = 1
	}

	log.Info("config parsed")

	return cfg, nil
}
