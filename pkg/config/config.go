package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mailjet  MailjetConfig
	Wallet   WalletConfig
	Orders   OrdersConfig
}

type AppConfig struct {
	Name                    string
	Version                 string
	Environment             string
	AppDeploymentUrl        string
	AppEmailVerificationKey string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type MailjetConfig struct {
	MailjetBaseUrl           string
	MailjetBasicAuthUsername string
	MailjetBasicAuthPassword string
	MailjetSenderEmail       string
	MailjetSenderName        string
}

type WalletConfig struct {
	// MinTopUp is the smallest amount a customer may submit as a top-up
	// request, in naira.
	MinTopUp float64
}

type OrdersConfig struct {
	// GracePeriod is how long an order stays in processing before the
	// background processor marks it completed.
	GracePeriod time.Duration
	// ProcessorInterval is how often the processor sweeps for stuck orders.
	ProcessorInterval time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	minTopUp, err := strconv.ParseFloat(getEnv("WALLET_MIN_TOPUP", "500"), 64)
	if err != nil {
		return nil, errors.New("invalid WALLET_MIN_TOPUP")
	}

	gracePeriod, err := time.ParseDuration(getEnv("ORDER_GRACE_PERIOD", "5m"))
	if err != nil {
		return nil, errors.New("invalid ORDER_GRACE_PERIOD")
	}

	processorInterval, err := time.ParseDuration(getEnv("ORDER_PROCESSOR_INTERVAL", "1m"))
	if err != nil {
		return nil, errors.New("invalid ORDER_PROCESSOR_INTERVAL")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                    getEnv("APP_NAME", "ViralWallet API"),
			Version:                 getEnv("APP_VERSION", "1.0.0"),
			Environment:             getEnv("APP_ENV", "development"),
			AppDeploymentUrl:        getEnv("APP_DEPLOYMENT_URL", ""),
			AppEmailVerificationKey: getEnv("APP_EMAIL_VERIFICATION_KEY", ""),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "viralwallet"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:           getEnv("MAILJET_BASE_URL", ""),
			MailjetBasicAuthUsername: getEnv("MAILJET_BASIC_AUTH_USERNAME", ""),
			MailjetBasicAuthPassword: getEnv("MAILJET_BASIC_AUTH_PASSWORD", ""),
			MailjetSenderEmail:       getEnv("MAILJET_SENDER_EMAIL", ""),
			MailjetSenderName:        getEnv("MAILJET_SENDER_NAME", ""),
		},
		Wallet: WalletConfig{
			MinTopUp: minTopUp,
		},
		Orders: OrdersConfig{
			GracePeriod:       gracePeriod,
			ProcessorInterval: processorInterval,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Wallet.MinTopUp <= 0 {
		return nil, errors.New("wallet minimum top-up must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
