package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/adamj-ops/everyday-lending/pkg/postgres"
)

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type StripeConfig struct {
	APIKey        string
	WebhookSecret string
	BaseURL       string
}

type ACHConfig struct {
	APIKey  string
	BaseURL string
}

type AuthConfig struct {
	// JWTSecret enables HMAC validation; JWTPublicKeyPath enables RSA.
	// When both are empty the gRPC auth interceptor is disabled.
	JWTSecret        string
	JWTPublicKeyPath string
}

type FeeConfig struct {
	ServicingFeeRate decimal.Decimal
	LateFeeBase      decimal.Decimal
	LateFeePerDay    decimal.Decimal
	LateFeeCap       decimal.Decimal
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	LogLevel    string
	LogFormat   string
	DB          postgres.Config
	Kafka       KafkaConfig
	Stripe      StripeConfig
	ACH         ACHConfig
	Auth        AuthConfig
	Fees        FeeConfig
	TLS         TLSConfig
	ServiceName string
}

func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET environment variable is required")
	}
	return nil
}

func Load() Config {
	return Config{
		GRPCPort:  getEnvInt("GRPC_PORT", 9090),
		HTTPPort:  getEnvInt("HTTP_PORT", 8080),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "lending"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "lending.payments"),
		},
		Stripe: StripeConfig{
			APIKey:        getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			BaseURL:       getEnv("STRIPE_BASE_URL", "https://api.stripe.com"),
		},
		ACH: ACHConfig{
			APIKey:  getEnv("ACH_API_KEY", ""),
			BaseURL: getEnv("ACH_BASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("JWT_SECRET", ""),
			JWTPublicKeyPath: getEnv("JWT_PUBLIC_KEY_PATH", ""),
		},
		Fees: FeeConfig{
			ServicingFeeRate: getEnvDecimal("SERVICING_FEE_RATE", "0.01"),
			LateFeeBase:      getEnvDecimal("LATE_FEE_BASE", "50"),
			LateFeePerDay:    getEnvDecimal("LATE_FEE_PER_DAY", "5"),
			LateFeeCap:       getEnvDecimal("LATE_FEE_CAP", "500"),
		},
		TLS: TLSConfig{
			CertFile: getEnv("TLS_CERT_FILE", ""),
			KeyFile:  getEnv("TLS_KEY_FILE", ""),
		},
		ServiceName: "lending-payments",
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
