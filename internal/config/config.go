package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Kiosk    KioskConfig
	Fallback FallbackConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the shared replay-cache connection. An empty Addr means
// the in-process cache is used instead (single verification point only).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds scanner-session token configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// KioskConfig holds the check-in protocol knobs: the shared HMAC secret for
// QR tokens, their lifetime, and the lateness grace period.
type KioskConfig struct {
	TokenSecret     string
	TokenTTLSeconds int
	GraceMinutes    int
}

// FallbackConfig locates the local durable queue used when the remote store
// is unreachable.
type FallbackConfig struct {
	QueuePath string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftgate"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration (replay cache)
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	// Kiosk token configuration
	tokenTTL, err := strconv.Atoi(getEnv("KIOSK_TOKEN_TTL_SECONDS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid KIOSK_TOKEN_TTL_SECONDS: %w", err)
	}

	graceMinutes, err := strconv.Atoi(getEnv("CHECKIN_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid CHECKIN_GRACE_MINUTES: %w", err)
	}

	config.Kiosk = KioskConfig{
		TokenSecret:     getEnv("KIOSK_TOKEN_SECRET", ""),
		TokenTTLSeconds: tokenTTL,
		GraceMinutes:    graceMinutes,
	}

	config.Fallback = FallbackConfig{
		QueuePath: getEnv("FALLBACK_QUEUE_PATH", "data/checkin-queue.jsonl"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Kiosk.TokenSecret == "" {
		return fmt.Errorf("KIOSK_TOKEN_SECRET is required")
	}
	if c.Kiosk.TokenTTLSeconds <= 0 {
		return fmt.Errorf("KIOSK_TOKEN_TTL_SECONDS must be positive")
	}
	if c.Kiosk.GraceMinutes < 0 {
		return fmt.Errorf("CHECKIN_GRACE_MINUTES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
