package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Rewards  RewardsConfig
	Webhook  WebhookConfig
	Logger   LoggerConfig
}

// WebhookConfig authenticates the SMS gateway. An empty key disables the
// webhook endpoint.
type WebhookConfig struct {
	APIKey string
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// RewardsConfig tunes the NeoCoin reward engine: starting balance for new
// wallets, daily login reward, streak bonus and expense cashback rate.
// Values are decimal strings so they parse losslessly.
type RewardsConfig struct {
	InitialBalance   string
	DailyBase        string
	StreakMultiplier string
	StreakThreshold  int
	CashbackRate     string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine: environment variables are used directly (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	streakThreshold, _ := strconv.Atoi(getEnv("REWARD_STREAK_THRESHOLD", "5"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "neowealth"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Rewards: RewardsConfig{
			InitialBalance:   getEnv("REWARD_INITIAL_BALANCE", "100"),
			DailyBase:        getEnv("REWARD_DAILY_BASE", "5"),
			StreakMultiplier: getEnv("REWARD_STREAK_MULTIPLIER", "1.5"),
			StreakThreshold:  streakThreshold,
			CashbackRate:     getEnv("REWARD_CASHBACK_RATE", "0.01"),
		},
		Webhook: WebhookConfig{
			APIKey: getEnv("WEBHOOK_API_KEY", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
