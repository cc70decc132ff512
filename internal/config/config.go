package config

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

type Config struct {
	Env                string
	Port               string
	AllowOrigins       string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSSLMode          string
	JWTSecret          string
	TokenTTLHours      int
	DefaultDailyBudget decimal.Decimal
	LogLevel           string
	LogFormat          string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func atodec(key string, def decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}

func Load() *Config {
	env := getenv("APP_ENV", "development")
	logFormat := "console"
	if env == "production" {
		logFormat = "json"
	}
	return &Config{
		Env:                env,
		Port:               getenv("PORT", "8080"),
		AllowOrigins:       getenv("ALLOW_ORIGINS", "*"),
		DBHost:             getenv("DB_HOST", "localhost"),
		DBPort:             getenv("DB_PORT", "5432"),
		DBUser:             getenv("DB_USER", "postgres"),
		DBPassword:         getenv("DB_PASSWORD", ""),
		DBName:             getenv("DB_NAME", "gigledger"),
		DBSSLMode:          getenv("DB_SSLMODE", "disable"),
		JWTSecret:          getenv("JWT_SECRET", ""),
		TokenTTLHours:      atoi("TOKEN_TTL_HOURS", 24*30),
		DefaultDailyBudget: atodec("DEFAULT_DAILY_BUDGET", decimal.NewFromInt(100)),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		LogFormat:          getenv("LOG_FORMAT", logFormat),
	}
}
