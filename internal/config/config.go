package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port               int
	MaxPrincipal       float64
	MaxRate            float64
	MaxTermYears       int
	MaxPaymentsPerYear int
	MaxExtraPayment    float64
	OTELEndpoint       string
	OTELServiceName    string
	LogLevel           string
	LogFormat          string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnvInt("PORT", 8000),
		MaxPrincipal:       getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxRate:            getEnvFloat("MAX_RATE", 200),
		MaxTermYears:       getEnvInt("MAX_TERM_YEARS", 50),
		MaxPaymentsPerYear: getEnvInt("MAX_PAYMENTS_PER_YEAR", 365),
		MaxExtraPayment:    getEnvFloat("MAX_EXTRA_PAYMENT", 1e8),
		OTELEndpoint:       getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:    getEnvString("OTEL_SERVICE_NAME", "mcp-amortization-server"),
		LogLevel:           getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:          getEnvString("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
