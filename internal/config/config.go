package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	DBPath    string
	OutputDir string

	StoresFile string

	ShippingAPIBaseURL    string
	ShippingAPIKey        string
	ShippingAPISecret     string
	ShippingRateLimitRPS  float64
	ShippingRateBurst     int
	ShippingTimeoutMs     int
	ShippingMaxAttempts   int
	ShippingRefreshWaitMs int
	ShippingPageSize      int

	SyncFetchConcurrency    int
	SyncListenerIntervalSec int

	LogLevel  string
	LogFormat string
	LogOutput string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "orders.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		StoresFile: getEnv("STORES_FILE", filepath.Join(cwd, "stores.yaml")),

		ShippingAPIBaseURL:    getEnv("SHIPPING_API_BASE_URL", "https://ssapi.shipstation.com"),
		ShippingAPIKey:        getEnv("SHIPPING_API_KEY", ""),
		ShippingAPISecret:     getEnv("SHIPPING_API_SECRET", ""),
		ShippingRateLimitRPS:  getEnvFloat("SHIPPING_RATE_LIMIT_RPS", 0.6),
		ShippingRateBurst:     getEnvInt("SHIPPING_RATE_LIMIT_BURST", 5),
		ShippingTimeoutMs:     getEnvInt("SHIPPING_TIMEOUT_MS", 30000),
		ShippingMaxAttempts:   getEnvInt("SHIPPING_MAX_ATTEMPTS", 5),
		ShippingRefreshWaitMs: getEnvInt("SHIPPING_REFRESH_WAIT_MS", 5000),
		ShippingPageSize:      getEnvInt("SHIPPING_PAGE_SIZE", 500),

		SyncFetchConcurrency:    getEnvInt("SYNC_FETCH_CONCURRENCY", 3),
		SyncListenerIntervalSec: getEnvInt("SYNC_LISTENER_INTERVAL_SEC", 900),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", ""),
		LogOutput: getEnv("LOG_OUTPUT", "stderr"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
