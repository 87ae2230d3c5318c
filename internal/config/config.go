package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Provider struct {
		APIKey         string
		Timeout        time.Duration
		BreakerTimeout time.Duration
	}

	Weather struct {
		DefaultUnits string
		HourlySpan   int
	}

	Redis struct {
		Addr string
	}

	Device struct {
		// Optional fixed device position; both unset means the
		// environment has no geolocation capability.
		Lat    float64
		Lon    float64
		HasPos bool
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	cfg.Server.Port = getEnv("PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("WRITE_TIMEOUT", "10s"))

	cfg.Provider.APIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.Provider.Timeout = parseDuration(getEnv("PROVIDER_TIMEOUT", "10s"))
	cfg.Provider.BreakerTimeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	cfg.Weather.DefaultUnits = getEnv("DEFAULT_UNITS", "imperial")
	cfg.Weather.HourlySpan = parseInt(getEnv("HOURLY_SPAN", "12"))

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")

	latStr, lonStr := getEnv("DEVICE_LAT", ""), getEnv("DEVICE_LON", "")
	if latStr != "" && lonStr != "" {
		cfg.Device.Lat = parseFloat(latStr)
		cfg.Device.Lon = parseFloat(lonStr)
		cfg.Device.HasPos = true
	}

	if cfg.Provider.APIKey == "" {
		return nil, errors.New("OPENWEATHER_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
