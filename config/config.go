package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Settings struct {
	Port               string
	RedisAddr          string // empty: in-memory cache and fee schedule
	DatabaseURL        string // empty: in-memory product catalog
	FeeScheduleFile    string
	RateLimitCapacity  int
	RateLimitWindow    time.Duration
	SimulationCacheTTL time.Duration
	QuoteHistory       int
	LogLevel           slog.Level
}

// Load reads an optional .env file from the working directory, then the environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Settings{
		Port:               GetString("PORT", "8080"),
		RedisAddr:          GetString("REDIS_ADDR", ""),
		DatabaseURL:        GetString("DATABASE_URL", ""),
		FeeScheduleFile:    GetString("FEE_SCHEDULE_FILE", ""),
		RateLimitCapacity:  GetInt("RATE_LIMIT_CAPACITY", 60),
		RateLimitWindow:    GetDuration("RATE_LIMIT_WINDOW", time.Minute),
		SimulationCacheTTL: GetDuration("SIMULATION_CACHE_TTL", 10*time.Minute),
		QuoteHistory:       GetInt("QUOTE_HISTORY", 1000),
		LogLevel:           parseLevel(GetString("LOG_LEVEL", "info")),
	}
}

// Addr returns the listen address for the configured port.
func (s *Settings) Addr() string {
	if strings.HasPrefix(s.Port, ":") {
		return s.Port
	}
	return ":" + s.Port
}

func GetString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		slog.Warn("ignoring invalid duration setting", "key", key, "value", value)
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return slog.LevelInfo
	}
	return level
}
