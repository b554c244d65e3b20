package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process configuration sourced from the environment.
type Config struct {
	Env      string
	LogLevel string

	HTTPAddr        string
	SpannerDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// Search defaults applied when a request omits sorting. Passed explicitly
	// to the query facade rather than read there.
	SearchSortField string
	SearchSortOrder string
}

// Load reads configuration from the environment, loading a .env file first
// when one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:             getString("APP_ENV", "development"),
		LogLevel:        getString("LOG_LEVEL", "info"),
		HTTPAddr:        getString("HTTP_ADDR", ":8080"),
		SpannerDatabase: getString("SPANNER_DATABASE", "projects/test-project/instances/emulator-instance/databases/test-db"),
		RedisAddr:       getString("REDIS_ADDR", ""),
		RedisPassword:   getString("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),
		CacheTTL:        getDuration("CACHE_TTL", 30*time.Second),
		SearchSortField: getString("SEARCH_SORT_FIELD", "created_at"),
		SearchSortOrder: getString("SEARCH_SORT_ORDER", "desc"),
	}
}

func getString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
