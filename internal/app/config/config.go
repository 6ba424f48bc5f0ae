// Package config loads application settings from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings not owned by a platform package.
// Database and Redis connection settings are read by their own packages.
type Config struct {
	HTTPAddr       string
	JWTSecret      string
	JWTTTL         time.Duration
	OrdersPageSize int
	CacheTTL       time.Duration
}

// Load reads the configuration with sensible defaults for local development.
func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTTTL:         getduration("JWT_TTL", time.Hour),
		OrdersPageSize: getint("ORDERS_PAGE_SIZE", 10),
		CacheTTL:       getduration("PRODUCT_CACHE_TTL", time.Minute),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
