package config

import (
	"testing"
	"time"
)

// TestLoad_Defaults は環境変数未設定時にデフォルト値が使われることを検証します。
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("ORDERS_PAGE_SIZE", "")
	t.Setenv("PRODUCT_CACHE_TTL", "")

	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected HTTPAddr ':8080', got %q", cfg.HTTPAddr)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("expected JWTTTL 1h, got %v", cfg.JWTTTL)
	}
	if cfg.OrdersPageSize != 10 {
		t.Errorf("expected OrdersPageSize 10, got %d", cfg.OrdersPageSize)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("expected CacheTTL 1m, got %v", cfg.CacheTTL)
	}
}

// TestLoad_FromEnv は環境変数から設定が読み込まれることを検証します。
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("ORDERS_PAGE_SIZE", "25")
	t.Setenv("PRODUCT_CACHE_TTL", "5m")

	cfg := Load()

	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected HTTPAddr ':9090', got %q", cfg.HTTPAddr)
	}
	if cfg.JWTSecret != "super-secret" {
		t.Errorf("expected JWTSecret to be read, got %q", cfg.JWTSecret)
	}
	if cfg.JWTTTL != 30*time.Minute {
		t.Errorf("expected JWTTTL 30m, got %v", cfg.JWTTTL)
	}
	if cfg.OrdersPageSize != 25 {
		t.Errorf("expected OrdersPageSize 25, got %d", cfg.OrdersPageSize)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected CacheTTL 5m, got %v", cfg.CacheTTL)
	}
}

// TestLoad_InvalidValuesFallBack は不正な値がデフォルトへフォールバックすることを検証します。
func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "not-a-duration")
	t.Setenv("ORDERS_PAGE_SIZE", "-3")
	t.Setenv("PRODUCT_CACHE_TTL", "0s")

	cfg := Load()

	if cfg.JWTTTL != time.Hour {
		t.Errorf("expected JWTTTL to fall back to 1h, got %v", cfg.JWTTTL)
	}
	if cfg.OrdersPageSize != 10 {
		t.Errorf("expected OrdersPageSize to fall back to 10, got %d", cfg.OrdersPageSize)
	}
	if cfg.CacheTTL != time.Minute {
		t.Errorf("expected CacheTTL to fall back to 1m, got %v", cfg.CacheTTL)
	}
}
