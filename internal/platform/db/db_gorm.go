// Package db はGORMによるデータベース接続の確立とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	authentity "shop_backend/internal/feature/auth/domain/entity"
	catalogentity "shop_backend/internal/feature/catalog/domain/entity"
	ordersentity "shop_backend/internal/feature/orders/domain/entity"
)

// Config holds the database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string

	// InstanceName is the Cloud SQL instance connection name.
	// When set, it takes precedence over Host/Port.
	InstanceName string
}

// LoadConfigFromEnv reads the database settings from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN constructs a MySQL DSN from the config.
// Cloud SQL unix socket connection is used when InstanceName is set.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
}

// Opener opens a gorm.DB for the given DSN. Swappable for tests.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続が確立するまでリトライします。
// コンテナ起動直後などDBがまだ受け付けない場合に備えたものです。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// gormOpen is the production Opener.
// TranslateErrorにより重複キー等のドライバエラーがgorm.ErrDuplicatedKeyへ変換される。
func gormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(gmysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// OpenDB connects to the database using environment configuration.
// RUN_MIGRATIONS=true のとき、スキーマのマイグレーションも実行します。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, gormOpen)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Product, Order, OrderItem）
		if err := db.AutoMigrate(
			&authentity.User{},
			&catalogentity.Product{},
			&ordersentity.Order{},
			&ordersentity.OrderItem{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
