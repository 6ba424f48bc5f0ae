package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	catalogadapters "shop_backend/internal/feature/catalog/adapters"
	"shop_backend/internal/feature/catalog/domain/entity"
	infradb "shop_backend/internal/platform/db"
)

// デモ用の商品カタログを投入するコマンドです。
// UUIDを固定しているため、繰り返し実行しても重複せず上書きされます。
func main() {
	_ = godotenv.Load()

	db := infradb.OpenDB()
	productRepo := catalogadapters.NewProductMySQL(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	products := []entity.Product{
		{UUID: stableUUID("keyboard"), Name: "Mechanical Keyboard", Price: 120.00, Stock: 50},
		{UUID: stableUUID("mouse"), Name: "Wireless Mouse", Price: 45.50, Stock: 120},
		{UUID: stableUUID("monitor"), Name: "27in Monitor", Price: 310.00, Stock: 25},
		{UUID: stableUUID("usb-c-hub"), Name: "USB-C Hub", Price: 39.99, Stock: 200},
		{UUID: stableUUID("webcam"), Name: "HD Webcam", Price: 79.00, Stock: 80},
		{UUID: stableUUID("headset"), Name: "Noise Cancelling Headset", Price: 199.00, Stock: 35},
	}

	if err := productRepo.UpsertBatch(ctx, products); err != nil {
		log.Fatal("failed to seed products:", err)
	}
	log.Printf("seed ok (%d products)", len(products))
}

// stableUUID は名前から決定的なUUIDを導出します。
func stableUUID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("shop_backend/products/"+name)).String()
}
