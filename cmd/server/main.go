package main

import (
	"log"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/config"
	"shop_backend/internal/app/router"
	authadapters "shop_backend/internal/feature/auth/adapters"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	catalogadapters "shop_backend/internal/feature/catalog/adapters"
	cataloghandler "shop_backend/internal/feature/catalog/transport/handler"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	ordersadapters "shop_backend/internal/feature/orders/adapters"
	ordershandler "shop_backend/internal/feature/orders/transport/handler"
	ordersusecase "shop_backend/internal/feature/orders/usecase"
	"shop_backend/internal/platform/cache"
	infradb "shop_backend/internal/platform/db"
	jwtmw "shop_backend/internal/platform/jwt"
	infraredis "shop_backend/internal/platform/redis"
	"shop_backend/internal/platform/session"
)

func main() {
	// .env（ローカル開発用、存在しなければ無視）
	_ = godotenv.Load()

	cfg := config.Load()

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache and token revocation.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	productRepo := catalogadapters.NewProductMySQL(db)
	orderRepo := ordersadapters.NewOrderMySQL(db)

	// Redisキャッシュでラップ（商品一覧の読み出し用）
	cachedProductRepo := cache.NewCachingProductRepository(rdb, cfg.CacheTTL, productRepo, "products")

	// トークン失効リスト（Redisなしの場合はステートレス運用）
	var denylist *session.TokenDenylist
	var denyChecker jwtmw.DenylistChecker
	var denyWriter authusecase.TokenDenylist
	if rdb != nil {
		denylist = session.NewTokenDenylist(rdb, "denylist")
		denyChecker = denylist
		denyWriter = denylist
	}

	// Usecase
	issuer := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, denyWriter)
	catalogUC := catalogusecase.NewCatalogUsecase(cachedProductRepo)
	ordersUC := ordersusecase.NewOrderUsecase(orderRepo, productRepo, cfg.OrdersPageSize)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	productH := cataloghandler.NewProductHandler(catalogUC)
	orderH := ordershandler.NewOrderHandler(ordersUC)

	// ルータ生成
	router := router.NewRouter(authH, productH, orderH, denyChecker)

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
