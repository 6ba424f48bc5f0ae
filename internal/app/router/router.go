package router

import (
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	cataloghandler "shop_backend/internal/feature/catalog/transport/handler"
	ordershandler "shop_backend/internal/feature/orders/transport/handler"
	"shop_backend/internal/platform/http/handler"
	jwtmw "shop_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(authHandler *authhandler.AuthHandler, products *cataloghandler.ProductHandler,
	orders *ordershandler.OrderHandler, denylist jwtmw.DenylistChecker) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録（JWT 発行）
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)
	// 商品一覧（公開）
	r.GET("/products", products.List)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired(denylist))
	{
		// ログアウト（トークン失効）
		auth.POST("/logout", authHandler.Logout)
		// 注文作成
		auth.POST("/orders", orders.Create)
		// 自分の注文一覧
		auth.GET("/orders", orders.List)
	}

	return r
}
