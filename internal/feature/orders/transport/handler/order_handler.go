// Package handler はordersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/transport/http/dto"
	"shop_backend/internal/feature/orders/usecase"
	jwtmw "shop_backend/internal/platform/jwt"
)

// OrderUsecase は注文操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type OrderUsecase interface {
	// CreateOrder は注文を検証・作成します。
	CreateOrder(ctx context.Context, userID uint, items []usecase.LineItem, comment string) (*entity.Order, error)
	// GetOrdersByUser は指定ユーザーの注文を新しい順にページネーションして返します。
	GetOrdersByUser(ctx context.Context, userID uint, page int) ([]entity.Order, int64, error)
	// PageSize は構成されたページサイズを返します。
	PageSize() int
}

// OrderHandler は注文操作のHTTPリクエストを処理します。
// 認証ミドルウェアがコンテキストへ格納したユーザーIDを前提とします。
type OrderHandler struct {
	orders OrderUsecase
}

// NewOrderHandler はOrderHandlerの新しいインスタンスを生成します。
func NewOrderHandler(orders OrderUsecase) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// userIDFromContext は認証ミドルウェアが設定したユーザーIDを取り出します。
func userIDFromContext(c *gin.Context) (uint, bool) {
	v, exists := c.Get(jwtmw.ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Create は注文作成APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 商品未検出時は404を返却
// - 在庫不足時は409を返却（同時実行でコミット中に不足した場合も同様）
// - 成功時は作成された注文付きで201を返却
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("order validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := make([]usecase.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.LineItem{
			ProductUUID: item.ProductUUID,
			Quantity:    item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), userID, items, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, catalogusecase.ErrProductNotFound):
			slog.Warn("order references unknown product", "error", err, "user_id", userID)
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, catalogusecase.ErrInsufficientStock):
			slog.Warn("order rejected for insufficient stock", "error", err, "user_id", userID)
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrEmptyOrder), errors.Is(err, usecase.ErrInvalidQuantity):
			slog.Warn("order rejected", "error", err, "user_id", userID)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			// 予期しない失敗（トランザクション異常等）はドメインエラーと区別して500で返す
			slog.Error("order creation failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
		}
		return
	}

	slog.Info("order created", "order_uuid", order.UUID, "user_id", userID, "amount", order.Amount)
	c.JSON(http.StatusCreated, dto.FromOrder(*order))
}

// List は注文一覧APIエンドポイントを処理します。
// 認証済みユーザー自身の注文のみを、新しい順にページネーションして返します。
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page := 1
	if p := c.Query("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page parameter"})
			return
		}
		page = parsed
	}

	orders, total, err := h.orders.GetOrdersByUser(c.Request.Context(), userID, page)
	if err != nil {
		slog.Error("failed to list orders", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	resp := dto.OrdersPageResp{
		Orders:   make([]dto.OrderResp, 0, len(orders)),
		Total:    total,
		Page:     page,
		PageSize: h.orders.PageSize(),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, dto.FromOrder(o))
	}
	c.JSON(http.StatusOK, resp)
}
