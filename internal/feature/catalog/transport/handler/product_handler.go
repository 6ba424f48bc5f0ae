// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/transport/http/dto"
)

// CatalogUsecase は商品カタログ参照のユースケースを定義します。
type CatalogUsecase interface {
	// List はすべての商品を返します。
	List(ctx context.Context) ([]entity.Product, error)
}

// ProductHandler は商品カタログのHTTPリクエストを処理します。
type ProductHandler struct {
	catalog CatalogUsecase
}

// NewProductHandler はProductHandlerの新しいインスタンスを生成します。
func NewProductHandler(catalog CatalogUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List は商品一覧APIエンドポイントを処理します。
// 認証不要の公開エンドポイントです。
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	resp := make([]dto.ProductResp, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductResp{
			UUID:  p.UUID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	c.JSON(http.StatusOK, gin.H{"products": resp})
}
