// Package usecase はcatalogフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"shop_backend/internal/feature/catalog/domain/entity"
)

// ProductRepository は商品カタログの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// List はすべての商品を名前順に返します。
	List(ctx context.Context) ([]entity.Product, error)

	// FindByUUID はUUIDで商品を取得します。
	// 商品が存在しない場合、ErrProductNotFoundを返します。
	FindByUUID(ctx context.Context, uuid string) (*entity.Product, error)

	// FindByUUIDs は複数UUIDの商品を一括取得し、UUIDをキーとするマップで返します。
	// 見つからなかったUUIDはマップに含まれません（エラーにはなりません）。
	FindByUUIDs(ctx context.Context, uuids []string) (map[string]entity.Product, error)

	// UpsertBatch は商品を一括で挿入または更新します（シード用）。
	UpsertBatch(ctx context.Context, products []entity.Product) error
}

// catalogUsecase はカタログ参照のビジネスロジックを実装します。
type catalogUsecase struct {
	products ProductRepository
}

// NewCatalogUsecase はcatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(products ProductRepository) *catalogUsecase {
	return &catalogUsecase{products: products}
}

// List はカタログの全商品を返します。
func (u *catalogUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.products.List(ctx)
}

// Get はUUIDで商品を1件取得します。
func (u *catalogUsecase) Get(ctx context.Context, uuid string) (*entity.Product, error) {
	return u.products.FindByUUID(ctx, uuid)
}
