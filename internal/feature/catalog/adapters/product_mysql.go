// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
)

// productMySQL はProductRepositoryインターフェースのMySQL実装です。
// トランザクションハンドル（*gorm.DB）を渡せば、そのトランザクション内で
// 動作するインスタンスとしても利用できます。
type productMySQL struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productMySQL)(nil)

// NewProductMySQL は指定されたgorm.DB接続でproductMySQLの新しいインスタンスを生成します。
func NewProductMySQL(db *gorm.DB) *productMySQL {
	return &productMySQL{db: db}
}

// List はすべての商品を名前順に返します。
func (r *productMySQL) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByUUID はUUIDで商品を取得します。
// 商品が存在しない場合、usecase.ErrProductNotFoundを返します。
func (r *productMySQL) FindByUUID(ctx context.Context, uuid string) (*entity.Product, error) {
	var p entity.Product
	if err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByUUIDs は複数UUIDの商品を一括取得します。
// 注文バリデーションが1パスで在庫チェックと合計計算を行えるよう、
// UUIDをキーとするマップを返します。見つからないUUIDは単に含まれません。
func (r *productMySQL) FindByUUIDs(ctx context.Context, uuids []string) (map[string]entity.Product, error) {
	result := make(map[string]entity.Product, len(uuids))
	if len(uuids) == 0 {
		return result, nil
	}

	var products []entity.Product
	if err := r.db.WithContext(ctx).Where("uuid IN ?", uuids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.UUID] = p
	}
	return result, nil
}

// UpsertBatch は商品を一括で挿入または更新します。
// UUIDが衝突した場合は名前・価格・在庫を上書きします（シード用途）。
func (r *productMySQL) UpsertBatch(ctx context.Context, products []entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "stock"}),
	}).Create(&products).Error
}

// DecrementStock は在庫を条件付きで減算します。
// `stock >= quantity` の行のみを更新するため、事前チェック後に他の注文が
// 在庫を減らしていても負の在庫にはなりません（check-then-act競合の最終防衛線）。
// 更新行が0件の場合、商品が存在しなければErrProductNotFound、
// 存在すれば在庫不足としてErrInsufficientStockを返します。
// トランザクション内から呼び出しても安全です。
func (r *productMySQL) DecrementStock(ctx context.Context, uuid string, quantity int) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("uuid = ? AND stock >= ?", uuid, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&entity.Product{}).
			Where("uuid = ?", uuid).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrProductNotFound
		}
		return usecase.ErrInsufficientStock
	}
	return nil
}
