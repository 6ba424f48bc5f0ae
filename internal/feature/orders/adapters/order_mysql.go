// Package adapters はordersフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	catalogadapters "shop_backend/internal/feature/catalog/adapters"
	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/usecase"
)

// orderMySQL はOrderRepositoryインターフェースのMySQL実装です。
type orderMySQL struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderMySQL)(nil)

// NewOrderMySQL は指定されたgorm.DB接続でorderMySQLの新しいインスタンスを生成します。
func NewOrderMySQL(db *gorm.DB) *orderMySQL {
	return &orderMySQL{db: db}
}

// Create は注文のコミットフェーズを単一トランザクションで実行します。
//   - 注文行と明細行を挿入
//   - 明細ごとに在庫を条件付きで減算（stock >= quantity の行のみ更新）
//
// 減算が1行も更新しなかった場合（同時実行の注文が先に在庫を確保した等）、
// 商品UUIDを付与したエラーを返し、トランザクション全体をロールバックします。
// 部分的な注文・明細・在庫変更が他のトランザクションから観測されることはありません。
func (r *orderMySQL) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Itemsが設定されていれば明細行も併せて挿入される
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// トランザクションハンドルに束縛したカタログリポジトリで在庫を減算する。
		// 事前チェック後に在庫が変化していた場合はここで失敗し、全体が巻き戻る。
		products := catalogadapters.NewProductMySQL(tx)
		for _, item := range order.Items {
			if err := products.DecrementStock(ctx, item.ProductUUID, item.Quantity); err != nil {
				return fmt.Errorf("product %s: %w", item.ProductUUID, err)
			}
		}
		return nil
	})
}

// FindByUser は指定ユーザーの注文を新しい順に取得します。
// 明細とその参照商品をプリロードし、ページネーション用に総件数も返します。
// 作成時刻が同一の注文はUUIDでタイブレークし、ページ間で順序が安定するようにします。
func (r *orderMySQL) FindByUser(ctx context.Context, userID uint, limit, offset int) ([]entity.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	if err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC, uuid DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
