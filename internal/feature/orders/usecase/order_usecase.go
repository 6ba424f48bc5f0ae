// Package usecase はordersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catalogentity "shop_backend/internal/feature/catalog/domain/entity"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/feature/orders/domain/entity"
)

// DefaultPageSize は注文一覧のデフォルトページサイズです。
const DefaultPageSize = 10

// LineItem は注文リクエスト内の（商品UUID, 数量）の組です。
type LineItem struct {
	ProductUUID string
	Quantity    int
}

// ProductCatalog は注文バリデーションに必要なカタログ参照を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type ProductCatalog interface {
	// FindByUUIDs は複数UUIDの商品を一括取得します。
	// 見つからなかったUUIDはマップに含まれません。
	FindByUUIDs(ctx context.Context, uuids []string) (map[string]catalogentity.Product, error)
}

// OrderRepository は注文の永続化層を抽象化します。
type OrderRepository interface {
	// Create は注文・明細の挿入と在庫減算を単一トランザクションで実行します。
	// いずれかの在庫が不足した場合、全体をロールバックして
	// catalog/usecase.ErrInsufficientStock（商品UUID付き）を返します。
	Create(ctx context.Context, order *entity.Order) error

	// FindByUser は指定ユーザーの注文を新しい順に取得します。
	// 明細と参照商品も読み込み、総件数を併せて返します。
	FindByUser(ctx context.Context, userID uint, limit, offset int) ([]entity.Order, int64, error)
}

// orderUsecase は注文ビジネスロジックを実装します。
type orderUsecase struct {
	orders   OrderRepository
	catalog  ProductCatalog
	pageSize int
}

// NewOrderUsecase はorderUsecaseの新しいインスタンスを生成します。
// pageSizeが0以下の場合はDefaultPageSizeを使用します。
func NewOrderUsecase(orders OrderRepository, catalog ProductCatalog, pageSize int) *orderUsecase {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &orderUsecase{
		orders:   orders,
		catalog:  catalog,
		pageSize: pageSize,
	}
}

// CreateOrder は注文を作成します。処理は2フェーズに分かれます。
//
// バリデーションフェーズ（読み取りのみ）: 商品を1回のクエリで一括取得し、
// 同じスナップショットで在庫チェックと合計計算の両方を行います。
// 商品未検出・在庫不足の場合、状態を一切変更せずエラーを返します。
//
// コミットフェーズ: 注文・明細の挿入と在庫減算を単一トランザクションで実行します。
// 事前チェックとコミットは原子的ではないため、在庫の最終判定は
// トランザクション内の条件付き減算（リポジトリ側）が行います。
// 同時実行の注文が先に在庫を奪った場合も、負の在庫や部分的な書き込みは発生しません。
func (u *orderUsecase) CreateOrder(ctx context.Context, userID uint, items []LineItem, comment string) (*entity.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	uuids := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("product %s: %w", item.ProductUUID, ErrInvalidQuantity)
		}
		uuids = append(uuids, item.ProductUUID)
	}

	// バリデーションフェーズ: 1パスで取得したスナップショットを
	// 在庫チェックと合計計算の両方に使う
	snapshot, err := u.catalog.FindByUUIDs(ctx, uuids)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var total float64
	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := snapshot[item.ProductUUID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", item.ProductUUID, catalogusecase.ErrProductNotFound)
		}
		if item.Quantity > product.Stock {
			return nil, fmt.Errorf("product %s: %w", item.ProductUUID, catalogusecase.ErrInsufficientStock)
		}
		total += product.Price * float64(item.Quantity)
		orderItems = append(orderItems, entity.OrderItem{
			ProductUUID: item.ProductUUID,
			Quantity:    item.Quantity,
			Price:       product.Price, // 注文時点の単価を記録
		})
	}

	order := &entity.Order{
		UUID:    uuid.NewString(),
		UserID:  userID,
		Status:  entity.OrderStatusNew,
		Amount:  total,
		Comment: comment,
		Items:   orderItems,
	}

	// コミットフェーズ: 全て適用されるか、全て適用されないかのいずれか
	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrdersByUser は指定ユーザーの注文を新しい順にページネーションして返します。
// pageは1始まりです。戻り値の総件数はページネーション表示用です。
func (u *orderUsecase) GetOrdersByUser(ctx context.Context, userID uint, page int) ([]entity.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * u.pageSize
	return u.orders.FindByUser(ctx, userID, u.pageSize, offset)
}

// PageSize は構成されたページサイズを返します。
func (u *orderUsecase) PageSize() int {
	return u.pageSize
}
