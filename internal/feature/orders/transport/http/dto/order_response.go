package dto

import (
	"time"

	"shop_backend/internal/feature/orders/domain/entity"
)

// OrderItemResp は注文レスポンス内の1明細を表します。
// priceは注文時点のスナップショット単価です。
type OrderItemResp struct {
	ProductUUID string  `json:"product_uuid"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderResp は1件の注文を表すレスポンスボディです。
type OrderResp struct {
	UUID      string          `json:"uuid"`
	Status    string          `json:"status"`
	Amount    float64         `json:"amount"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItemResp `json:"items"`
}

// OrdersPageResp は注文一覧の1ページ分を表すレスポンスボディです。
type OrdersPageResp struct {
	Orders   []OrderResp `json:"orders"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

// FromOrder はドメインエンティティをレスポンスDTOへ変換します。
func FromOrder(o entity.Order) OrderResp {
	items := make([]OrderItemResp, 0, len(o.Items))
	for _, item := range o.Items {
		r := OrderItemResp{
			ProductUUID: item.ProductUUID,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
		if item.Product != nil {
			r.ProductName = item.Product.Name
		}
		items = append(items, r)
	}
	return OrderResp{
		UUID:      o.UUID,
		Status:    string(o.Status),
		Amount:    o.Amount,
		Comment:   o.Comment,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}
