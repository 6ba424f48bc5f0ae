// Package dto はordersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// OrderItemReq は注文リクエスト内の1明細を表します。
type OrderItemReq struct {
	ProductUUID string `json:"product_uuid" binding:"required,uuid"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderReq は/ordersエンドポイントのリクエストボディを表します。
// 明細は1件以上必須、コメントは任意です。
type CreateOrderReq struct {
	Items   []OrderItemReq `json:"items" binding:"required,min=1,dive"`
	Comment string         `json:"comment" binding:"omitempty,max=1000"`
}
