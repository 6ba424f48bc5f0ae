// Package entity defines the domain entities for the orders feature.
package entity

import (
	"time"

	catalogentity "shop_backend/internal/feature/catalog/domain/entity"
)

// OrderStatus は注文のライフサイクル状態を表します。
type OrderStatus string

const (
	// OrderStatusNew is the initial status of every created order.
	OrderStatusNew OrderStatus = "new"

	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a placed order with its line items.
// Amount is computed once at creation and never recomputed.
type Order struct {
	// UUID is the public identifier for the order.
	UUID string `gorm:"primaryKey;size:36"`

	// UserID references the owning user.
	UserID uint `gorm:"index;not null"`

	// Status is the lifecycle state. Always OrderStatusNew on creation.
	Status OrderStatus `gorm:"size:32;not null"`

	// Amount is the order total: the sum of price * quantity over all
	// items, using prices snapshotted at creation time.
	Amount float64 `gorm:"not null"`

	// Comment is an optional free-text note from the customer.
	Comment string `gorm:"size:1000"`

	// CreatedAt is the timestamp when the order was placed.
	CreatedAt time.Time

	// Items are the line items belonging to this order.
	Items []OrderItem `gorm:"foreignKey:OrderUUID;references:UUID"`
}

// TableName はGORMが使用するテーブル名を指定します。
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single line item within an order.
// Price is the unit price copied from the catalog at order time, so later
// catalog price changes do not retroactively affect past orders.
type OrderItem struct {
	ID uint `gorm:"primaryKey"`

	// OrderUUID references the owning order.
	OrderUUID string `gorm:"index;size:36;not null"`

	// ProductUUID references the ordered product.
	ProductUUID string `gorm:"size:36;not null"`

	// Quantity is the ordered amount. Always positive.
	Quantity int `gorm:"not null"`

	// Price is the unit price snapshotted at order time.
	Price float64 `gorm:"not null"`

	// Product is the referenced catalog product, loadable on demand.
	Product *catalogentity.Product `gorm:"foreignKey:ProductUUID;references:UUID"`
}

// TableName はGORMが使用するテーブル名を指定します。
func (OrderItem) TableName() string {
	return "order_items"
}
