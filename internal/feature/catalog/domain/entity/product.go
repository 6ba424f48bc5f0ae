// Package entity defines the domain entities for the catalog feature.
package entity

import "time"

// Product represents a sellable item in the catalog.
// Price and Stock are owned by the catalog; the only mutation this
// service performs is the conditional stock decrement on order commit.
type Product struct {
	// UUID is the public identifier for the product.
	UUID string `gorm:"primaryKey;size:36"`

	// Name is the display name of the product.
	Name string `gorm:"size:255;not null"`

	// Price is the current unit price. Orders snapshot it at creation
	// time, so later changes never affect past orders.
	Price float64 `gorm:"not null"`

	// Stock is the quantity available for sale. Never negative.
	Stock int `gorm:"not null;default:0"`

	// CreatedAt is the timestamp when the product was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the product was last updated.
	UpdatedAt time.Time
}

// TableName はGORMが使用するテーブル名を指定します。
func (Product) TableName() string {
	return "products"
}
