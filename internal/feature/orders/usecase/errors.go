// Package usecase implements the business logic for the orders feature.
package usecase

import "errors"

var (
	// ErrEmptyOrder is returned when an order request contains no line items.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrInvalidQuantity is returned when a line item's quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Product lookup failures and stock shortages are reported with the catalog
// feature's sentinels (catalog/usecase.ErrProductNotFound and
// catalog/usecase.ErrInsufficientStock), wrapped with the offending product
// UUID. Callers match them with errors.Is.
