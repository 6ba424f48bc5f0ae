// Package usecase implements the business logic for the catalog feature.
package usecase

import "errors"

var (
	// ErrProductNotFound is returned when no product exists for the given UUID.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a decrement would push a
	// product's stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
