// Package dto defines data transfer objects for the catalog feature's HTTP transport layer.
package dto

// ProductResp represents a single product in the /products response.
type ProductResp struct {
	UUID  string  `json:"uuid"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}
