package dto

import "github.com/shopspring/decimal"

// UpdateStockRequest body para PATCH /api/v1/inventory/products/{id}/stock.
// Quantity es puntero para distinguir "ausente" de 0.
type UpdateStockRequest struct {
	Quantity *int `json:"quantity"`
}

// ProductDetailResponse producto del catálogo combinado con el stock local.
type ProductDetailResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
}
