package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/v1/purchases.
type CreatePurchaseRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CreatePurchaseInput entrada del caso de uso CreatePurchase.
// IdempotencyKey es opcional; viene del header Idempotency-Key.
type CreatePurchaseInput struct {
	ProductID      int
	Quantity       int
	IdempotencyKey string
}

// PurchaseResponse compra registrada con el nombre actual del producto.
// ProductAvailable es false si el producto ya no existe en el catálogo; en ese caso
// ProductName es un nombre de reemplazo.
type PurchaseResponse struct {
	ID               int64           `json:"id"`
	ProductID        int             `json:"productId"`
	ProductName      string          `json:"productName"`
	ProductAvailable bool            `json:"productAvailable"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	PurchaseDate     time.Time       `json:"purchaseDate"`
}
