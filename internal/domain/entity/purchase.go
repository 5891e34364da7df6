package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase es el registro inmutable de una compra confirmada.
// UnitPrice es la foto del precio del catálogo al momento de comprar; TotalPrice se calcula una
// sola vez en NewPurchase y no se recalcula después.
// ID y PurchaseDate los asigna el ledger al persistir.
type Purchase struct {
	ID             int64
	ProductID      int
	Quantity       int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	PurchaseDate   time.Time
	IdempotencyKey string
}

// MaxTotalPrice es el mayor total que admite el ledger (NUMERIC(12,2)).
var MaxTotalPrice = decimal.RequireFromString("9999999999.99")

// NewPurchase construye la compra previa al guardado con el total calculado en aritmética decimal.
func NewPurchase(productID, quantity int, unitPrice decimal.Decimal, idempotencyKey string) *Purchase {
	return &Purchase{
		ProductID:      productID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		TotalPrice:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		IdempotencyKey: idempotencyKey,
	}
}

// SameRequest indica si la compra corresponde a la misma solicitud (producto y cantidad).
// Se usa para validar reintentos con Idempotency-Key.
func (p *Purchase) SameRequest(productID, quantity int) bool {
	return p.ProductID == productID && p.Quantity == quantity
}

// ExceedsMaxTotal indica si el total no cabe en el ledger.
func (p *Purchase) ExceedsMaxTotal() bool {
	return p.TotalPrice.GreaterThan(MaxTotalPrice)
}
