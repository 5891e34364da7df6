package entity

import "time"

// ProductStock representa el stock local de un producto del catálogo (una fila por ProductID).
// Quantity nunca es negativo después de una operación confirmada.
type ProductStock struct {
	ProductID int
	Quantity  int
	UpdatedAt time.Time
}

// NewProductStock crea una fila de stock en cero para un producto sin stock registrado.
func NewProductStock(productID int) *ProductStock {
	return &ProductStock{ProductID: productID}
}

// CanFulfill indica si hay unidades suficientes para una compra de quantity unidades.
func (s *ProductStock) CanFulfill(quantity int) bool {
	return s.Quantity >= quantity
}
