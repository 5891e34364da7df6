package entity

import "github.com/shopspring/decimal"

// CatalogProduct es la vista de solo lectura de un producto del catálogo externo.
// No se persiste localmente: cada operación la vuelve a consultar.
type CatalogProduct struct {
	ID          int
	Name        string
	Price       decimal.Decimal
	Description string
}
