package ports

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// CatalogClient define el puerto de salida hacia el catálogo externo de productos.
// El inventario no es dueño de los productos: nombre, precio y existencia se consultan aquí.
type CatalogClient interface {
	// GetProduct devuelve (nil, nil) cuando el producto no existe en el catálogo.
	// Cualquier otra falla (red, timeout, respuesta inesperada) devuelve un error que envuelve
	// domain.ErrCatalogUnavailable y nunca se confunde con "no existe".
	GetProduct(ctx context.Context, productID int) (*entity.CatalogProduct, error)
}
