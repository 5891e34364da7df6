package repository

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar el stock por producto.
// Get y GetForUpdate devuelven (nil, nil) si el producto no tiene fila de stock.
type StockRepository interface {
	Get(ctx context.Context, productID int) (*entity.ProductStock, error)
	// GetForUpdate bloquea la fila hasta que termine la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID int) (*entity.ProductStock, error)
	Upsert(ctx context.Context, stock *entity.ProductStock) error
	DeleteAll(ctx context.Context) error
}
