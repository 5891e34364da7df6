package repository

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// PurchaseRepository define el puerto del ledger de compras (solo inserción).
// No existe Update ni Delete por registro: las compras son inmutables.
type PurchaseRepository interface {
	// Create persiste la compra y asigna ID y PurchaseDate sobre el valor recibido.
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.Purchase, error)
	DeleteAll(ctx context.Context) error
}
