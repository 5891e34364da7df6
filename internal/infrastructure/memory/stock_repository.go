package memory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository en memoria (usable con o sin tx).
type StockRepo struct {
	store *Store
	tx    *memTx
}

// NewStockRepository construye el repo fuera de transacción (cada escritura se confirma sola).
func NewStockRepository(store *Store) *StockRepo {
	return &StockRepo{store: store}
}

// Get devuelve el stock visible para la tx (pendiente o confirmado), o nil si no hay fila.
func (r *StockRepo) Get(_ context.Context, productID int) (*entity.ProductStock, error) {
	if r.tx != nil {
		if st, ok := r.tx.stock[productID]; ok {
			return &st, nil
		}
		if r.tx.clearStock {
			return nil, nil
		}
	}
	st, _ := r.store.getStock(productID)
	return st, nil
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
// Fuera de transacción se comporta como Get.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int) (*entity.ProductStock, error) {
	if r.tx != nil {
		if err := r.tx.lock(ctx, productID); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, productID)
}

// Upsert inserta o reemplaza la fila del producto.
func (r *StockRepo) Upsert(_ context.Context, stock *entity.ProductStock) error {
	if r.tx != nil {
		r.tx.stock[stock.ProductID] = *stock
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.stock[stock.ProductID] = *stock
	return nil
}

// DeleteAll elimina todas las filas de stock.
func (r *StockRepo) DeleteAll(_ context.Context) error {
	if r.tx != nil {
		r.tx.clearStock = true
		r.tx.stock = make(map[int]entity.ProductStock)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.stock = make(map[int]entity.ProductStock)
	return nil
}
