package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto. Sin fila devuelve (nil, nil).
func (r *StockRepo) Get(ctx context.Context, productID int) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, quantity, updated_at
		FROM product_stock WHERE product_id = $1`
	return r.scanOne(ctx, "get stock", query, productID)
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Sin fila devuelve (nil, nil) y no bloquea nada.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int) (*entity.ProductStock, error) {
	query := `
		SELECT product_id, quantity, updated_at
		FROM product_stock WHERE product_id = $1
		FOR UPDATE`
	return r.scanOne(ctx, "get stock for update", query, productID)
}

func (r *StockRepo) scanOne(ctx context.Context, op, query string, productID int) (*entity.ProductStock, error) {
	var s entity.ProductStock
	err := r.q.QueryRow(ctx, query, productID).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock del producto.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.ProductStock) error {
	query := `
		INSERT INTO product_stock (product_id, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, stock.ProductID, stock.Quantity).Scan(&stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// DeleteAll borra todas las filas de stock.
func (r *StockRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_stock`); err != nil {
		return fmt.Errorf("delete all stock: %w", err)
	}
	return nil
}
