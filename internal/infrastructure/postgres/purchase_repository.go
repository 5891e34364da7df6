package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del ledger de compras sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, product_id, quantity, unit_price, total_price, purchase_date, idempotency_key`

// Create inserta la compra; la base asigna id y purchase_date y devuelve los precios tal como quedaron guardados.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	query := `
		INSERT INTO purchases (product_id, quantity, unit_price, total_price, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, unit_price, total_price, purchase_date`
	var key *string
	if purchase.IdempotencyKey != "" {
		key = &purchase.IdempotencyKey
	}
	err := r.q.QueryRow(ctx, query,
		purchase.ProductID, purchase.Quantity, purchase.UnitPrice, purchase.TotalPrice, key,
	).Scan(&purchase.ID, &purchase.UnitPrice, &purchase.TotalPrice, &purchase.PurchaseDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrIdempotencyMismatch
		}
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID. Sin fila devuelve (nil, nil).
func (r *PurchaseRepo) GetByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.scanOne(ctx, "get purchase", query, id)
}

// GetByIdempotencyKey obtiene la compra registrada con esa key. Sin fila devuelve (nil, nil).
func (r *PurchaseRepo) GetByIdempotencyKey(ctx context.Context, key string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE idempotency_key = $1`
	return r.scanOne(ctx, "get purchase by idempotency key", query, key)
}

func (r *PurchaseRepo) scanOne(ctx context.Context, op, query string, arg any) (*entity.Purchase, error) {
	var p entity.Purchase
	var key *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.ProductID, &p.Quantity, &p.UnitPrice, &p.TotalPrice, &p.PurchaseDate, &key,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if key != nil {
		p.IdempotencyKey = *key
	}
	return &p, nil
}

// DeleteAll vacía el ledger.
func (r *PurchaseRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchases`); err != nil {
		return fmt.Errorf("delete all purchases: %w", err)
	}
	return nil
}
