package memory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo ledger de compras en memoria (usable con o sin tx).
type PurchaseRepo struct {
	store *Store
	tx    *memTx
}

// NewPurchaseRepository construye el repo fuera de transacción.
func NewPurchaseRepository(store *Store) *PurchaseRepo {
	return &PurchaseRepo{store: store}
}

// Create asigna ID y fecha y guarda la compra. Una idempotency key repetida es un conflicto.
func (r *PurchaseRepo) Create(ctx context.Context, purchase *entity.Purchase) error {
	if purchase.IdempotencyKey != "" {
		prev, err := r.GetByIdempotencyKey(ctx, purchase.IdempotencyKey)
		if err != nil {
			return err
		}
		if prev != nil {
			return domain.ErrIdempotencyMismatch
		}
	}
	r.store.assignPurchase(purchase)

	if r.tx != nil {
		r.tx.purchases = append(r.tx.purchases, *purchase)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if purchase.IdempotencyKey != "" {
		if _, dup := r.store.byKey[purchase.IdempotencyKey]; dup {
			return domain.ErrIdempotencyMismatch
		}
		r.store.byKey[purchase.IdempotencyKey] = purchase.ID
	}
	r.store.purchases[purchase.ID] = *purchase
	return nil
}

// GetByID obtiene una compra por ID, o nil si no existe.
func (r *PurchaseRepo) GetByID(_ context.Context, id int64) (*entity.Purchase, error) {
	if r.tx != nil {
		for i := range r.tx.purchases {
			if r.tx.purchases[i].ID == id {
				p := r.tx.purchases[i]
				return &p, nil
			}
		}
		if r.tx.clearPurchases {
			return nil, nil
		}
	}
	p, _ := r.store.getPurchase(id)
	return p, nil
}

// GetByIdempotencyKey obtiene la compra registrada con esa key, o nil.
func (r *PurchaseRepo) GetByIdempotencyKey(_ context.Context, key string) (*entity.Purchase, error) {
	if r.tx != nil {
		if p, ok := r.tx.stagedKey(key); ok {
			return p, nil
		}
		if r.tx.clearPurchases {
			return nil, nil
		}
	}
	p, _ := r.store.getPurchaseByKey(key)
	return p, nil
}

// DeleteAll vacía el ledger.
func (r *PurchaseRepo) DeleteAll(_ context.Context) error {
	if r.tx != nil {
		r.tx.clearPurchases = true
		r.tx.purchases = nil
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.purchases = make(map[int64]entity.Purchase)
	r.store.byKey = make(map[string]int64)
	return nil
}
