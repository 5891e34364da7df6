package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción en memoria.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados a la tx; aplica las escrituras si fn devuelve nil y las descarta si no.
// Los bloqueos de fila tomados con GetForUpdate se liberan al final, después del commit.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	tx := newTx(r.store)
	defer tx.releaseLocks()

	if err := fn(&StockRepo{store: r.store, tx: tx}, &PurchaseRepo{store: r.store, tx: tx}); err != nil {
		return err
	}
	if err := tx.commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// memTx escrituras pendientes de una transacción.
type memTx struct {
	store *Store
	held  map[int]bool

	stock     map[int]entity.ProductStock
	purchases []entity.Purchase

	clearStock     bool
	clearPurchases bool
}

func newTx(store *Store) *memTx {
	return &memTx{
		store: store,
		held:  make(map[int]bool),
		stock: make(map[int]entity.ProductStock),
	}
}

func (tx *memTx) lock(ctx context.Context, productID int) error {
	if tx.held[productID] {
		return nil
	}
	if err := tx.store.locks.acquire(ctx, productID); err != nil {
		return fmt.Errorf("lock stock %d: %w", productID, err)
	}
	tx.held[productID] = true
	return nil
}

func (tx *memTx) releaseLocks() {
	for productID := range tx.held {
		tx.store.locks.release(productID)
	}
	tx.held = nil
}

func (tx *memTx) stagedKey(key string) (*entity.Purchase, bool) {
	for i := range tx.purchases {
		if tx.purchases[i].IdempotencyKey == key {
			p := tx.purchases[i]
			return &p, true
		}
	}
	return nil, false
}

// commit aplica todo bajo el lock del store. Revalida la unicidad de las idempotency keys
// porque otra transacción pudo confirmar la misma key mientras esta corría.
func (tx *memTx) commit() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if !tx.clearPurchases {
		for _, p := range tx.purchases {
			if p.IdempotencyKey == "" {
				continue
			}
			if _, dup := s.byKey[p.IdempotencyKey]; dup {
				return domain.ErrIdempotencyMismatch
			}
		}
	}

	if tx.clearPurchases {
		s.purchases = make(map[int64]entity.Purchase)
		s.byKey = make(map[string]int64)
	}
	if tx.clearStock {
		s.stock = make(map[int]entity.ProductStock)
	}
	for _, p := range tx.purchases {
		s.purchases[p.ID] = p
		if p.IdempotencyKey != "" {
			s.byKey[p.IdempotencyKey] = p.ID
		}
	}
	for id, st := range tx.stock {
		s.stock[id] = st
	}
	return nil
}
