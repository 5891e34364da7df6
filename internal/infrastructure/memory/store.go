// Package memory implementa los puertos de persistencia en memoria (STORE_DRIVER=memory y tests).
//
// Reproduce la semántica que el inventario espera de PostgreSQL:
//   - GetForUpdate bloquea la fila del producto hasta que termina la transacción;
//   - las escrituras de una transacción se aplican juntas al confirmar, o se descartan;
//   - los IDs de compra salen de una secuencia (puede haber huecos si se hace rollback).
package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// Store guarda el stock y el ledger de compras confirmados.
type Store struct {
	mu        sync.RWMutex
	stock     map[int]entity.ProductStock
	purchases map[int64]entity.Purchase
	byKey     map[string]int64

	seq   atomic.Int64
	locks *rowLocks
	now   func() time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		stock:     make(map[int]entity.ProductStock),
		purchases: make(map[int64]entity.Purchase),
		byKey:     make(map[string]int64),
		locks:     newRowLocks(),
		now:       time.Now,
	}
}

// StockCount devuelve cuántas filas de stock hay confirmadas.
func (s *Store) StockCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stock)
}

// PurchaseCount devuelve cuántas compras hay confirmadas.
func (s *Store) PurchaseCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.purchases)
}

func (s *Store) getStock(productID int) (*entity.ProductStock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stock[productID]
	if !ok {
		return nil, false
	}
	return &st, true
}

func (s *Store) getPurchase(id int64) (*entity.Purchase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.purchases[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (s *Store) getPurchaseByKey(key string) (*entity.Purchase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	p := s.purchases[id]
	return &p, true
}

// assignPurchase completa ID y fecha como lo haría la secuencia y el DEFAULT now() de la tabla.
func (s *Store) assignPurchase(p *entity.Purchase) {
	p.ID = s.seq.Add(1)
	p.PurchaseDate = s.now().UTC()
}

// rowLocks bloqueos por producto. Cada fila es un canal de capacidad 1 para poder
// abandonar la espera si el contexto se cancela.
type rowLocks struct {
	mu    sync.Mutex
	locks map[int]chan struct{}
}

func newRowLocks() *rowLocks {
	return &rowLocks{locks: make(map[int]chan struct{})}
}

func (l *rowLocks) slot(productID int) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[productID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[productID] = ch
	}
	return ch
}

func (l *rowLocks) acquire(ctx context.Context, productID int) error {
	select {
	case l.slot(productID) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *rowLocks) release(productID int) {
	<-l.slot(productID)
}
