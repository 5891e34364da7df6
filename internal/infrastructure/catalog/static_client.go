package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

var _ ports.CatalogClient = (*StaticClient)(nil)

// StaticClient catálogo en memoria: para tests y para correr el servicio sin el servicio de productos.
type StaticClient struct {
	mu       sync.RWMutex
	products map[int]entity.CatalogProduct
	failure  error
	calls    atomic.Int64
}

// NewStaticClient construye el catálogo con los productos dados.
func NewStaticClient(products ...entity.CatalogProduct) *StaticClient {
	c := &StaticClient{products: make(map[int]entity.CatalogProduct, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put agrega o reemplaza un producto.
func (c *StaticClient) Put(p entity.CatalogProduct) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID] = p
}

// Remove quita un producto; las consultas siguientes lo ven como ausente.
func (c *StaticClient) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.products, productID)
}

// FailWith hace que toda consulta devuelva err (nil restablece el comportamiento normal).
func (c *StaticClient) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failure = err
}

// Calls número de consultas recibidas.
func (c *StaticClient) Calls() int64 {
	return c.calls.Load()
}

// GetProduct devuelve una copia del producto, (nil, nil) si no existe.
func (c *StaticClient) GetProduct(ctx context.Context, productID int) (*entity.CatalogProduct, error) {
	c.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.failure != nil {
		return nil, c.failure
	}
	p, ok := c.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}
