package catalog

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

var _ ports.CatalogClient = (*SingleflightClient)(nil)

// SingleflightClient agrupa consultas concurrentes del mismo producto en una sola llamada al catálogo.
// No es un caché: cuando la llamada termina el resultado se descarta y la siguiente consulta vuelve a salir.
type SingleflightClient struct {
	next  ports.CatalogClient
	group singleflight.Group
}

// NewSingleflightClient envuelve next.
func NewSingleflightClient(next ports.CatalogClient) *SingleflightClient {
	return &SingleflightClient{next: next}
}

// GetProduct delega en next compartiendo la llamada en curso para el mismo id.
// La llamada compartida no depende del contexto de un solo caller; cada caller deja de esperar
// cuando su propio contexto se cancela.
func (c *SingleflightClient) GetProduct(ctx context.Context, productID int) (*entity.CatalogProduct, error) {
	ch := c.group.DoChan(strconv.Itoa(productID), func() (any, error) {
		return c.next.GetProduct(context.WithoutCancel(ctx), productID)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		product, _ := res.Val.(*entity.CatalogProduct)
		if product == nil {
			return nil, nil
		}
		cp := *product
		return &cp, nil
	}
}
