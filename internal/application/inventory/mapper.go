package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
)

// fetchProduct consulta el catálogo y convierte "no existe" en domain.ErrProductNotFound.
// Las fallas de transporte se propagan tal cual (envuelven domain.ErrCatalogUnavailable).
func fetchProduct(ctx context.Context, catalog ports.CatalogClient, productID int) (*entity.CatalogProduct, error) {
	product, err := catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("consultar catálogo: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func toProductDetail(product *entity.CatalogProduct, stock int) *dto.ProductDetailResponse {
	return &dto.ProductDetailResponse{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Description: product.Description,
		Stock:       stock,
	}
}

// toPurchaseResponse combina la compra con el nombre actual del producto.
// product nil = el producto ya no está en el catálogo.
func toPurchaseResponse(p *entity.Purchase, product *entity.CatalogProduct) *dto.PurchaseResponse {
	name := fmt.Sprintf("Producto %d", p.ProductID) // fallback
	if product != nil {
		name = product.Name
	}
	return &dto.PurchaseResponse{
		ID:               p.ID,
		ProductID:        p.ProductID,
		ProductName:      name,
		ProductAvailable: product != nil,
		Quantity:         p.Quantity,
		UnitPrice:        p.UnitPrice,
		TotalPrice:       p.TotalPrice,
		PurchaseDate:     p.PurchaseDate,
	}
}
