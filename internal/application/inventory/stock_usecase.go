package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// StockUseCase combina los datos del catálogo con el stock local y permite fijar el stock.
type StockUseCase struct {
	catalog   ports.CatalogClient
	stockRepo repository.StockRepository
	txRunner  TxRunner
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso de stock.
func NewStockUseCase(
	catalog ports.CatalogClient,
	stockRepo repository.StockRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		catalog:   catalog,
		stockRepo: stockRepo,
		txRunner:  txRunner,
		log:       log.Named("stock"),
	}
}

// GetDetail devuelve el producto del catálogo con su stock local.
// Un producto sin fila de stock se informa con stock 0; no se crea la fila.
func (uc *StockUseCase) GetDetail(ctx context.Context, productID int) (*dto.ProductDetailResponse, error) {
	if productID <= 0 {
		return nil, domain.InvalidInput("id de producto inválido: %d", productID)
	}
	product, err := fetchProduct(ctx, uc.catalog, productID)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("obtener stock: %w", err)
	}
	quantity := 0
	if stock != nil {
		quantity = stock.Quantity
	}
	return toProductDetail(product, quantity), nil
}

// SetStock fija el stock absoluto de un producto (no es un delta).
// El producto debe existir en el catálogo; la fila se crea si no existía.
// Bloquea la fila para no pisar un descuento de compra concurrente.
func (uc *StockUseCase) SetStock(ctx context.Context, productID, quantity int) (*dto.ProductDetailResponse, error) {
	if productID <= 0 {
		return nil, domain.InvalidInput("id de producto inválido: %d", productID)
	}
	if quantity < 0 {
		return nil, domain.InvalidInput("quantity debe ser mayor o igual a 0")
	}
	product, err := fetchProduct(ctx, uc.catalog, productID)
	if err != nil {
		return nil, err
	}

	previous := 0
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.PurchaseRepository) error {
		stock, err := stockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if stock == nil {
			stock = entity.NewProductStock(product.ID)
		}
		previous = stock.Quantity
		stock.Quantity = quantity
		stock.UpdatedAt = time.Now().UTC()
		return stockRepo.Upsert(ctx, stock)
	})
	if err != nil {
		return nil, fmt.Errorf("actualizar stock: %w", err)
	}

	uc.log.Info().
		Int("productId", productID).
		Int("previous", previous).
		Int("quantity", quantity).
		Msg("stock actualizado")

	return toProductDetail(product, quantity), nil
}
