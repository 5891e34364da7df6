package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// PurchaseUseCase registra compras contra el stock local de forma transaccional:
// consulta el catálogo, bloquea la fila de stock (SELECT FOR UPDATE), verifica disponibilidad,
// guarda la compra y descuenta el stock en la misma transacción.
type PurchaseUseCase struct {
	catalog      ports.CatalogClient
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	catalog ports.CatalogClient,
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		catalog:      catalog,
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		log:          log.Named("purchases"),
	}
}

// CreatePurchase registra una compra de in.Quantity unidades de in.ProductID.
//
// Retorna:
//   - domain.ErrInvalidInput      si productId o quantity no son positivos (sin tocar los stores)
//     o si el total excede entity.MaxTotalPrice.
//   - domain.ErrProductNotFound   si el producto no existe en el catálogo.
//   - domain.ErrStockNotFound     si el producto nunca tuvo stock registrado.
//   - domain.ErrInsufficientStock si el stock no alcanza; no se modifica nada.
//   - domain.ErrCatalogUnavailable si el catálogo no responde.
//
// Con IdempotencyKey, un reintento de la misma compra devuelve la compra original sin volver a
// descontar stock.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, in dto.CreatePurchaseInput) (*dto.PurchaseResponse, error) {
	if in.ProductID <= 0 {
		return nil, domain.InvalidInput("productId es requerido")
	}
	if in.Quantity <= 0 {
		return nil, domain.InvalidInput("quantity debe ser mayor que 0")
	}

	// El catálogo se consulta antes de abrir la transacción: una llamada lenta no debe
	// retener el bloqueo de la fila de stock.
	product, err := fetchProduct(ctx, uc.catalog, in.ProductID)
	if err != nil {
		return nil, err
	}
	if entity.NewPurchase(in.ProductID, in.Quantity, product.Price, "").ExceedsMaxTotal() {
		return nil, domain.InvalidInput("el total de la compra excede %s", entity.MaxTotalPrice)
	}

	var (
		saved    *entity.Purchase
		replayed bool
	)
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		// Bloquea la fila de stock; las compras concurrentes del mismo producto esperan aquí
		stock, err := stockRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}

		// La búsqueda por key va después del bloqueo para ver la compra de un reintento concurrente ya confirmado.
		// Va antes de revisar la fila: una key reusada con otro producto es conflicto aunque ese producto no tenga stock.
		if in.IdempotencyKey != "" {
			prev, err := purchaseRepo.GetByIdempotencyKey(ctx, in.IdempotencyKey)
			if err != nil {
				return err
			}
			if prev != nil {
				if !prev.SameRequest(in.ProductID, in.Quantity) {
					return domain.ErrIdempotencyMismatch
				}
				saved, replayed = prev, true
				return nil
			}
		}

		if stock == nil {
			return domain.ErrStockNotFound
		}

		if !stock.CanFulfill(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		purchase := entity.NewPurchase(in.ProductID, in.Quantity, product.Price, in.IdempotencyKey)
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}

		stock.Quantity -= in.Quantity
		stock.UpdatedAt = purchase.PurchaseDate
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}
		saved = purchase
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().
				Int("productId", in.ProductID).
				Int("quantity", in.Quantity).
				Msg("compra rechazada: stock insuficiente")
		}
		return nil, fmt.Errorf("registrar compra: %w", err)
	}

	if replayed {
		uc.log.Info().
			Int64("purchaseId", saved.ID).
			Str("idempotencyKey", in.IdempotencyKey).
			Msg("compra repetida con la misma idempotency key")
	} else {
		uc.log.Info().
			Int64("purchaseId", saved.ID).
			Int("productId", saved.ProductID).
			Int("quantity", saved.Quantity).
			Str("total", saved.TotalPrice.String()).
			Msg("compra registrada")
	}

	return toPurchaseResponse(saved, product), nil
}

// GetPurchaseByID devuelve una compra con el nombre actual del producto.
// Si el producto ya no existe en el catálogo la compra se devuelve igual, con un nombre de
// reemplazo y ProductAvailable=false; la compra es un registro histórico.
func (uc *PurchaseUseCase) GetPurchaseByID(ctx context.Context, id int64) (*dto.PurchaseResponse, error) {
	if id <= 0 {
		return nil, domain.InvalidInput("id de compra inválido: %d", id)
	}
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener compra: %w", err)
	}
	if purchase == nil {
		return nil, domain.ErrPurchaseNotFound
	}

	product, err := uc.catalog.GetProduct(ctx, purchase.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar catálogo: %w", err)
	}
	if product == nil {
		uc.log.Warn().
			Int64("purchaseId", id).
			Int("productId", purchase.ProductID).
			Msg("producto de la compra ya no existe en el catálogo")
	}
	return toPurchaseResponse(purchase, product), nil
}
