package inventory

import (
	"context"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Garantiza que el registro de la compra y el descuento de stock se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante (PDF) de una compra.
type ReceiptGenerator interface {
	GeneratePurchaseReceipt(ctx context.Context, purchase *dto.PurchaseResponse) ([]byte, error)
}
