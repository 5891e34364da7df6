package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

// ResetUseCase borra todo el stock y todas las compras (uso operativo y de pruebas).
// No se expone por HTTP.
type ResetUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewResetUseCase construye el caso de uso.
func NewResetUseCase(txRunner TxRunner, log *logger.Logger) *ResetUseCase {
	return &ResetUseCase{txRunner: txRunner, log: log.Named("reset")}
}

// ResetAll vacía el ledger y el stock en una sola transacción.
func (uc *ResetUseCase) ResetAll(ctx context.Context) error {
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRepository, purchaseRepo repository.PurchaseRepository) error {
		if err := purchaseRepo.DeleteAll(ctx); err != nil {
			return err
		}
		return stockRepo.DeleteAll(ctx)
	})
	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	uc.log.Warn().Msg("stock y compras eliminados")
	return nil
}
