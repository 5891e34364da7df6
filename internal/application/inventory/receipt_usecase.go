package inventory

import (
	"context"
	"fmt"
)

// ReceiptUseCase genera el comprobante PDF de una compra ya registrada.
type ReceiptUseCase struct {
	purchases *PurchaseUseCase
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(purchases *PurchaseUseCase, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{purchases: purchases, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// Los errores de GetPurchaseByID (no encontrada, catálogo caído) se propagan sin cambios.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, purchaseID int64) (pdfBytes []byte, filename string, err error) {
	purchase, err := uc.purchases.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GeneratePurchaseReceipt(ctx, purchase)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("compra_%d.pdf", purchase.ID), nil
}
