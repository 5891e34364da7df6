package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC    *inventory.StockUseCase
	PurchaseUC *inventory.PurchaseUseCase
	ReceiptUC  *inventory.ReceiptUseCase
	APIKey     string
}

// Router registra las rutas de la API bajo /api/v1 (protegidas con X-API-KEY).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1", APIKeyMiddleware(deps.APIKey))

	inventoryHandler := NewInventoryHandler(deps.StockUC)
	inv := api.Group("/inventory/products")
	inv.Get("/:id", inventoryHandler.GetProductDetail)
	inv.Patch("/:id/stock", inventoryHandler.UpdateStock)

	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.ReceiptUC)
	purchases := api.Group("/purchases")
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Get("/:id/receipt", purchaseHandler.DownloadReceipt)
}
