package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
)

// InventoryHandler maneja el detalle de producto con stock y la actualización de stock.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// GetProductDetail godoc
// @Summary      Detalle de producto con stock
// @Description  Datos del catálogo externo combinados con el stock local. Sin stock registrado devuelve stock 0.
// @Tags         inventory
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id   path      int  true  "ID del producto en el catálogo"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/products/{id} [get]
func (h *InventoryHandler) GetProductDetail(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "VALIDATION", "id de producto inválido")
	}
	out, err := h.uc.GetDetail(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStock godoc
// @Summary      Fijar stock de un producto
// @Description  Reemplaza la cantidad disponible (valor absoluto, no delta). Crea la fila si no existía.
// @Tags         inventory
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID del producto en el catálogo"
// @Param        body  body      dto.UpdateStockRequest  true  "quantity >= 0"
// @Success      200   {object}  dto.ProductDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/v1/inventory/products/{id}/stock [patch]
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	productID, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "VALIDATION", "id de producto inválido")
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.Quantity == nil {
		return badRequest(c, "VALIDATION", "quantity es requerido")
	}
	out, err := h.uc.SetStock(c.UserContext(), productID, *in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
