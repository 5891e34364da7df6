package http

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
)

// HeaderIdempotencyKey header opcional para reintentos seguros de POST /purchases.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	maxIdempotencyKeyLen = 100
)

// PurchaseHandler maneja el registro y la consulta de compras.
type PurchaseHandler struct {
	uc      *inventory.PurchaseUseCase
	receipt *inventory.ReceiptUseCase
}

// NewPurchaseHandler construye el handler. receipt puede ser nil (sin comprobante PDF).
func NewPurchaseHandler(uc *inventory.PurchaseUseCase, receipt *inventory.ReceiptUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Verifica el producto en el catálogo, descuenta stock y guarda la compra con el precio vigente.
// @Tags         purchases
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                     false  "Clave para reintentos seguros (máx. 100 caracteres)"
// @Param        body             body      dto.CreatePurchaseRequest  true   "productId, quantity"
// @Success      201              {object}  dto.PurchaseResponse
// @Failure      400              {object}  dto.ErrorResponse
// @Failure      404              {object}  dto.ErrorResponse
// @Failure      409              {object}  dto.ErrorResponse
// @Failure      502              {object}  dto.ErrorResponse
// @Router       /api/v1/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return badRequest(c, "VALIDATION", fmt.Sprintf("%s admite máximo %d caracteres", HeaderIdempotencyKey, maxIdempotencyKeyLen))
	}
	out, err := h.uc.CreatePurchase(c.UserContext(), dto.CreatePurchaseInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		IdempotencyKey: key,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra
// @Description  Compra registrada con el nombre actual del producto. Si el producto ya no está en el catálogo, productAvailable es false.
// @Tags         purchases
// @Security     ApiKeyAuth
// @Produce      json
// @Param        id   path      int  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := parsePurchaseID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "id de compra inválido")
	}
	out, err := h.uc.GetPurchaseByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DownloadReceipt godoc
// @Summary      Comprobante PDF de una compra
// @Tags         purchases
// @Security     ApiKeyAuth
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la compra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/v1/purchases/{id}/receipt [get]
func (h *PurchaseHandler) DownloadReceipt(c *fiber.Ctx) error {
	if h.receipt == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "NOT_IMPLEMENTED", Message: "comprobante no disponible"})
	}
	id, err := parsePurchaseID(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "id de compra inválido")
	}
	pdfBytes, filename, err := h.receipt.DownloadReceipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

func parsePurchaseID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}
