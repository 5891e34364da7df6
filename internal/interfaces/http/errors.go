package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/domain"
)

// LocalError guarda el error de dominio para el log de acceso.
const LocalError = "error"

// errorResponse traduce un error de los casos de uso a status HTTP y cuerpo.
func errorResponse(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"}
	case errors.Is(err, domain.ErrIdempotencyMismatch):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "IDEMPOTENCY_MISMATCH", Message: "la Idempotency-Key ya se usó con otra compra"}
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "producto no encontrado"}
	case errors.Is(err, domain.ErrStockNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "STOCK_NOT_FOUND", Message: "el producto no tiene stock registrado"}
	case errors.Is(err, domain.ErrPurchaseNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "PURCHASE_NOT_FOUND", Message: "compra no encontrada"}
	}

	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"}
	case domain.KindConflict:
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"}
	case domain.KindValidation:
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case domain.KindUnavailable:
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "CATALOG_UNAVAILABLE", Message: "catálogo de productos no disponible"}
	case domain.KindUnauthorized:
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
	}
}

// writeError responde con el error traducido y lo deja en Locals para el log de acceso.
func writeError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
