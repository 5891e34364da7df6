package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrCatalogUnavailable = errors.New("catálogo de productos no disponible")
)

// Errores específicos: envuelven al genérico para que errors.Is funcione con ambos.
var (
	ErrProductNotFound     = fmt.Errorf("producto no encontrado: %w", ErrNotFound)
	ErrStockNotFound       = fmt.Errorf("stock del producto no encontrado: %w", ErrNotFound)
	ErrPurchaseNotFound    = fmt.Errorf("compra no encontrada: %w", ErrNotFound)
	ErrInsufficientStock   = fmt.Errorf("stock insuficiente: %w", ErrConflict)
	ErrIdempotencyMismatch = fmt.Errorf("idempotency key usada con otra compra: %w", ErrConflict)
)

// Kind clasifica un error para que la capa de transporte elija el status sin conocer cada sentinel.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindUnavailable
	KindUnauthorized
)

// String devuelve el nombre del kind (útil en logs).
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindUnavailable:
		return "unavailable"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// KindOf devuelve el Kind de err. Cualquier error no reconocido es KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrCatalogUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// InvalidInput envuelve ErrInvalidInput con el detalle del campo rechazado.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
