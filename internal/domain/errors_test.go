package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-service/internal/domain"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.Kind
	}{
		{"producto no encontrado", domain.ErrProductNotFound, domain.KindNotFound},
		{"stock no encontrado", domain.ErrStockNotFound, domain.KindNotFound},
		{"compra no encontrada envuelta", fmt.Errorf("capa superior: %w", domain.ErrPurchaseNotFound), domain.KindNotFound},
		{"stock insuficiente", domain.ErrInsufficientStock, domain.KindConflict},
		{"idempotency mismatch", domain.ErrIdempotencyMismatch, domain.KindConflict},
		{"validación", domain.InvalidInput("quantity debe ser >= 0"), domain.KindValidation},
		{"catálogo caído", fmt.Errorf("GET /products/1: %w", domain.ErrCatalogUnavailable), domain.KindUnavailable},
		{"no autorizado", domain.ErrUnauthorized, domain.KindUnauthorized},
		{"error inesperado", errors.New("conexión rechazada"), domain.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.KindOf(tc.err))
		})
	}
}

// El catálogo caído nunca debe confundirse con un producto inexistente.
func TestKindOf_CatalogUnavailableIsNotNotFound(t *testing.T) {
	err := fmt.Errorf("catalog: %w", domain.ErrCatalogUnavailable)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.False(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestSpecificSentinelsWrapGeneric(t *testing.T) {
	assert.ErrorIs(t, domain.ErrProductNotFound, domain.ErrNotFound)
	assert.ErrorIs(t, domain.ErrInsufficientStock, domain.ErrConflict)
	assert.NotErrorIs(t, domain.ErrInsufficientStock, domain.ErrNotFound)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", domain.KindNotFound.String())
	assert.Equal(t, "internal", domain.KindInternal.String())
}
