package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505 en el texto no cuenta")))
}

// testPool conecta a INVENTORY_TEST_DATABASE_URL; sin esa variable el test se salta.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("INVENTORY_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("INVENTORY_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool)
	require.NoError(t, err)
	require.NoError(t, NewTxRunner(pool).Run(ctx, func(s repository.StockRepository, p repository.PurchaseRepository) error {
		if err := p.DeleteAll(ctx); err != nil {
			return err
		}
		return s.DeleteAll(ctx)
	}))
	return pool
}

func TestPostgres_StockYCompras(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	stockRepo := NewStockRepository(pool)
	purchaseRepo := NewPurchaseRepository(pool)

	missing, err := stockRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, stockRepo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 5}))
	require.NoError(t, stockRepo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 3}))
	st, err := stockRepo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Quantity)

	p := entity.NewPurchase(1, 2, decimal.RequireFromString("100.00"), "k-pg")
	require.NoError(t, purchaseRepo.Create(ctx, p))
	assert.Positive(t, p.ID)
	assert.False(t, p.PurchaseDate.IsZero())

	got, err := purchaseRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("200.00")))
	assert.Equal(t, "k-pg", got.IdempotencyKey)
	assert.True(t, p.TotalPrice.Equal(got.TotalPrice), "Create devuelve el total guardado")
	assert.True(t, p.UnitPrice.Equal(got.UnitPrice))

	err = purchaseRepo.Create(ctx, entity.NewPurchase(1, 1, decimal.NewFromInt(1), "k-pg"))
	assert.ErrorIs(t, err, domain.ErrIdempotencyMismatch)
}

func TestPostgres_ForUpdateSerializa(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	require.NoError(t, NewStockRepository(pool).Upsert(ctx, &entity.ProductStock{ProductID: 2, Quantity: 0}))
	runner := NewTxRunner(pool)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(s repository.StockRepository, _ repository.PurchaseRepository) error {
				st, err := s.GetForUpdate(ctx, 2)
				if err != nil {
					return err
				}
				st.Quantity++
				return s.Upsert(ctx, st)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := NewStockRepository(pool).Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, workers, st.Quantity)
}
