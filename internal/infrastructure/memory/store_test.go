package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-service/internal/domain"
	"github.com/jhoicas/inventory-service/internal/domain/entity"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/memory"
)

func TestStockRepo_GetSinFilaDevuelveNil(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewStockRepository(store)

	st, err := repo.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestStockRepo_UpsertReemplazaSinDuplicar(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewStockRepository(store)

	require.NoError(t, repo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 5}))
	require.NoError(t, repo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 9}))

	st, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 9, st.Quantity)
	assert.Equal(t, 1, store.StockCount())
}

func TestPurchaseRepo_CreateAsignaIDyFecha(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPurchaseRepository(memory.NewStore())

	first := entity.NewPurchase(1, 2, decimal.NewFromInt(100), "")
	second := entity.NewPurchase(1, 1, decimal.NewFromInt(100), "")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.False(t, first.PurchaseDate.IsZero())

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TotalPrice.Equal(decimal.NewFromInt(200)))

	missing, err := repo.GetByID(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPurchaseRepo_IdempotencyKeyDuplicada(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewPurchaseRepository(memory.NewStore())

	require.NoError(t, repo.Create(ctx, entity.NewPurchase(1, 1, decimal.NewFromInt(5), "k-1")))
	err := repo.Create(ctx, entity.NewPurchase(2, 1, decimal.NewFromInt(5), "k-1"))
	assert.ErrorIs(t, err, domain.ErrIdempotencyMismatch)

	got, err := repo.GetByIdempotencyKey(ctx, "k-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.ProductID)
}

func TestTxRunner_RollbackDescartaEscrituras(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	boom := errors.New("falla a mitad de la transacción")

	err := runner.Run(ctx, func(stockRepo repository.StockRepository, purchaseRepo repository.PurchaseRepository) error {
		require.NoError(t, stockRepo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 3}))
		require.NoError(t, purchaseRepo.Create(ctx, entity.NewPurchase(1, 1, decimal.NewFromInt(1), "")))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.StockCount())
	assert.Zero(t, store.PurchaseCount())
}

func TestTxRunner_LecturasVenEscriturasPendientes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	err := runner.Run(ctx, func(stockRepo repository.StockRepository, purchaseRepo repository.PurchaseRepository) error {
		require.NoError(t, stockRepo.Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 3}))
		st, err := stockRepo.GetForUpdate(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, st.Quantity)

		// Fuera de la tx todavía no se ve
		outside, _ := memory.NewStockRepository(store).Get(ctx, 1)
		assert.Nil(t, outside)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.StockCount())
}

func TestTxRunner_GetForUpdateSerializaPorProducto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	require.NoError(t, memory.NewStockRepository(store).Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 0}))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.PurchaseRepository) error {
				st, err := stockRepo.GetForUpdate(ctx, 1)
				if err != nil {
					return err
				}
				// lectura-modificación-escritura; sin bloqueo se perderían incrementos
				time.Sleep(time.Millisecond)
				st.Quantity++
				return stockRepo.Upsert(ctx, st)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	st, err := memory.NewStockRepository(store).Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, workers, st.Quantity)
}

func TestTxRunner_GetForUpdateRespetaContexto(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	locked := make(chan struct{})
	done := make(chan struct{})

	go func() {
		_ = runner.Run(context.Background(), func(stockRepo repository.StockRepository, _ repository.PurchaseRepository) error {
			_, _ = stockRepo.GetForUpdate(context.Background(), 1)
			close(locked)
			<-done
			return nil
		})
	}()
	<-locked
	defer close(done)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := runner.Run(ctx, func(stockRepo repository.StockRepository, _ repository.PurchaseRepository) error {
		_, err := stockRepo.GetForUpdate(ctx, 1)
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTxRunner_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, memory.NewStockRepository(store).Upsert(ctx, &entity.ProductStock{ProductID: 1, Quantity: 2}))
	require.NoError(t, memory.NewPurchaseRepository(store).Create(ctx, entity.NewPurchase(1, 1, decimal.NewFromInt(1), "k")))

	err := memory.NewTxRunner(store).Run(ctx, func(stockRepo repository.StockRepository, purchaseRepo repository.PurchaseRepository) error {
		if err := purchaseRepo.DeleteAll(ctx); err != nil {
			return err
		}
		return stockRepo.DeleteAll(ctx)
	})
	require.NoError(t, err)
	assert.Zero(t, store.StockCount())
	assert.Zero(t, store.PurchaseCount())

	p, err := memory.NewPurchaseRepository(store).GetByIdempotencyKey(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, p)
}
