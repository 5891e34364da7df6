// Comando inventoryctl: tareas operativas sobre la base de inventario.
//
//	inventoryctl migrate               aplica las migraciones SQL
//	inventoryctl reset                 borra compras y stock (entornos de prueba)
//	inventoryctl set-stock <id> <qty>  fija el stock de un producto (valida contra el catálogo)
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/infrastructure/catalog"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

const usage = `uso: inventoryctl <comando>

  migrate               aplica las migraciones SQL
  reset                 borra todas las compras y el stock
  set-stock <id> <qty>  fija el stock de un producto`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Named("inventoryctl")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, log, os.Args[1], os.Args[2:]); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("comando fallido")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, cmd string, args []string) error {
	if cfg.Store.Driver != config.DriverPostgres {
		return fmt.Errorf("inventoryctl requiere STORE_DRIVER=postgres (actual: %s)", cfg.Store.Driver)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	txRunner := postgres.NewTxRunner(pool)

	switch cmd {
	case "migrate":
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return err
		}
		log.Info().Strs("files", applied).Msg("migraciones aplicadas")
		return nil

	case "reset":
		return inventory.NewResetUseCase(txRunner, log).ResetAll(ctx)

	case "set-stock":
		if len(args) != 2 {
			return fmt.Errorf("set-stock requiere <id> <qty>")
		}
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("id inválido %q: %w", args[0], err)
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("qty inválida %q: %w", args[1], err)
		}
		client := catalog.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout())
		uc := inventory.NewStockUseCase(client, postgres.NewStockRepository(pool), txRunner, log)
		detail, err := uc.SetStock(ctx, productID, qty)
		if err != nil {
			return err
		}
		fmt.Printf("%d\t%s\tstock=%d\n", detail.ID, detail.Name, detail.Stock)
		return nil

	default:
		return fmt.Errorf("comando desconocido %q\n%s", cmd, usage)
	}
}
