package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-service/docs"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
	"github.com/jhoicas/inventory-service/internal/application/ports"
	"github.com/jhoicas/inventory-service/internal/domain/repository"
	"github.com/jhoicas/inventory-service/internal/infrastructure/catalog"
	"github.com/jhoicas/inventory-service/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/inventory-service/internal/infrastructure/pdf"
	"github.com/jhoicas/inventory-service/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-service/internal/interfaces/http"
	"github.com/jhoicas/inventory-service/pkg/config"
	"github.com/jhoicas/inventory-service/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		stockRepo    repository.StockRepository
		purchaseRepo repository.PurchaseRepository
		txRunner     inventory.TxRunner
	)
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		store := memory.NewStore()
		stockRepo = memory.NewStockRepository(store)
		purchaseRepo = memory.NewPurchaseRepository(store)
		txRunner = memory.NewTxRunner(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		stockRepo = postgres.NewStockRepository(pool)
		purchaseRepo = postgres.NewPurchaseRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	// Catálogo externo: las consultas concurrentes del mismo producto comparten una sola llamada
	var catalogClient ports.CatalogClient = catalog.NewSingleflightClient(
		catalog.NewHTTPClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout()),
	)

	stockUC := inventory.NewStockUseCase(catalogClient, stockRepo, txRunner, log)
	purchaseUC := inventory.NewPurchaseUseCase(catalogClient, txRunner, purchaseRepo, log)
	receiptUC := inventory.NewReceiptUseCase(purchaseUC, infrapdf.NewReceiptGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	httpRouter.UseBaseMiddlewares(app, log)

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swaggerConfig(cfg.HTTP.SwaggerFile)))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		PurchaseUC: purchaseUC,
		ReceiptUC:  receiptUC,
		APIKey:     cfg.Security.APIKey,
	})
	if cfg.Security.APIKey == "" {
		log.Warn().Msg("SECURITY_API_KEY vacío: /api/v1 sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// swaggerConfig usa el archivo de SWAGGER_FILE si existe; si no, el documento embebido en el paquete docs.
func swaggerConfig(path string) swagger.Config {
	cfg := swagger.Config{
		BasePath: "/",
		Path:     "docs",
		Title:    docs.SwaggerInfo.Title,
	}
	if _, err := os.Stat(path); err == nil {
		cfg.FilePath = path
		return cfg
	}
	cfg.FileContent = []byte(docs.SwaggerInfo.ReadDoc())
	return cfg
}
