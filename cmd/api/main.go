package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/jforero/kardex-api/internal/application/usecase"
	"github.com/jforero/kardex-api/internal/infrastructure/postgres"
	"github.com/jforero/kardex-api/internal/infrastructure/redis"
	httpRouter "github.com/jforero/kardex-api/internal/interfaces/http"
	"github.com/jforero/kardex-api/pkg/config"
	"github.com/jforero/kardex-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de stock opcional: sin REDIS_URL el cálculo va siempre a replay.
	var stockCache inventory.StockCache
	if cfg.Redis.URL != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		ttl := time.Duration(cfg.Redis.TTLSeconds) * time.Second
		stockCache = redis.NewStockCache(client, ttl, log.Zerolog())
		log.Info().Str("ttl", ttl.String()).Msg("cache de stock habilitada")
	}

	movementUC := inventory.NewMovementUseCase(txRunner, itemRepo, warehouseRepo, stockCache)
	transferUC := inventory.NewTransferUseCase(txRunner, itemRepo, warehouseRepo, stockCache)
	stockUC := inventory.NewStockUseCase(movementRepo, itemRepo, stockCache)
	lowStockUC := inventory.NewLowStockUseCase(stockUC, itemRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, movementRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, txRunner, stockCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kardex API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		WarehouseUC: warehouseUC,
		MovementUC:  movementUC,
		TransferUC:  transferUC,
		StockUC:     stockUC,
		LowStockUC:  lowStockUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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
