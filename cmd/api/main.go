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

	"github.com/avidelsur/distribuidora-api/internal/application/auth"
	"github.com/avidelsur/distribuidora-api/internal/application/catalog"
	"github.com/avidelsur/distribuidora-api/internal/application/factory"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/infrastructure/notify"
	infrapdf "github.com/avidelsur/distribuidora-api/internal/infrastructure/pdf"
	"github.com/avidelsur/distribuidora-api/internal/infrastructure/postgres"
	httpRouter "github.com/avidelsur/distribuidora-api/internal/interfaces/http"
	"github.com/avidelsur/distribuidora-api/pkg/config"
	"github.com/avidelsur/distribuidora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	productRepo := postgres.NewProductRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	vehicleStockRepo := postgres.NewVehicleStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	siloRepo := postgres.NewSiloRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.New(notificationRepo)
	receipts := infrapdf.NewReceiptGenerator(cfg.Receipts.Dir)

	applyUC := ledger.NewApplyMovementUseCase(txRunner)
	loadUC := ledger.NewLoadVehicleUseCase(txRunner, applyUC, vehicleRepo, notifier)
	purchaseUC := ledger.NewRegisterPurchaseUseCase(txRunner, applyUC, productRepo, purchaseRepo, receipts, notifier)
	queryUC := ledger.NewQueryUseCase(movementRepo, vehicleStockRepo)
	tripUC := trips.NewUseCase(txRunner, applyUC, tripRepo, vehicleRepo, userRepo, notifier)
	saleUC := sales.NewUseCase(txRunner, applyUC, userRepo, clientRepo, tripRepo, saleRepo, notifier)
	factoryUC := factory.NewUseCase(txRunner, siloRepo)
	catalogUC := catalog.NewUseCase(productRepo, clientRepo, vehicleRepo, vehicleStockRepo, tripRepo, notificationRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Distribuidora API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CatalogUC:  catalogUC,
		ApplyUC:    applyUC,
		LoadUC:     loadUC,
		PurchaseUC: purchaseUC,
		QueryUC:    queryUC,
		TripUC:     tripUC,
		SaleUC:     saleUC,
		FactoryUC:  factoryUC,
		JWTSecret:  cfg.JWT.Secret,
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
