package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avidelsur/distribuidora-api/internal/application/auth"
	"github.com/avidelsur/distribuidora-api/internal/application/catalog"
	"github.com/avidelsur/distribuidora-api/internal/application/factory"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CatalogUC  *catalog.UseCase
	ApplyUC    *ledger.ApplyMovementUseCase
	LoadUC     *ledger.LoadVehicleUseCase
	PurchaseUC *ledger.RegisterPurchaseUseCase
	QueryUC    *ledger.QueryUseCase
	TripUC     *trips.UseCase
	SaleUC     *sales.UseCase
	FactoryUC  *factory.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, alta de usuarios solo admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	backoffice := RequireRole(entity.RoleAdmin, entity.RoleEncargado)
	office := RequireRole(entity.RoleAdmin, entity.RoleEncargado, entity.RoleOficina)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", backoffice, catalogHandler.CreateProduct)
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/:id", catalogHandler.GetProduct)

	clients := protected.Group("/clients")
	clients.Post("/", office, catalogHandler.CreateClient)
	clients.Get("/", catalogHandler.SearchClients)
	clients.Get("/:id", catalogHandler.GetClient)

	// Stock y movimientos
	stockHandler := NewStockHandler(deps.ApplyUC, deps.LoadUC, deps.PurchaseUC, deps.QueryUC)
	tripHandler := NewTripHandler(deps.TripUC)
	saleHandler := NewSaleHandler(deps.SaleUC)
	stock := protected.Group("/stock")
	stock.Post("/movements", backoffice, stockHandler.RegisterMovement)
	stock.Get("/street", stockHandler.GetStreetStock)
	stock.Get("/products/:id/movements", stockHandler.ListProductMovements)

	// Vehículos: ABM, carga, mermas, saldos y libro
	vehicles := protected.Group("/vehicles")
	vehicles.Post("/", backoffice, catalogHandler.CreateVehicle)
	vehicles.Get("/", catalogHandler.ListVehicles)
	vehicles.Delete("/:id", backoffice, catalogHandler.DeleteVehicle)
	vehicles.Post("/:id/load", backoffice, stockHandler.LoadVehicle)
	vehicles.Post("/:id/spoilage", stockHandler.RegisterSpoilage)
	vehicles.Get("/:id/stock", stockHandler.GetVehicleStock)
	vehicles.Get("/:id/movements", stockHandler.ListVehicleMovements)
	vehicles.Get("/:id/balance-check", backoffice, stockHandler.CheckVehicleBalance)
	vehicles.Get("/:id/sales", saleHandler.ListByVehicleAndDate)
	vehicles.Get("/:id/active-trip", tripHandler.ActiveByVehicle)

	// Compras a proveedor
	purchases := protected.Group("/purchases")
	purchases.Post("/", backoffice, stockHandler.RegisterPurchase)

	// Viajes
	tripsGroup := protected.Group("/trips")
	tripsGroup.Post("/", backoffice, tripHandler.Start)
	tripsGroup.Get("/active", tripHandler.ListActive)
	tripsGroup.Get("/mine", tripHandler.MyActive)
	tripsGroup.Post("/:id/finish", tripHandler.Finish)

	// Ventas
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", saleHandler.Register)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", office, saleHandler.Cancel)

	// Fábrica de alimento
	factoryHandler := NewFactoryHandler(deps.FactoryUC)
	silos := protected.Group("/silos")
	silos.Get("/", factoryHandler.ListSilos)
	silos.Post("/:id/refill", backoffice, factoryHandler.Refill)
	silos.Post("/:id/consume", backoffice, factoryHandler.Consume)
	protected.Post("/productions", backoffice, factoryHandler.RunProduction)

	// Avisos
	protected.Get("/notifications", office, catalogHandler.ListNotifications)
}
