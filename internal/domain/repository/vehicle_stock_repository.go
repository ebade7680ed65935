package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// VehicleStockRepository define el puerto para el stock por (vehículo, producto).
// Get/GetForUpdate devuelven una fila en cero si el par todavía no existe.
type VehicleStockRepository interface {
	Get(vehicleID, productID string) (*entity.VehicleStock, error)
	GetForUpdate(vehicleID, productID string) (*entity.VehicleStock, error)
	Upsert(stock *entity.VehicleStock) error
	// ListByVehicleForUpdate bloquea todas las filas del vehículo (rendición).
	ListByVehicle(vehicleID string) ([]*entity.VehicleStock, error)
	ListByVehicleForUpdate(vehicleID string) ([]*entity.VehicleStock, error)
	HasStock(vehicleID string) (bool, error)
	// ListOnStreet agrupa por producto el stock arriba de vehículos en ruta.
	ListOnStreet() ([]*entity.StreetStock, error)
}
