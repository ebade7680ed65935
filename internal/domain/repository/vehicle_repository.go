package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para vehículos.
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	GetForUpdate(id string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	// SetEnRuta actualiza la cache "en ruta" y el chofer asignado.
	SetEnRuta(vehicleID string, enRuta bool, driverID *string) error
	List() ([]*entity.Vehicle, error)
	Delete(id string) error
}
