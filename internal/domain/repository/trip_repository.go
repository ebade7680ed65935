package repository

import "github.com/avidelsur/distribuidora-api/internal/domain/entity"

// TripRepository define el puerto de persistencia para viajes.
type TripRepository interface {
	Create(trip *entity.Trip) error
	GetByID(id string) (*entity.Trip, error)
	GetForUpdate(id string) (*entity.Trip, error)
	Update(trip *entity.Trip) error
	// GetActiveByVehicle devuelve el viaje EN_CURSO del vehículo, o nil.
	GetActiveByVehicle(vehicleID string) (*entity.Trip, error)
	// GetActiveByUser devuelve el viaje EN_CURSO donde el usuario es chofer o
	// acompañante, o nil.
	GetActiveByUser(userID string) (*entity.Trip, error)
	ListActive() ([]*entity.Trip, error)
}
