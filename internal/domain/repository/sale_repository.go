package repository

import (
	"time"

	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera; trae también las líneas.
	GetForUpdate(id string) (*entity.Sale, error)
	// UpdateStatus cambia el flag de anulación y la nota; nunca borra filas.
	UpdateStatus(id string, active bool, cancelNote string) error
	ListByVehicleAndDate(vehicleID string, day time.Time) ([]*entity.Sale, error)
}
