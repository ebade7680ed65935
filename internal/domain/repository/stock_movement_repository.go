package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// StockMovementRepository define el puerto para el libro de movimientos.
// La tabla es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByVehicle(vehicleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// SumByVehicleProduct suma los deltas del par; herramienta de auditoría
	// para contrastar contra el saldo materializado (no es hot path).
	SumByVehicleProduct(vehicleID, productID string) (decimal.Decimal, error)
}
