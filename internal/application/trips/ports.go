package trips

import (
	"context"

	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el ciclo de vida de un viaje (incluida la
// rendición de stock al cierre).
type TxRunner interface {
	RunTrip(ctx context.Context, fn func(
		tripRepo repository.TripRepository,
		vehicleRepo repository.VehicleRepository,
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
	) error) error
}

// Notifier es el canal best-effort de avisos; nunca participa de la tx.
type Notifier interface {
	Notify(kind, message, userID string)
}
