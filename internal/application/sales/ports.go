package sales

import (
	"context"

	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que toca una venta: stock del vehículo, libro de movimientos,
// cabecera/líneas de venta y agregados del cliente.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
		saleRepo repository.SaleRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// Notifier es el canal best-effort de avisos; una falla acá no voltea la venta.
type Notifier interface {
	Notify(kind, message, userID string)
}
