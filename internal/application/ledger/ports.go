package ledger

import (
	"context"

	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
	) error) error

	RunPurchase(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}

// ReceiptGenerator genera el comprobante de una compra. Se invoca después del
// commit: una falla acá no voltea la compra.
type ReceiptGenerator interface {
	Generate(purchase *entity.Purchase, products map[string]*entity.Product) (path string, err error)
}

// Notifier es el canal best-effort de avisos; nunca participa de la tx.
type Notifier interface {
	Notify(kind, message, userID string)
}
