package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// LoadVehicleUseCase carga productos del depósito a una camioneta: descuenta
// el depósito y suma al vehículo por los mismos totales, con un asiento por
// ítem. Es el invariante de balance central del libro.
type LoadVehicleUseCase struct {
	txRunner    TxRunner
	applyUC     *ApplyMovementUseCase
	vehicleRepo repository.VehicleRepository
	notifier    Notifier
}

// NewLoadVehicleUseCase construye el caso de uso.
func NewLoadVehicleUseCase(
	txRunner TxRunner,
	applyUC *ApplyMovementUseCase,
	vehicleRepo repository.VehicleRepository,
	notifier Notifier,
) *LoadVehicleUseCase {
	return &LoadVehicleUseCase{
		txRunner:    txRunner,
		applyUC:     applyUC,
		vehicleRepo: vehicleRepo,
		notifier:    notifier,
	}
}

// LoadItem es un renglón de carga.
type LoadItem struct {
	ProductID string
	Quantity  decimal.Decimal
}

// LoadInput entrada de la carga. Reload=true registra RECARGA en vez de
// CARGA_INICIAL (recargas durante el día). DriverID opcional asigna chofer;
// la carga no abre el viaje, eso es StartTrip.
type LoadInput struct {
	VehicleID string
	Items     []LoadItem
	UserID    string
	DriverID  *string
	Reload    bool
}

// LoadVehicle ejecuta la carga completa en una transacción: o entran todos
// los renglones o no entra ninguno.
func (uc *LoadVehicleUseCase) LoadVehicle(ctx context.Context, input LoadInput) error {
	if input.VehicleID == "" || input.UserID == "" || len(input.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range input.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}

	vehicle, err := uc.vehicleRepo.GetByID(input.VehicleID)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return domain.ErrNotFound
	}

	movType := entity.MovementTypeCargaInicial
	if input.Reload {
		movType = entity.MovementTypeRecarga
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
	) error {
		now := time.Now()
		for _, item := range input.Items {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock.LessThan(item.Quantity) {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}
			// Descuenta el depósito y asienta la entrada al vehículo: un solo
			// asiento por renglón, el del lado del vehículo.
			product.Stock = product.Stock.Sub(item.Quantity)
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}
			if _, err := uc.applyUC.ApplyInTx(movRepo, productRepo, vehicleStockRepo, MovementInput{
				Type:      movType,
				ProductID: item.ProductID,
				VehicleID: &input.VehicleID,
				Quantity:  item.Quantity,
				UserID:    input.UserID,
				Notes:     "Carga de vehículo desde depósito central",
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if input.DriverID != nil {
		vehicle.DriverID = input.DriverID
		if err := uc.vehicleRepo.Update(vehicle); err != nil {
			return err
		}
	}

	uc.notifier.Notify("carga", fmt.Sprintf("Vehículo %s cargado (%d renglones)", vehicle.Plate, len(input.Items)), input.UserID)
	return nil
}
