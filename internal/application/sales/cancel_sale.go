package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// CancelSale anula una venta: marca la cabecera inactiva (nunca borra),
// revierte los agregados del cliente y devuelve el stock al vehículo con un
// asiento DEVOLUCION_CLIENTE por línea. La cabecera se bloquea FOR UPDATE,
// así que una doble anulación concurrente ve Active=false y rechaza: no
// pueden salir dos tandas de devoluciones de una misma venta.
func (uc *UseCase) CancelSale(ctx context.Context, saleID, userID, reason string) error {
	if saleID == "" || userID == "" {
		return domain.ErrInvalidInput
	}

	var sale *entity.Sale
	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
		saleRepo repository.SaleRepository,
		clientRepo repository.ClientRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if !sale.Active {
			return domain.ErrInvalidState
		}

		if err := saleRepo.UpdateStatus(saleID, false, reason); err != nil {
			return err
		}

		client, err := clientRepo.GetForUpdate(sale.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		client.TotalPurchased = client.TotalPurchased.Sub(sale.Total)
		if sale.Payment == entity.PaymentCtaCorriente {
			client.Debt = client.Debt.Sub(sale.Total)
		}
		client.UpdatedAt = time.Now()
		if err := clientRepo.Update(client); err != nil {
			return err
		}

		now := time.Now()
		for _, detail := range sale.Details {
			if _, err := uc.applyUC.ApplyInTx(movRepo, productRepo, vehicleStockRepo, ledger.MovementInput{
				Type:      entity.MovementTypeDevolucion,
				ProductID: detail.ProductID,
				VehicleID: &sale.VehicleID,
				Quantity:  detail.Quantity,
				UserID:    userID,
				Notes:     fmt.Sprintf("Anulación de venta #%s: %s", sale.ID, reason),
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.notifier.Notify("venta", fmt.Sprintf("Venta %s anulada", saleID), userID)
	return nil
}

// GetSale devuelve una venta con sus líneas.
func (uc *UseCase) GetSale(saleID string) (*entity.Sale, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListByVehicleAndDate lista las ventas de un vehículo en un día.
func (uc *UseCase) ListByVehicleAndDate(vehicleID string, day time.Time) ([]*entity.Sale, error) {
	if vehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.saleRepo.ListByVehicleAndDate(vehicleID, day)
}
