package trips

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// reconcile es la rendición de cierre de viaje: por cada producto del vehículo
// compara el saldo teórico (libro) contra el conteo físico, asienta la
// diferencia como MERMA (faltante) o AJUSTE_INVENTARIO (sobrante), devuelve lo
// contado al depósito con DESCARGA_FINAL y deja el stock del vehículo en cero.
//
// Producto no contado se rinde como desaparecido (físico = 0). Producto
// contado que el vehículo nunca tuvo registrado entra como sobrante suelto:
// ajuste + suma directa al depósito.
//
// Corre dentro de la transacción de FinishTrip; el guard de estado del viaje
// (EN_CURSO, fila bloqueada) garantiza que no puede ejecutarse dos veces.
func (uc *UseCase) reconcile(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
	vehicleID, userID string,
	counted map[string]decimal.Decimal,
) error {
	now := time.Now()
	stocks, err := vehicleStockRepo.ListByVehicleForUpdate(vehicleID)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(stocks))
	for _, stock := range stocks {
		seen[stock.ProductID] = true
		theoretical := stock.Quantity
		physical := decimal.Zero
		if qty, ok := counted[stock.ProductID]; ok {
			if qty.IsNegative() {
				return domain.ErrInvalidInput
			}
			physical = qty
		}

		// Diferencia contra el teórico: el asiento lleva el conteo del
		// vehículo hasta el físico.
		diff := physical.Sub(theoretical)
		if !diff.IsZero() {
			movType := entity.MovementTypeMerma
			note := "Rendición de viaje: faltante contra stock teórico"
			if diff.GreaterThan(decimal.Zero) {
				movType = entity.MovementTypeAjuste
				note = "Rendición de viaje: sobrante contra stock teórico"
			}
			if _, err := uc.applyUC.ApplyInTx(movRepo, productRepo, vehicleStockRepo, ledger.MovementInput{
				Type:      movType,
				ProductID: stock.ProductID,
				VehicleID: &vehicleID,
				Quantity:  diff,
				UserID:    userID,
				Notes:     note,
			}, now); err != nil {
				return err
			}
		}

		// Lo contado vuelve al depósito. El asiento DESCARGA_FINAL registra el
		// retorno en positivo; del lado del vehículo el saldo se deja en cero.
		if physical.GreaterThan(decimal.Zero) {
			product, err := productRepo.GetForUpdate(stock.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			product.Stock = product.Stock.Add(physical)
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ID:        uuid.New().String(),
				Type:      entity.MovementTypeDescarga,
				VehicleID: &vehicleID,
				ProductID: stock.ProductID,
				Quantity:  physical,
				UserID:    userID,
				Notes:     "Rendición de viaje: retorno a depósito",
				Date:      now,
				CreatedAt: now,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}

		stock.Quantity = decimal.Zero
		stock.UpdatedAt = now
		if err := vehicleStockRepo.Upsert(stock); err != nil {
			return err
		}
	}

	// Sobrantes puros: contados pero sin fila de stock en el vehículo.
	for productID, qty := range counted {
		if seen[productID] {
			continue
		}
		if qty.IsNegative() {
			return domain.ErrInvalidInput
		}
		if qty.IsZero() {
			continue
		}
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.Stock = product.Stock.Add(qty)
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeAjuste,
			VehicleID: &vehicleID,
			ProductID: productID,
			Quantity:  qty,
			UserID:    userID,
			Notes:     "Rendición de viaje: sobrante sin registro en vehículo",
			Date:      now,
			CreatedAt: now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
	}
	return nil
}
