package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// QueryUseCase expone las lecturas del libro: stock por vehículo, movimientos
// por vehículo/producto y el control de consistencia saldo-vs-libro.
type QueryUseCase struct {
	movRepo          repository.StockMovementRepository
	vehicleStockRepo repository.VehicleStockRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(
	movRepo repository.StockMovementRepository,
	vehicleStockRepo repository.VehicleStockRepository,
) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, vehicleStockRepo: vehicleStockRepo}
}

// GetVehicleStock lista el stock actual de un vehículo.
func (uc *QueryUseCase) GetVehicleStock(vehicleID string) ([]*entity.VehicleStock, error) {
	if vehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.vehicleStockRepo.ListByVehicle(vehicleID)
}

// GetStreetStock resume el "stock en calle": cuánto hay de cada producto
// repartido entre los vehículos en ruta, y en cuántos vehículos.
func (uc *QueryUseCase) GetStreetStock() ([]*entity.StreetStock, error) {
	return uc.vehicleStockRepo.ListOnStreet()
}

// ListMovementsByVehicle lista movimientos de un vehículo por rango de fechas.
func (uc *QueryUseCase) ListMovementsByVehicle(vehicleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if vehicleID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByVehicle(vehicleID, from, to, limit, offset)
}

// ListMovementsByProduct lista movimientos de un producto por rango de fechas.
func (uc *QueryUseCase) ListMovementsByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByProduct(productID, from, to, limit, offset)
}

// BalanceCheck es el resultado del control de consistencia de un par
// (vehículo, producto): saldo materializado contra el replay del libro.
type BalanceCheck struct {
	VehicleID    string
	ProductID    string
	Materialized decimal.Decimal
	LedgerSum    decimal.Decimal
	Consistent   bool
}

// CheckVehicleBalance contrasta cada saldo materializado del vehículo contra
// la suma de deltas del libro. Es una herramienta de auditoría: nunca corre
// en el camino de escritura. Después de una rendición el saldo queda en cero
// pero el libro conserva la historia completa, por eso la suma se compara
// solo como señal y el resultado lo interpreta el auditor.
func (uc *QueryUseCase) CheckVehicleBalance(vehicleID string) ([]BalanceCheck, error) {
	stocks, err := uc.vehicleStockRepo.ListByVehicle(vehicleID)
	if err != nil {
		return nil, err
	}
	checks := make([]BalanceCheck, 0, len(stocks))
	for _, s := range stocks {
		sum, err := uc.movRepo.SumByVehicleProduct(vehicleID, s.ProductID)
		if err != nil {
			return nil, err
		}
		checks = append(checks, BalanceCheck{
			VehicleID:    vehicleID,
			ProductID:    s.ProductID,
			Materialized: s.Quantity,
			LedgerSum:    sum,
			Consistent:   s.Quantity.Equal(sum),
		})
	}
	return checks, nil
}
