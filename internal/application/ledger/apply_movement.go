package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// ApplyMovementUseCase es el motor de movimientos: el único lugar donde el
// libro (stock_movements) y los saldos materializados (products.stock /
// vehicle_stock.quantity) se tocan juntos. Cargas, ventas, mermas, compras y
// rendiciones pasan todas por acá.
type ApplyMovementUseCase struct {
	txRunner TxRunner
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para aplicar un movimiento.
// VehicleID nulo = el delta pega en el depósito; si no, en el vehículo.
type MovementInput struct {
	Type      string
	ProductID string
	VehicleID *string
	Quantity  decimal.Decimal // con signo, distinta de cero
	UserID    string
	Notes     string
}

var validMovementTypes = map[string]bool{
	entity.MovementTypeCargaInicial: true,
	entity.MovementTypeRecarga:      true,
	entity.MovementTypeVenta:        true,
	entity.MovementTypeDevolucion:   true,
	entity.MovementTypeDescarga:     true,
	entity.MovementTypeMerma:        true,
	entity.MovementTypeAjuste:       true,
	entity.MovementTypeCompra:       true,
}

// ApplyMovement aplica un movimiento suelto en su propia transacción y
// devuelve el ID del asiento creado.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	var movementID string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
	) error {
		id, err := uc.ApplyInTx(movRepo, productRepo, vehicleStockRepo, input, time.Now())
		movementID = id
		return err
	})
	if err != nil {
		return "", err
	}
	return movementID, nil
}

// ApplyInTx aplica el movimiento usando repositorios ya atados a la
// transacción del caller: agrega el asiento y actualiza exactamente un saldo.
// Los use cases de venta, viaje y carga lo invocan dentro de su propia tx.
func (uc *ApplyMovementUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
	input MovementInput,
	now time.Time,
) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}

	if input.VehicleID == nil {
		// Saldo de depósito: bloquea la fila del producto y aplica el delta.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return "", err
		}
		if product == nil {
			return "", domain.ErrNotFound
		}
		product.Stock = product.Stock.Add(input.Quantity)
		product.UpdatedAt = now
		if err := productRepo.Update(product); err != nil {
			return "", err
		}
	} else {
		// Saldo de vehículo: el producto solo se valida, el delta pega en
		// vehicle_stock (la fila se crea en cero en el primer uso).
		product, err := productRepo.GetByID(input.ProductID)
		if err != nil {
			return "", err
		}
		if product == nil {
			return "", domain.ErrNotFound
		}
		stock, err := vehicleStockRepo.GetForUpdate(*input.VehicleID, input.ProductID)
		if err != nil {
			return "", err
		}
		stock.Quantity = stock.Quantity.Add(input.Quantity)
		stock.UpdatedAt = now
		if err := vehicleStockRepo.Upsert(stock); err != nil {
			return "", err
		}
	}

	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		Type:      input.Type,
		VehicleID: input.VehicleID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		UserID:    input.UserID,
		Notes:     input.Notes,
		Date:      now,
		CreatedAt: now,
	}
	if err := movRepo.Create(mov); err != nil {
		return "", err
	}
	return mov.ID, nil
}

func validateInput(input MovementInput) error {
	if !validMovementTypes[input.Type] {
		return domain.ErrInvalidInput
	}
	if input.ProductID == "" || input.UserID == "" {
		return domain.ErrInvalidInput
	}
	if input.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}
