package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// SpoilageInput entrada para registrar una merma directa sobre un vehículo
// (roturas, pérdidas en ruta). Quantity es positiva; el asiento va en negativo.
type SpoilageInput struct {
	VehicleID string
	ProductID string
	Quantity  decimal.Decimal
	UserID    string
	Reason    string
}

// RegisterSpoilage asienta la merma y descuenta el stock del vehículo. Se
// permite que el saldo quede negativo: una merma mayor al saldo puede estar
// delatando un error de conteo previo, y eso también tiene que quedar asentado.
func (uc *ApplyMovementUseCase) RegisterSpoilage(ctx context.Context, input SpoilageInput) (string, error) {
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	return uc.ApplyMovement(ctx, MovementInput{
		Type:      entity.MovementTypeMerma,
		ProductID: input.ProductID,
		VehicleID: &input.VehicleID,
		Quantity:  input.Quantity.Neg(),
		UserID:    input.UserID,
		Notes:     input.Reason,
	})
}
