package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// UseCase registra y anula ventas desde vehículos. Todo el efecto de una
// venta (cabecera, líneas, asientos de stock, agregados del cliente) entra en
// una sola transacción: o queda todo o no queda nada.
type UseCase struct {
	txRunner   TxRunner
	applyUC    *ledger.ApplyMovementUseCase
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	tripRepo   repository.TripRepository
	saleRepo   repository.SaleRepository
	notifier   Notifier
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	applyUC *ledger.ApplyMovementUseCase,
	userRepo repository.UserRepository,
	clientRepo repository.ClientRepository,
	tripRepo repository.TripRepository,
	saleRepo repository.SaleRepository,
	notifier Notifier,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		applyUC:    applyUC,
		userRepo:   userRepo,
		clientRepo: clientRepo,
		tripRepo:   tripRepo,
		saleRepo:   saleRepo,
		notifier:   notifier,
	}
}

// SaleLine es una línea de venta a registrar.
type SaleLine struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// RegisterInput entrada de la venta.
type RegisterInput struct {
	ClientID    string
	UserID      string
	VehicleID   string
	Payment     string
	DiscountPct decimal.Decimal
	Lines       []SaleLine
	DueDate     *time.Time
}

var validPayments = map[string]bool{
	entity.PaymentEfectivo:      true,
	entity.PaymentTransferencia: true,
	entity.PaymentCtaCorriente:  true,
}

// RegisterSale valida viaje y stock, crea la venta con sus líneas, asienta un
// movimiento VENTA por línea y actualiza los agregados del cliente, todo en
// una transacción.
func (uc *UseCase) RegisterSale(ctx context.Context, input RegisterInput) (*entity.Sale, error) {
	if input.ClientID == "" || input.UserID == "" || input.VehicleID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validPayments[input.Payment] {
		return nil, domain.ErrInvalidInput
	}
	if input.DiscountPct.IsNegative() || input.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.ProductID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	user, err := uc.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	// Un chofer solo vende con su viaje activo y desde ese vehículo.
	var tripID *string
	activeTrip, err := uc.tripRepo.GetActiveByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if user.RequiresTripForSale() {
		if activeTrip == nil {
			return nil, domain.ErrUnauthorized
		}
		if activeTrip.VehicleID != input.VehicleID {
			return nil, fmt.Errorf("%w: el viaje activo es sobre el vehículo %s", domain.ErrConflict, activeTrip.VehicleID)
		}
	}
	if activeTrip != nil && activeTrip.VehicleID == input.VehicleID {
		tripID = &activeTrip.ID
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		ClientID:    input.ClientID,
		UserID:      input.UserID,
		VehicleID:   input.VehicleID,
		TripID:      tripID,
		Date:        now,
		Payment:     input.Payment,
		DiscountPct: input.DiscountPct,
		Active:      true,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
		saleRepo repository.SaleRepository,
		clientRepo repository.ClientRepository,
	) error {
		client, err := clientRepo.GetForUpdate(input.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}

		// Chequeo de stock de todas las líneas antes de mutar nada: las filas
		// quedan bloqueadas, así que el chequeo sigue válido al escribir.
		for _, line := range input.Lines {
			stock, err := vehicleStockRepo.GetForUpdate(input.VehicleID, line.ProductID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(line.Quantity) {
				product, err := productRepo.GetByID(line.ProductID)
				if err != nil {
					return err
				}
				name := line.ProductID
				if product != nil {
					name = product.Name
				}
				return &domain.InsufficientStockError{
					ProductID:   line.ProductID,
					ProductName: name,
					Available:   stock.Quantity,
					Requested:   line.Quantity,
				}
			}
		}

		subtotal := decimal.Zero
		for _, line := range input.Lines {
			detail := &entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Subtotal:  line.Quantity.Mul(line.UnitPrice),
			}
			sale.Details = append(sale.Details, detail)
			subtotal = subtotal.Add(detail.Subtotal)
		}
		sale.DiscountAmt = subtotal.Mul(input.DiscountPct).Div(decimal.NewFromInt(100))
		sale.Total = subtotal.Sub(sale.DiscountAmt)

		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, detail := range sale.Details {
			if err := saleRepo.CreateDetail(detail); err != nil {
				return err
			}
			if _, err := uc.applyUC.ApplyInTx(movRepo, productRepo, vehicleStockRepo, ledger.MovementInput{
				Type:      entity.MovementTypeVenta,
				ProductID: detail.ProductID,
				VehicleID: &input.VehicleID,
				Quantity:  detail.Quantity.Neg(),
				UserID:    input.UserID,
				Notes:     fmt.Sprintf("Venta #%s", sale.ID),
			}, now); err != nil {
				return err
			}
		}

		client.TotalPurchased = client.TotalPurchased.Add(sale.Total)
		client.LastPurchase = &now
		if input.Payment == entity.PaymentCtaCorriente {
			client.Debt = client.Debt.Add(sale.Total)
		}
		client.UpdatedAt = now
		return clientRepo.Update(client)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify("venta", fmt.Sprintf("Venta %s por %s registrada", sale.ID, sale.Total.StringFixed(2)), input.UserID)
	return sale, nil
}
