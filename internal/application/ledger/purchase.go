package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// RegisterPurchaseUseCase registra una compra a proveedor: suma stock de
// depósito, actualiza el costo de última compra y asienta un movimiento
// COMPRA por renglón, todo en una transacción. El comprobante PDF se genera
// después del commit; si falla, la compra queda firme igual.
type RegisterPurchaseUseCase struct {
	txRunner     TxRunner
	applyUC      *ApplyMovementUseCase
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	receipts     ReceiptGenerator
	notifier     Notifier
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(
	txRunner TxRunner,
	applyUC *ApplyMovementUseCase,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	receipts ReceiptGenerator,
	notifier Notifier,
) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{
		txRunner:     txRunner,
		applyUC:      applyUC,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		receipts:     receipts,
		notifier:     notifier,
	}
}

// PurchaseItem es un renglón de compra.
type PurchaseItem struct {
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// PurchaseInput entrada de la compra.
type PurchaseInput struct {
	UserID   string
	Supplier string
	Notes    string
	Items    []PurchaseItem
}

// RegisterPurchase ejecuta la compra y devuelve la entidad creada.
func (uc *RegisterPurchaseUseCase) RegisterPurchase(ctx context.Context, input PurchaseInput) (*entity.Purchase, error) {
	if input.UserID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	total := decimal.Zero
	for _, item := range input.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		total = total.Add(item.Quantity.Mul(item.UnitCost))
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:       uuid.New().String(),
		Date:     now,
		UserID:   input.UserID,
		Supplier: input.Supplier,
		Notes:    input.Notes,
		Total:    total,
	}

	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		vehicleStockRepo repository.VehicleStockRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}
		for _, item := range input.Items {
			// Costo de última compra se actualiza acá; el saldo lo aplica el
			// motor de movimientos junto con el asiento COMPRA.
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			product.LastCost = item.UnitCost
			product.UpdatedAt = now
			if err := productRepo.Update(product); err != nil {
				return err
			}

			detail := &entity.PurchaseDetail{
				ID:         uuid.New().String(),
				PurchaseID: purchase.ID,
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitCost:   item.UnitCost,
				Subtotal:   item.Quantity.Mul(item.UnitCost),
			}
			if err := purchaseRepo.CreateDetail(detail); err != nil {
				return err
			}
			purchase.Details = append(purchase.Details, detail)

			if _, err := uc.applyUC.ApplyInTx(movRepo, productRepo, vehicleStockRepo, MovementInput{
				Type:      entity.MovementTypeCompra,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UserID:    input.UserID,
				Notes:     fmt.Sprintf("Compra #%s - %s", purchase.ID, input.Supplier),
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Comprobante y aviso fuera de la transacción: best-effort.
	uc.generateReceipt(purchase)
	uc.notifier.Notify("compra", fmt.Sprintf("Compra registrada por %s (total %s)", input.Supplier, total.StringFixed(2)), input.UserID)
	return purchase, nil
}

func (uc *RegisterPurchaseUseCase) generateReceipt(purchase *entity.Purchase) {
	products := make(map[string]*entity.Product, len(purchase.Details))
	for _, d := range purchase.Details {
		p, err := uc.productRepo.GetByID(d.ProductID)
		if err != nil || p == nil {
			continue
		}
		products[d.ProductID] = p
	}
	path, err := uc.receipts.Generate(purchase, products)
	if err != nil {
		log.Warn().Err(err).Str("purchase_id", purchase.ID).Msg("no se pudo generar el comprobante de compra")
		return
	}
	purchase.ReceiptPath = path
	if err := uc.purchaseRepo.UpdateReceiptPath(purchase.ID, path); err != nil {
		log.Warn().Err(err).Str("purchase_id", purchase.ID).Msg("no se pudo guardar la ruta del comprobante")
	}
}
