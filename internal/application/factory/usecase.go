package factory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
	"github.com/avidelsur/distribuidora-api/internal/domain/silo"
)

// UseCase maneja los silos de la fábrica de alimento: cargas con costo
// promedio ponderado, consumos y elaboraciones que combinan varios silos.
type UseCase struct {
	txRunner TxRunner
	siloRepo repository.SiloRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, siloRepo repository.SiloRepository) *UseCase {
	return &UseCase{txRunner: txRunner, siloRepo: siloRepo}
}

// RefillSilo carga kg al silo y recalcula el costo promedio ponderado con el
// costo total de la carga.
func (uc *UseCase) RefillSilo(ctx context.Context, siloID string, qtyKg, totalCost decimal.Decimal) error {
	if siloID == "" || !qtyKg.GreaterThan(decimal.Zero) || totalCost.IsNegative() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunFactory(ctx, func(
		siloRepo repository.SiloRepository,
		_ repository.ProductionRepository,
	) error {
		return refillInTx(siloRepo, siloID, qtyKg, totalCost)
	})
}

// ConsumeSilo descuenta kg del silo. El saldo clava en cero y no falla por
// faltante: una elaboración a medias no puede devolver los ingredientes ya
// molidos, y el desvío del estimado queda absorbido por el conteo del silo.
func (uc *UseCase) ConsumeSilo(ctx context.Context, siloID string, qtyKg decimal.Decimal) error {
	if siloID == "" || !qtyKg.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunFactory(ctx, func(
		siloRepo repository.SiloRepository,
		_ repository.ProductionRepository,
	) error {
		return consumeInTx(siloRepo, siloID, qtyKg)
	})
}

// Ingredient es un consumo de silo dentro de una elaboración.
type Ingredient struct {
	SiloID     string
	QuantityKg decimal.Decimal
}

// ProductionInput entrada de una elaboración.
type ProductionInput struct {
	Ingredients []Ingredient
	DestSiloID  *string
	OutputKg    decimal.Decimal
	UserID      string
	Notes       string
}

// RunProduction consume cada silo ingrediente y, si hay silo destino, le
// carga la producción a costo cero (alimento propio, no comprado). Todo en
// una transacción.
func (uc *UseCase) RunProduction(ctx context.Context, input ProductionInput) (*entity.Production, error) {
	if input.UserID == "" || len(input.Ingredients) == 0 || !input.OutputKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, ing := range input.Ingredients {
		if ing.SiloID == "" || !ing.QuantityKg.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	production := &entity.Production{
		ID:         uuid.New().String(),
		Date:       now,
		DestSiloID: input.DestSiloID,
		OutputKg:   input.OutputKg,
		UserID:     input.UserID,
		Notes:      input.Notes,
		CreatedAt:  now,
	}

	err := uc.txRunner.RunFactory(ctx, func(
		siloRepo repository.SiloRepository,
		productionRepo repository.ProductionRepository,
	) error {
		for _, ing := range input.Ingredients {
			if err := consumeInTx(siloRepo, ing.SiloID, ing.QuantityKg); err != nil {
				return err
			}
		}
		if input.DestSiloID != nil {
			if err := refillInTx(siloRepo, *input.DestSiloID, input.OutputKg, decimal.Zero); err != nil {
				return err
			}
		}
		if err := productionRepo.Create(production); err != nil {
			return err
		}
		for _, ing := range input.Ingredients {
			ingredient := &entity.ProductionIngredient{
				ID:           uuid.New().String(),
				ProductionID: production.ID,
				SiloID:       ing.SiloID,
				QuantityKg:   ing.QuantityKg,
			}
			if err := productionRepo.CreateIngredient(ingredient); err != nil {
				return err
			}
			production.Ingredients = append(production.Ingredients, ingredient)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return production, nil
}

// ListSilos lista los silos con su estado actual.
func (uc *UseCase) ListSilos() ([]*entity.Silo, error) {
	return uc.siloRepo.List()
}

func refillInTx(siloRepo repository.SiloRepository, siloID string, qtyKg, totalCost decimal.Decimal) error {
	s, err := siloRepo.GetForUpdate(siloID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	s.AvgCost = silo.WeightedAvgCost(s.QuantityKg, s.AvgCost, qtyKg, totalCost)
	s.QuantityKg = s.QuantityKg.Add(qtyKg)
	s.UpdatedAt = time.Now()
	return siloRepo.Update(s)
}

func consumeInTx(siloRepo repository.SiloRepository, siloID string, qtyKg decimal.Decimal) error {
	s, err := siloRepo.GetForUpdate(siloID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	s.QuantityKg = s.QuantityKg.Sub(qtyKg)
	if s.QuantityKg.IsNegative() {
		s.QuantityKg = decimal.Zero
	}
	s.UpdatedAt = time.Now()
	return siloRepo.Update(s)
}
