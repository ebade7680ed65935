package factory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/application/apptest"
	"github.com/avidelsur/distribuidora-api/internal/application/factory"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

const (
	siloMaiz    = "silo-maiz"
	siloSoja    = "silo-soja"
	siloMezcla  = "silo-mezcla"
	userFabrica = "user-fabrica"
)

func newStore() *apptest.Store {
	s := apptest.NewStore()
	s.Silos[siloMaiz] = entity.Silo{
		ID: siloMaiz, Name: "Maíz", CapacityKg: decimal.NewFromInt(10000),
		QuantityKg: decimal.NewFromInt(1000), AvgCost: decimal.NewFromInt(10),
	}
	s.Silos[siloSoja] = entity.Silo{
		ID: siloSoja, Name: "Soja", CapacityKg: decimal.NewFromInt(5000),
		QuantityKg: decimal.NewFromInt(500), AvgCost: decimal.NewFromInt(30),
	}
	s.Silos[siloMezcla] = entity.Silo{
		ID: siloMezcla, Name: "Mezcla ponedoras", CapacityKg: decimal.NewFromInt(8000),
		QuantityKg: decimal.Zero, AvgCost: decimal.Zero,
	}
	return s
}

func newUC(s *apptest.Store) *factory.UseCase {
	return factory.NewUseCase(&apptest.TxRunner{S: s}, &apptest.SiloRepo{S: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// RefillSilo
// ──────────────────────────────────────────────────────────────────────────────

// 1000 kg a $10 más 1000 kg por $20.000 ($20/kg) deben promediar $15/kg.
func TestRefillSilo_PromedioPonderado(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	err := uc.RefillSilo(context.Background(), siloMaiz,
		decimal.NewFromInt(1000), decimal.NewFromInt(20000))
	require.NoError(t, err)

	silo := s.Silos[siloMaiz]
	assert.True(t, silo.QuantityKg.Equal(decimal.NewFromInt(2000)))
	assert.True(t, silo.AvgCost.Equal(decimal.NewFromInt(15)),
		"el costo promedio pondera lo existente con la carga nueva")
}

func TestRefillSilo_Validaciones(t *testing.T) {
	uc := newUC(newStore())
	ctx := context.Background()

	err := uc.RefillSilo(ctx, siloMaiz, decimal.Zero, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	err = uc.RefillSilo(ctx, siloMaiz, decimal.NewFromInt(10), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")

	err = uc.RefillSilo(ctx, "silo-fantasma", decimal.NewFromInt(10), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ConsumeSilo
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumeSilo_Descuenta(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	err := uc.ConsumeSilo(context.Background(), siloMaiz, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.True(t, s.Silos[siloMaiz].QuantityKg.Equal(decimal.NewFromInt(700)))
}

// Consumir más de lo que hay no falla: el saldo clava en cero y el desvío lo
// absorbe el conteo del silo.
func TestConsumeSilo_ClavaEnCero(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	err := uc.ConsumeSilo(context.Background(), siloSoja, decimal.NewFromInt(800))
	require.NoError(t, err)
	assert.True(t, s.Silos[siloSoja].QuantityKg.IsZero())
}

func TestConsumeSilo_CantidadNoPositiva(t *testing.T) {
	uc := newUC(newStore())

	err := uc.ConsumeSilo(context.Background(), siloMaiz, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RunProduction
// ──────────────────────────────────────────────────────────────────────────────

func TestRunProduction_ConsumeYDescargaEnDestino(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	dest := siloMezcla
	production, err := uc.RunProduction(context.Background(), factory.ProductionInput{
		Ingredients: []factory.Ingredient{
			{SiloID: siloMaiz, QuantityKg: decimal.NewFromInt(400)},
			{SiloID: siloSoja, QuantityKg: decimal.NewFromInt(100)},
		},
		DestSiloID: &dest,
		OutputKg:   decimal.NewFromInt(480),
		UserID:     userFabrica,
		Notes:      "mezcla ponedoras 18%",
	})
	require.NoError(t, err)
	require.NotNil(t, production)

	assert.True(t, s.Silos[siloMaiz].QuantityKg.Equal(decimal.NewFromInt(600)))
	assert.True(t, s.Silos[siloSoja].QuantityKg.Equal(decimal.NewFromInt(400)))

	// La producción propia entra a costo cero: el destino queda en 480 kg con
	// costo promedio cero porque estaba vacío.
	mezcla := s.Silos[siloMezcla]
	assert.True(t, mezcla.QuantityKg.Equal(decimal.NewFromInt(480)))
	assert.True(t, mezcla.AvgCost.IsZero())

	require.Len(t, production.Ingredients, 2)
	assert.Len(t, s.ProductionIngs, 2)
	assert.Contains(t, s.Productions, production.ID)
}

// Cargar producción propia (costo cero) sobre un silo con stock comprado
// diluye el promedio ponderado.
func TestRunProduction_DestinoConStock_DiluyeCosto(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	s.Silos[siloMezcla] = entity.Silo{
		ID: siloMezcla, Name: "Mezcla ponedoras",
		QuantityKg: decimal.NewFromInt(100), AvgCost: decimal.NewFromInt(20),
	}

	dest := siloMezcla
	_, err := uc.RunProduction(context.Background(), factory.ProductionInput{
		Ingredients: []factory.Ingredient{{SiloID: siloMaiz, QuantityKg: decimal.NewFromInt(100)}},
		DestSiloID:  &dest,
		OutputKg:    decimal.NewFromInt(100),
		UserID:      userFabrica,
	})
	require.NoError(t, err)

	// (100*20 + 100*0) / 200 = 10
	mezcla := s.Silos[siloMezcla]
	assert.True(t, mezcla.QuantityKg.Equal(decimal.NewFromInt(200)))
	assert.True(t, mezcla.AvgCost.Equal(decimal.NewFromInt(10)))
}

func TestRunProduction_SinDestino(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	production, err := uc.RunProduction(context.Background(), factory.ProductionInput{
		Ingredients: []factory.Ingredient{{SiloID: siloMaiz, QuantityKg: decimal.NewFromInt(50)}},
		OutputKg:    decimal.NewFromInt(50),
		UserID:      userFabrica,
	})
	require.NoError(t, err)
	assert.Nil(t, production.DestSiloID)
	assert.True(t, s.Silos[siloMaiz].QuantityKg.Equal(decimal.NewFromInt(950)))
}

func TestRunProduction_Validaciones(t *testing.T) {
	uc := newUC(newStore())
	ctx := context.Background()

	_, err := uc.RunProduction(ctx, factory.ProductionInput{
		OutputKg: decimal.NewFromInt(10), UserID: userFabrica,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin ingredientes")

	_, err = uc.RunProduction(ctx, factory.ProductionInput{
		Ingredients: []factory.Ingredient{{SiloID: siloMaiz, QuantityKg: decimal.NewFromInt(10)}},
		OutputKg:    decimal.Zero,
		UserID:      userFabrica,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producción sin salida")

	_, err = uc.RunProduction(ctx, factory.ProductionInput{
		Ingredients: []factory.Ingredient{{SiloID: siloMaiz, QuantityKg: decimal.Zero}},
		OutputKg:    decimal.NewFromInt(10),
		UserID:      userFabrica,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ingrediente con cantidad cero")
}

// Un ingrediente inexistente aborta la elaboración completa.
func TestRunProduction_SiloInexistente_SinEfectos(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	dest := siloMezcla
	_, err := uc.RunProduction(context.Background(), factory.ProductionInput{
		Ingredients: []factory.Ingredient{
			{SiloID: siloMaiz, QuantityKg: decimal.NewFromInt(100)},
			{SiloID: "silo-fantasma", QuantityKg: decimal.NewFromInt(10)},
		},
		DestSiloID: &dest,
		OutputKg:   decimal.NewFromInt(100),
		UserID:     userFabrica,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, s.Silos[siloMaiz].QuantityKg.Equal(decimal.NewFromInt(1000)),
		"el consumo del primer silo debe revertirse")
	assert.Empty(t, s.Productions)
}
