package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefillSiloRequest body para POST /api/silos/:id/refill.
type RefillSiloRequest struct {
	QuantityKg decimal.Decimal `json:"quantity_kg" validate:"required"`
	TotalCost  decimal.Decimal `json:"total_cost" validate:"required"`
}

// ConsumeSiloRequest body para POST /api/silos/:id/consume.
type ConsumeSiloRequest struct {
	QuantityKg decimal.Decimal `json:"quantity_kg" validate:"required"`
}

// ProductionIngredientRequest consumo de silo dentro de una elaboración.
type ProductionIngredientRequest struct {
	SiloID     string          `json:"silo_id" validate:"required,uuid"`
	QuantityKg decimal.Decimal `json:"quantity_kg" validate:"required"`
}

// RunProductionRequest body para POST /api/productions.
type RunProductionRequest struct {
	Ingredients []ProductionIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	DestSiloID  *string                       `json:"dest_silo_id,omitempty" validate:"omitempty,uuid"`
	OutputKg    decimal.Decimal               `json:"output_kg" validate:"required"`
	Notes       string                        `json:"notes" validate:"max=500"`
}

// SiloResponse salida de un silo.
type SiloResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CapacityKg decimal.Decimal `json:"capacity_kg"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	ProductID  *string         `json:"product_id,omitempty"`
	AvgCost    decimal.Decimal `json:"avg_cost"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
