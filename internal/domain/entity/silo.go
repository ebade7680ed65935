package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Silo representa un silo de la fábrica de alimento. AvgCost es el costo
// promedio ponderado por kg, recalculado en cada carga.
type Silo struct {
	ID         string
	Name       string
	CapacityKg decimal.Decimal
	QuantityKg decimal.Decimal
	ProductID  *string // producto vinculado (ej: maíz), opcional
	AvgCost    decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
