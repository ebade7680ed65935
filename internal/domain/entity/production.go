package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Production representa una elaboración de alimento: consume ingredientes de
// uno o más silos y opcionalmente descarga el resultado en un silo destino.
type Production struct {
	ID          string
	Date        time.Time
	DestSiloID  *string
	OutputKg    decimal.Decimal
	UserID      string
	Notes       string
	Ingredients []*ProductionIngredient
	CreatedAt   time.Time
}

// ProductionIngredient es un consumo de silo dentro de una elaboración.
type ProductionIngredient struct {
	ID           string
	ProductionID string
	SiloID       string
	QuantityKg   decimal.Decimal
}
