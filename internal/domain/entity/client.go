package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente de reparto. Debt y TotalPurchased son agregados
// que se actualizan en la misma transacción que cada venta/anulación/pago.
type Client struct {
	ID             string
	Name           string
	TaxID          string
	Phone          string
	Address        string
	SpecialPrice   *decimal.Decimal
	Debt           decimal.Decimal
	TotalPurchased decimal.Decimal
	LastPurchase   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
