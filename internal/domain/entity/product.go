package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del depósito central (huevos, pollo, alimento).
// Stock es el saldo materializado del depósito; el libro de movimientos
// (StockMovement) es el registro de auditoría.
type Product struct {
	ID             string
	Name           string
	UnitMeasure    string          // maple, cajón, kg, unidad
	UnitsPerBulk   int             // unidades por bulto (30 maple, 360 cajón)
	Stock          decimal.Decimal // saldo actual en depósito
	LastCost       decimal.Decimal // costo de la última compra
	SuggestedPrice decimal.Decimal
	MinPrice       decimal.Decimal
	MaxPrice       decimal.Decimal
	MinStockAlert  decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
