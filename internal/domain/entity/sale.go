package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago.
const (
	PaymentEfectivo      = "EFECTIVO"
	PaymentTransferencia = "TRANSFERENCIA"
	PaymentCtaCorriente  = "CTA_CORRIENTE" // a crédito: suma deuda del cliente
)

// Sale representa una venta desde un vehículo. La anulación no borra la fila:
// Active pasa a false y los efectos se revierten con movimientos nuevos.
type Sale struct {
	ID          string
	ClientID    string
	UserID      string
	VehicleID   string
	TripID      *string
	Date        time.Time
	Payment     string
	DiscountPct decimal.Decimal
	DiscountAmt decimal.Decimal
	Total       decimal.Decimal
	Active      bool
	CancelNote  string
	DueDate     *time.Time // solo ventas a crédito
	Details     []*SaleDetail
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SaleDetail es una línea de venta.
type SaleDetail struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
