package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor que ingresa stock al depósito.
type Purchase struct {
	ID          string
	Date        time.Time
	UserID      string
	Supplier    string
	Notes       string
	Total       decimal.Decimal
	ReceiptPath string // PDF generado fuera de la transacción (best-effort)
	Details     []*PurchaseDetail
	CreatedAt   time.Time
}

// PurchaseDetail es una línea de compra.
type PurchaseDetail struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
