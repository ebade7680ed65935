package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

// RegisterSaleRequest body para POST /api/sales.
type RegisterSaleRequest struct {
	ClientID    string            `json:"client_id" validate:"required,uuid"`
	VehicleID   string            `json:"vehicle_id" validate:"required,uuid"`
	Payment     string            `json:"payment" validate:"required,oneof=EFECTIVO TRANSFERENCIA CTA_CORRIENTE"`
	DiscountPct decimal.Decimal   `json:"discount_pct"`
	Lines       []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
}

// CancelSaleRequest body para POST /api/sales/:id/cancel.
type CancelSaleRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// SaleDetailResponse línea de venta en respuestas.
type SaleDetailResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string               `json:"id"`
	ClientID    string               `json:"client_id"`
	UserID      string               `json:"user_id"`
	VehicleID   string               `json:"vehicle_id"`
	TripID      *string              `json:"trip_id,omitempty"`
	Date        time.Time            `json:"date"`
	Payment     string               `json:"payment"`
	DiscountPct decimal.Decimal      `json:"discount_pct"`
	DiscountAmt decimal.Decimal      `json:"discount_amt"`
	Total       decimal.Decimal      `json:"total"`
	Active      bool                 `json:"active"`
	CancelNote  string               `json:"cancel_note,omitempty"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
	Details     []SaleDetailResponse `json:"details"`
}
