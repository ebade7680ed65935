package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements (ajustes manuales).
type RegisterMovementRequest struct {
	Type      string          `json:"type" validate:"required"`
	ProductID string          `json:"product_id" validate:"required,uuid"`
	VehicleID *string         `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Notes     string          `json:"notes" validate:"max=500"`
}

// LoadItemRequest renglón de carga de vehículo.
type LoadItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// LoadVehicleRequest body para POST /api/vehicles/:id/load.
type LoadVehicleRequest struct {
	Items    []LoadItemRequest `json:"items" validate:"required,min=1,dive"`
	DriverID *string           `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	Reload   bool              `json:"reload"`
}

// SpoilageRequest body para POST /api/vehicles/:id/spoilage.
type SpoilageRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	Reason    string          `json:"reason" validate:"required,max=500"`
}

// PurchaseItemRequest renglón de compra a proveedor.
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost" validate:"required"`
}

// RegisterPurchaseRequest body para POST /api/purchases.
type RegisterPurchaseRequest struct {
	Supplier string                `json:"supplier" validate:"required,max=200"`
	Notes    string                `json:"notes" validate:"max=500"`
	Items    []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
}

// MovementResponse salida de un movimiento del libro de stock.
type MovementResponse struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	VehicleID *string         `json:"vehicle_id,omitempty"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UserID    string          `json:"user_id"`
	Notes     string          `json:"notes,omitempty"`
	Date      time.Time       `json:"date"`
}

// StreetStockResponse total de un producto repartido entre vehículos en ruta.
type StreetStockResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Vehicles  int             `json:"vehicles"`
}

// VehicleStockResponse saldo de un producto en un vehículo.
type VehicleStockResponse struct {
	VehicleID string          `json:"vehicle_id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}
