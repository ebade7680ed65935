package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure    string          `json:"unit_measure" validate:"required,max=50"`
	UnitsPerBulk   int             `json:"units_per_bulk" validate:"min=0"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	MinStockAlert  decimal.Decimal `json:"min_stock_alert"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UnitMeasure    string          `json:"unit_measure"`
	UnitsPerBulk   int             `json:"units_per_bulk"`
	Stock          decimal.Decimal `json:"stock"`
	LastCost       decimal.Decimal `json:"last_cost"`
	SuggestedPrice decimal.Decimal `json:"suggested_price"`
	MinPrice       decimal.Decimal `json:"min_price"`
	MaxPrice       decimal.Decimal `json:"max_price"`
	MinStockAlert  decimal.Decimal `json:"min_stock_alert"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	TaxID        string           `json:"tax_id" validate:"max=20"`
	Phone        string           `json:"phone" validate:"max=50"`
	Address      string           `json:"address" validate:"max=300"`
	SpecialPrice *decimal.Decimal `json:"special_price,omitempty"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	TaxID          string           `json:"tax_id,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Address        string           `json:"address,omitempty"`
	SpecialPrice   *decimal.Decimal `json:"special_price,omitempty"`
	Debt           decimal.Decimal  `json:"debt"`
	TotalPurchased decimal.Decimal  `json:"total_purchased"`
	LastPurchase   *time.Time       `json:"last_purchase,omitempty"`
}

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Plate          string `json:"plate" validate:"required,max=20"`
	Brand          string `json:"brand" validate:"max=100"`
	Model          string `json:"model" validate:"max=100"`
	LoadCapacityKg int    `json:"load_capacity_kg" validate:"min=0"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID             string  `json:"id"`
	Plate          string  `json:"plate"`
	Brand          string  `json:"brand,omitempty"`
	Model          string  `json:"model,omitempty"`
	LoadCapacityKg int     `json:"load_capacity_kg"`
	EnRuta         bool    `json:"en_ruta"`
	DriverID       *string `json:"driver_id,omitempty"`
}

// NotificationResponse aviso del feed.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
