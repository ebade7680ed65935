package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartTripRequest body para POST /api/trips.
type StartTripRequest struct {
	VehicleID   string  `json:"vehicle_id" validate:"required,uuid"`
	DriverID    string  `json:"driver_id" validate:"required,uuid"`
	CompanionID *string `json:"companion_id,omitempty" validate:"omitempty,uuid"`
	Notes       string  `json:"notes" validate:"max=500"`
}

// FinishTripRequest body para POST /api/trips/:id/finish. Counted nil omite
// la rendición; un mapa (aunque vacío) la ejecuta con cero para lo no contado.
type FinishTripRequest struct {
	Notes   string                     `json:"notes" validate:"max=500"`
	Counted map[string]decimal.Decimal `json:"counted,omitempty"`
}

// TripResponse salida de un viaje.
type TripResponse struct {
	ID          string     `json:"id"`
	VehicleID   string     `json:"vehicle_id"`
	DriverID    string     `json:"driver_id"`
	CompanionID *string    `json:"companion_id,omitempty"`
	DepartedAt  time.Time  `json:"departed_at"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes,omitempty"`
}
