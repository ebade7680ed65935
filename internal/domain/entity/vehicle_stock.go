package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleStock es el saldo materializado de un producto arriba de un vehículo.
// No es autoritativo por sí solo: debe coincidir con la suma de deltas de
// movimientos del par (vehículo, producto) desde la última rendición.
type VehicleStock struct {
	VehicleID string
	ProductID string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}

// StreetStock es el total de un producto repartido entre los vehículos que
// están en ruta ahora mismo (resumen "stock en calle").
type StreetStock struct {
	ProductID string
	Quantity  decimal.Decimal
	Vehicles  int
}
