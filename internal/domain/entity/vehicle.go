package entity

import "time"

// Vehicle representa una camioneta de reparto.
// EnRuta es una cache derivada: la autoridad sobre "está en la calle" es la
// existencia de un Trip EN_CURSO; la lectura de viaje activo repara el drift.
type Vehicle struct {
	ID             string
	Plate          string
	Brand          string
	Model          string
	LoadCapacityKg int
	EnRuta         bool
	DriverID       *string // chofer asignado mientras está en ruta
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
