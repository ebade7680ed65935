package entity

import "time"

// Estados de un viaje.
const (
	TripStatusEnCurso    = "EN_CURSO"
	TripStatusFinalizado = "FINALIZADO"
)

// Trip representa el período en que un vehículo sale a la calle con un chofer
// y opcionalmente un acompañante. A lo sumo un viaje EN_CURSO por vehículo, y
// un usuario participa de a lo sumo un viaje EN_CURSO (como chofer o acompañante).
type Trip struct {
	ID          string
	VehicleID   string
	DriverID    string
	CompanionID *string
	DepartedAt  time.Time
	ReturnedAt  *time.Time
	Status      string
	Notes       string
	CreatedAt   time.Time
}
