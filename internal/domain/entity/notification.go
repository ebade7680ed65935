package entity

import "time"

// Notification es un aviso best-effort para el feed de la oficina. Se escribe
// fuera de la transacción de la operación que lo origina: si falla, se loguea
// y la operación queda firme igual.
type Notification struct {
	ID        string
	Kind      string // venta, viaje, compra, rendicion
	Message   string
	UserID    string
	CreatedAt time.Time
}
