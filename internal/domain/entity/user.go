package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleEncargado = "encargado"
	RoleChofer    = "chofer" // vende solo con viaje activo sobre su vehículo
	RoleOficina   = "oficina"
)

// Estados de empleo.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario/empleado del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequiresTripForSale indica si el rol solo puede vender con viaje activo.
func (u *User) RequiresTripForSale() bool {
	return u.Role == RoleChofer
}

// IsActive indica si el empleado está en actividad.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
