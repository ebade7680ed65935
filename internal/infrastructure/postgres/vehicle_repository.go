package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, plate, brand, model, load_capacity_kg, en_ruta, driver_id, created_at, updated_at`

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL (usable con pool o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo.
func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		v.ID, v.Plate, v.Brand, v.Model, v.LoadCapacityKg, v.EnRuta, v.DriverID, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create vehicle: %w", err)
	}
	return nil
}

// GetByID obtiene un vehículo por ID. Devuelve nil si no existe.
func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el vehículo y bloquea la fila (SELECT FOR UPDATE).
func (r *VehicleRepo) GetForUpdate(id string) (*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *VehicleRepo) scanOne(query string, args ...any) (*entity.Vehicle, error) {
	var v entity.Vehicle
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&v.ID, &v.Plate, &v.Brand, &v.Model, &v.LoadCapacityKg, &v.EnRuta, &v.DriverID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// Update actualiza los datos de un vehículo.
func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	query := `
		UPDATE vehicles SET plate = $2, brand = $3, model = $4, load_capacity_kg = $5,
			en_ruta = $6, driver_id = $7, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		v.ID, v.Plate, v.Brand, v.Model, v.LoadCapacityKg, v.EnRuta, v.DriverID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetEnRuta actualiza la cache "en ruta" y el chofer asignado.
func (r *VehicleRepo) SetEnRuta(vehicleID string, enRuta bool, driverID *string) error {
	query := `UPDATE vehicles SET en_ruta = $2, driver_id = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, vehicleID, enRuta, driverID)
	if err != nil {
		return fmt.Errorf("set en_ruta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los vehículos ordenados por patente.
func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY plate`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Plate, &v.Brand, &v.Model, &v.LoadCapacityKg, &v.EnRuta, &v.DriverID, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Delete elimina un vehículo. Falla con foreign keys si tiene historial.
func (r *VehicleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
