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

var _ repository.TripRepository = (*TripRepo)(nil)

const tripColumns = `id, vehicle_id, driver_id, companion_id, departed_at, returned_at, status, notes, created_at`

// TripRepo implementación de TripRepository sobre PostgreSQL (usable con pool o tx).
type TripRepo struct {
	q Querier
}

// NewTripRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTripRepository(q Querier) *TripRepo {
	return &TripRepo{q: q}
}

// Create persiste un viaje. El índice único parcial sobre (vehicle_id) WHERE
// status = 'EN_CURSO' respalda en la DB la regla de un viaje activo por vehículo.
func (r *TripRepo) Create(t *entity.Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.VehicleID, t.DriverID, t.CompanionID, t.DepartedAt, t.ReturnedAt, t.Status, t.Notes, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidState
		}
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

// GetByID obtiene un viaje por ID. Devuelve nil si no existe.
func (r *TripRepo) GetByID(id string) (*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el viaje y bloquea la fila (SELECT FOR UPDATE).
func (r *TripRepo) GetForUpdate(id string) (*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetActiveByVehicle devuelve el viaje EN_CURSO del vehículo, o nil.
func (r *TripRepo) GetActiveByVehicle(vehicleID string) (*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE vehicle_id = $1 AND status = 'EN_CURSO'`
	return r.scanOne(query, vehicleID)
}

// GetActiveByUser devuelve el viaje EN_CURSO donde el usuario es chofer o
// acompañante, o nil.
func (r *TripRepo) GetActiveByUser(userID string) (*entity.Trip, error) {
	query := `
		SELECT ` + tripColumns + ` FROM trips
		WHERE (driver_id = $1 OR companion_id = $1) AND status = 'EN_CURSO'
		LIMIT 1`
	return r.scanOne(query, userID)
}

func (r *TripRepo) scanOne(query string, args ...any) (*entity.Trip, error) {
	var t entity.Trip
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.VehicleID, &t.DriverID, &t.CompanionID, &t.DepartedAt, &t.ReturnedAt, &t.Status, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return &t, nil
}

// Update actualiza estado, retorno y notas de un viaje.
func (r *TripRepo) Update(t *entity.Trip) error {
	query := `
		UPDATE trips SET companion_id = $2, returned_at = $3, status = $4, notes = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.CompanionID, t.ReturnedAt, t.Status, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("update trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista los viajes EN_CURSO.
func (r *TripRepo) ListActive() ([]*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE status = 'EN_CURSO' ORDER BY departed_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active trips: %w", err)
	}
	defer rows.Close()
	var list []*entity.Trip
	for rows.Next() {
		var t entity.Trip
		if err := rows.Scan(&t.ID, &t.VehicleID, &t.DriverID, &t.CompanionID,
			&t.DepartedAt, &t.ReturnedAt, &t.Status, &t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
