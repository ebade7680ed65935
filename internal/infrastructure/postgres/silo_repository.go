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

var _ repository.SiloRepository = (*SiloRepo)(nil)

const siloColumns = `id, name, capacity_kg, quantity_kg, product_id, avg_cost, created_at, updated_at`

// SiloRepo implementación de SiloRepository sobre PostgreSQL (usable con pool o tx).
type SiloRepo struct {
	q Querier
}

// NewSiloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiloRepository(q Querier) *SiloRepo {
	return &SiloRepo{q: q}
}

// Create persiste un silo.
func (r *SiloRepo) Create(s *entity.Silo) error {
	query := `
		INSERT INTO silos (` + siloColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.CapacityKg, s.QuantityKg, s.ProductID, s.AvgCost, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create silo: %w", err)
	}
	return nil
}

// GetByID obtiene un silo por ID. Devuelve nil si no existe.
func (r *SiloRepo) GetByID(id string) (*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el silo y bloquea la fila (SELECT FOR UPDATE).
func (r *SiloRepo) GetForUpdate(id string) (*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *SiloRepo) scanOne(query string, args ...any) (*entity.Silo, error) {
	var s entity.Silo
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.Name, &s.CapacityKg, &s.QuantityKg, &s.ProductID, &s.AvgCost, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get silo: %w", err)
	}
	return &s, nil
}

// Update actualiza cantidad y costo promedio de un silo.
func (r *SiloRepo) Update(s *entity.Silo) error {
	query := `
		UPDATE silos SET name = $2, capacity_kg = $3, quantity_kg = $4,
			product_id = $5, avg_cost = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.CapacityKg, s.QuantityKg, s.ProductID, s.AvgCost,
	)
	if err != nil {
		return fmt.Errorf("update silo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los silos ordenados por nombre.
func (r *SiloRepo) List() ([]*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list silos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Silo
	for rows.Next() {
		var s entity.Silo
		if err := rows.Scan(
			&s.ID, &s.Name, &s.CapacityKg, &s.QuantityKg, &s.ProductID, &s.AvgCost, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan silo: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
