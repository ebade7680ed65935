package postgres

import (
	"context"
	"fmt"

	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

// ProductionRepo implementación de ProductionRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductionRepo struct {
	q Querier
}

// NewProductionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionRepository(q Querier) *ProductionRepo {
	return &ProductionRepo{q: q}
}

// Create persiste la cabecera de una elaboración.
func (r *ProductionRepo) Create(p *entity.Production) error {
	query := `
		INSERT INTO productions (id, date, dest_silo_id, output_kg, user_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Date, p.DestSiloID, p.OutputKg, p.UserID, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create production: %w", err)
	}
	return nil
}

// CreateIngredient persiste un consumo de silo de la elaboración.
func (r *ProductionRepo) CreateIngredient(i *entity.ProductionIngredient) error {
	query := `
		INSERT INTO production_ingredients (id, production_id, silo_id, quantity_kg)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, i.ID, i.ProductionID, i.SiloID, i.QuantityKg)
	if err != nil {
		return fmt.Errorf("create production ingredient: %w", err)
	}
	return nil
}

// List lista elaboraciones con sus ingredientes, más recientes primero.
func (r *ProductionRepo) List(limit, offset int) ([]*entity.Production, error) {
	query := `
		SELECT id, date, dest_silo_id, output_kg, user_id, notes, created_at
		FROM productions ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Production
	for rows.Next() {
		var p entity.Production
		if err := rows.Scan(&p.ID, &p.Date, &p.DestSiloID, &p.OutputKg, &p.UserID, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan production: %w", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range list {
		ingredients, err := r.listIngredients(p.ID)
		if err != nil {
			return nil, err
		}
		p.Ingredients = ingredients
	}
	return list, nil
}

func (r *ProductionRepo) listIngredients(productionID string) ([]*entity.ProductionIngredient, error) {
	query := `
		SELECT id, production_id, silo_id, quantity_kg
		FROM production_ingredients WHERE production_id = $1`
	rows, err := r.q.Query(context.Background(), query, productionID)
	if err != nil {
		return nil, fmt.Errorf("list production ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionIngredient
	for rows.Next() {
		var i entity.ProductionIngredient
		if err := rows.Scan(&i.ID, &i.ProductionID, &i.SiloID, &i.QuantityKg); err != nil {
			return nil, fmt.Errorf("scan production ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}
