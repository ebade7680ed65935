package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
	"github.com/avidelsur/distribuidora-api/pkg/normalize"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, name, tax_id, phone, address, special_price, debt,
	total_purchased, last_purchase, created_at, updated_at`

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un cliente. name_folded alimenta la búsqueda sin acentos.
func (r *ClientRepo) Create(c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `, name_folded)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.TaxID, c.Phone, c.Address, c.SpecialPrice, c.Debt,
		c.TotalPurchased, c.LastPurchase, c.CreatedAt, c.UpdatedAt, normalize.Fold(c.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil si no existe.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanOne(query, id)
}

// GetForUpdate obtiene el cliente y bloquea la fila (SELECT FOR UPDATE).
func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *ClientRepo) scanOne(query string, args ...any) (*entity.Client, error) {
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Address, &c.SpecialPrice, &c.Debt,
		&c.TotalPurchased, &c.LastPurchase, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update actualiza un cliente, incluidos sus agregados de deuda y compras.
func (r *ClientRepo) Update(c *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, tax_id = $3, phone = $4, address = $5,
			special_price = $6, debt = $7, total_purchased = $8, last_purchase = $9,
			name_folded = $10, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.TaxID, c.Phone, c.Address, c.SpecialPrice, c.Debt,
		c.TotalPurchased, c.LastPurchase, normalize.Fold(c.Name),
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchByName busca por nombre sin distinguir acentos ni mayúsculas.
func (r *ClientRepo) SearchByName(name string, limit int) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + ` FROM clients
		WHERE name_folded LIKE '%' || $1 || '%'
		ORDER BY name LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, normalize.Fold(name), limit)
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(
			&c.ID, &c.Name, &c.TaxID, &c.Phone, &c.Address, &c.SpecialPrice, &c.Debt,
			&c.TotalPurchased, &c.LastPurchase, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
