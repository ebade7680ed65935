package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, client_id, user_id, vehicle_id, trip_id, date, payment,
	discount_pct, discount_amt, total, active, cancel_note, due_date, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.ClientID, s.UserID, s.VehicleID, s.TripID, s.Date, s.Payment,
		s.DiscountPct, s.DiscountAmt, s.Total, s.Active, s.CancelNote, s.DueDate, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de venta.
func (r *SaleRepo) CreateDetail(d *entity.SaleDetail) error {
	query := `
		INSERT INTO sale_details (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create sale detail: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus líneas. Devuelve nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.getOne(query, id)
}

// GetForUpdate obtiene la venta con sus líneas y bloquea la cabecera.
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *SaleRepo) getOne(query, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.ClientID, &s.UserID, &s.VehicleID, &s.TripID, &s.Date, &s.Payment,
		&s.DiscountPct, &s.DiscountAmt, &s.Total, &s.Active, &s.CancelNote, &s.DueDate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	details, err := r.listDetails(s.ID)
	if err != nil {
		return nil, err
	}
	s.Details = details
	return &s, nil
}

func (r *SaleRepo) listDetails(saleID string) ([]*entity.SaleDetail, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal
		FROM sale_details WHERE sale_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale details: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el flag de anulación y la nota. Nunca borra filas.
func (r *SaleRepo) UpdateStatus(id string, active bool, cancelNote string) error {
	query := `UPDATE sales SET active = $2, cancel_note = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, active, cancelNote)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByVehicleAndDate lista las ventas de un vehículo en un día calendario.
func (r *SaleRepo) ListByVehicleAndDate(vehicleID string, day time.Time) ([]*entity.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE vehicle_id = $1 AND date >= $2 AND date < $3
		ORDER BY date`
	rows, err := r.q.Query(context.Background(), query, vehicleID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.ClientID, &s.UserID, &s.VehicleID, &s.TripID, &s.Date, &s.Payment,
			&s.DiscountPct, &s.DiscountAmt, &s.Total, &s.Active, &s.CancelNote, &s.DueDate, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		details, err := r.listDetails(s.ID)
		if err != nil {
			return nil, err
		}
		s.Details = details
	}
	return list, nil
}
