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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL
// (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de una compra.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, date, user_id, supplier, notes, total, receipt_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Date, p.UserID, p.Supplier, p.Notes, p.Total, p.ReceiptPath, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de compra.
func (r *PurchaseRepo) CreateDetail(d *entity.PurchaseDetail) error {
	query := `
		INSERT INTO purchase_details (id, purchase_id, product_id, quantity, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.PurchaseID, d.ProductID, d.Quantity, d.UnitCost, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create purchase detail: %w", err)
	}
	return nil
}

// GetByID obtiene una compra con sus líneas. Devuelve nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `
		SELECT id, date, user_id, supplier, notes, total, receipt_path, created_at
		FROM purchases WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Date, &p.UserID, &p.Supplier, &p.Notes, &p.Total, &p.ReceiptPath, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}

	detailQuery := `
		SELECT id, purchase_id, product_id, quantity, unit_cost, subtotal
		FROM purchase_details WHERE purchase_id = $1`
	rows, err := r.q.Query(context.Background(), detailQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ProductID, &d.Quantity, &d.UnitCost, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan purchase detail: %w", err)
		}
		p.Details = append(p.Details, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateReceiptPath guarda la ruta del comprobante PDF generado fuera de la tx.
func (r *PurchaseRepo) UpdateReceiptPath(id, path string) error {
	query := `UPDATE purchases SET receipt_path = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, path)
	if err != nil {
		return fmt.Errorf("update receipt path: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
