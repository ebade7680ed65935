package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

var _ repository.VehicleStockRepository = (*VehicleStockRepo)(nil)

// VehicleStockRepo implementación de VehicleStockRepository sobre PostgreSQL
// (usable con pool o tx).
type VehicleStockRepo struct {
	q Querier
}

// NewVehicleStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVehicleStockRepository(q Querier) *VehicleStockRepo {
	return &VehicleStockRepo{q: q}
}

// Get obtiene el saldo de un producto en un vehículo. Si el par no existe
// devuelve una fila en cero (todavía nunca se cargó ese producto).
func (r *VehicleStockRepo) Get(vehicleID, productID string) (*entity.VehicleStock, error) {
	query := `
		SELECT vehicle_id, product_id, quantity, updated_at
		FROM vehicle_stock WHERE vehicle_id = $1 AND product_id = $2`
	return r.scanOne(query, vehicleID, productID)
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
func (r *VehicleStockRepo) GetForUpdate(vehicleID, productID string) (*entity.VehicleStock, error) {
	query := `
		SELECT vehicle_id, product_id, quantity, updated_at
		FROM vehicle_stock WHERE vehicle_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scanOne(query, vehicleID, productID)
}

func (r *VehicleStockRepo) scanOne(query, vehicleID, productID string) (*entity.VehicleStock, error) {
	var s entity.VehicleStock
	err := r.q.QueryRow(context.Background(), query, vehicleID, productID).Scan(
		&s.VehicleID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.VehicleStock{VehicleID: vehicleID, ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get vehicle stock: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por vehículo y producto).
func (r *VehicleStockRepo) Upsert(stock *entity.VehicleStock) error {
	query := `
		INSERT INTO vehicle_stock (vehicle_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (vehicle_id, product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.VehicleID, stock.ProductID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert vehicle stock: %w", err)
	}
	return nil
}

// ListByVehicle lista los saldos de un vehículo.
func (r *VehicleStockRepo) ListByVehicle(vehicleID string) ([]*entity.VehicleStock, error) {
	query := `
		SELECT vehicle_id, product_id, quantity, updated_at
		FROM vehicle_stock WHERE vehicle_id = $1 ORDER BY product_id`
	return r.list(query, vehicleID)
}

// ListByVehicleForUpdate lista y bloquea todos los saldos de un vehículo.
// Se usa en la rendición: ninguna venta puede colarse mientras se cuenta.
func (r *VehicleStockRepo) ListByVehicleForUpdate(vehicleID string) ([]*entity.VehicleStock, error) {
	query := `
		SELECT vehicle_id, product_id, quantity, updated_at
		FROM vehicle_stock WHERE vehicle_id = $1 ORDER BY product_id
		FOR UPDATE`
	return r.list(query, vehicleID)
}

func (r *VehicleStockRepo) list(query, vehicleID string) ([]*entity.VehicleStock, error) {
	rows, err := r.q.Query(context.Background(), query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list vehicle stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.VehicleStock
	for rows.Next() {
		var s entity.VehicleStock
		if err := rows.Scan(&s.VehicleID, &s.ProductID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListOnStreet resume el "stock en calle": total por producto sumando los
// saldos de los vehículos que están en ruta.
func (r *VehicleStockRepo) ListOnStreet() ([]*entity.StreetStock, error) {
	query := `
		SELECT vs.product_id, SUM(vs.quantity), COUNT(DISTINCT vs.vehicle_id)
		FROM vehicle_stock vs
		JOIN vehicles v ON v.id = vs.vehicle_id
		WHERE v.en_ruta AND vs.quantity <> 0
		GROUP BY vs.product_id
		ORDER BY vs.product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list street stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StreetStock
	for rows.Next() {
		var s entity.StreetStock
		if err := rows.Scan(&s.ProductID, &s.Quantity, &s.Vehicles); err != nil {
			return nil, fmt.Errorf("scan street stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// HasStock indica si el vehículo tiene algún saldo distinto de cero.
func (r *VehicleStockRepo) HasStock(vehicleID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vehicle_stock WHERE vehicle_id = $1 AND quantity <> 0)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, vehicleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("has stock: %w", err)
	}
	return exists, nil
}
