// Package catalog agrupa el ABM de productos, clientes y vehículos, más el
// feed de avisos. Son operaciones simples sin transacciones de varias tablas.
package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// UseCase casos de uso de catálogo.
type UseCase struct {
	productRepo      repository.ProductRepository
	clientRepo       repository.ClientRepository
	vehicleRepo      repository.VehicleRepository
	vehicleStockRepo repository.VehicleStockRepository
	tripRepo         repository.TripRepository
	notificationRepo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	productRepo repository.ProductRepository,
	clientRepo repository.ClientRepository,
	vehicleRepo repository.VehicleRepository,
	vehicleStockRepo repository.VehicleStockRepository,
	tripRepo repository.TripRepository,
	notificationRepo repository.NotificationRepository,
) *UseCase {
	return &UseCase{
		productRepo:      productRepo,
		clientRepo:       clientRepo,
		vehicleRepo:      vehicleRepo,
		vehicleStockRepo: vehicleStockRepo,
		tripRepo:         tripRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateProduct da de alta un producto.
func (uc *UseCase) CreateProduct(p *entity.Product) error {
	if p.Name == "" {
		return domain.ErrInvalidInput
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return uc.productRepo.Create(p)
}

// GetProduct obtiene un producto.
func (uc *UseCase) GetProduct(id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// UpdateProduct actualiza datos comerciales de un producto. El stock no se
// toca por acá: eso es del libro de movimientos.
func (uc *UseCase) UpdateProduct(p *entity.Product) error {
	current, err := uc.productRepo.GetByID(p.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	p.Stock = current.Stock
	p.LastCost = current.LastCost
	return uc.productRepo.Update(p)
}

// ListProducts lista productos.
func (uc *UseCase) ListProducts(limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.List(limit, offset)
}

// CreateClient da de alta un cliente.
func (uc *UseCase) CreateClient(c *entity.Client) error {
	if c.Name == "" {
		return domain.ErrInvalidInput
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return uc.clientRepo.Create(c)
}

// GetClient obtiene un cliente con sus agregados de deuda y compras.
func (uc *UseCase) GetClient(id string) (*entity.Client, error) {
	c, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// SearchClients busca clientes por nombre, sin distinguir acentos.
func (uc *UseCase) SearchClients(name string, limit int) ([]*entity.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.clientRepo.SearchByName(name, limit)
}

// CreateVehicle da de alta una camioneta.
func (uc *UseCase) CreateVehicle(v *entity.Vehicle) error {
	if v.Plate == "" {
		return domain.ErrInvalidInput
	}
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	v.EnRuta = false
	v.DriverID = nil
	return uc.vehicleRepo.Create(v)
}

// ListVehicles lista las camionetas.
func (uc *UseCase) ListVehicles() ([]*entity.Vehicle, error) {
	return uc.vehicleRepo.List()
}

// DeleteVehicle elimina una camioneta. Rechaza si tiene un viaje en curso o
// stock arriba: primero se rinde y se descarga.
func (uc *UseCase) DeleteVehicle(id string) error {
	v, err := uc.vehicleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	active, err := uc.tripRepo.GetActiveByVehicle(id)
	if err != nil {
		return err
	}
	if active != nil {
		return fmt.Errorf("%w: el vehículo tiene un viaje en curso", domain.ErrInvalidState)
	}
	hasStock, err := uc.vehicleStockRepo.HasStock(id)
	if err != nil {
		return err
	}
	if hasStock {
		return fmt.Errorf("%w: el vehículo todavía tiene stock cargado", domain.ErrInvalidState)
	}
	return uc.vehicleRepo.Delete(id)
}

// ListNotifications lista el feed de avisos.
func (uc *UseCase) ListNotifications(limit, offset int) ([]*entity.Notification, error) {
	return uc.notificationRepo.List(limit, offset)
}
