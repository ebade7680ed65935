// Package apptest provee dobles de test en memoria para los casos de uso de
// la capa de aplicación: un Store que guarda entidades por valor, repositorios
// que cumplen los puertos de internal/domain/repository y un TxRunner que
// imita la semántica transaccional de postgres tomando un snapshot del Store
// al entrar y restaurándolo si el callback devuelve error.
package apptest

import (
	"context"
	"maps"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avidelsur/distribuidora-api/internal/application/factory"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
	"github.com/avidelsur/distribuidora-api/internal/domain/repository"
)

// Store es la "base de datos" en memoria de los tests. Las entidades se
// guardan por valor: los repos devuelven copias, igual que un scan de filas.
type Store struct {
	Products        map[string]entity.Product
	Vehicles        map[string]entity.Vehicle
	VehicleStocks   map[string]entity.VehicleStock // clave: vehicleID + "|" + productID
	Movements       []entity.StockMovement
	Trips           map[string]entity.Trip
	Sales           map[string]entity.Sale
	SaleDetails     []entity.SaleDetail
	Clients         map[string]entity.Client
	Users           map[string]entity.User
	Silos           map[string]entity.Silo
	Productions     map[string]entity.Production
	ProductionIngs  []entity.ProductionIngredient
	Purchases       map[string]entity.Purchase
	PurchaseDetails []entity.PurchaseDetail
	Notifications   []entity.Notification
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		Products:      make(map[string]entity.Product),
		Vehicles:      make(map[string]entity.Vehicle),
		VehicleStocks: make(map[string]entity.VehicleStock),
		Trips:         make(map[string]entity.Trip),
		Sales:         make(map[string]entity.Sale),
		Clients:       make(map[string]entity.Client),
		Users:         make(map[string]entity.User),
		Silos:         make(map[string]entity.Silo),
		Productions:   make(map[string]entity.Production),
		Purchases:     make(map[string]entity.Purchase),
	}
}

func stockKey(vehicleID, productID string) string {
	return vehicleID + "|" + productID
}

// VehicleStockQty devuelve el saldo actual del par, o cero si no hay fila.
func (s *Store) VehicleStockQty(vehicleID, productID string) decimal.Decimal {
	if st, ok := s.VehicleStocks[stockKey(vehicleID, productID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

// MovementsOfType devuelve los asientos de un tipo dado, en orden de creación.
func (s *Store) MovementsOfType(movType string) []entity.StockMovement {
	var out []entity.StockMovement
	for _, m := range s.Movements {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) snapshot() *Store {
	return &Store{
		Products:        maps.Clone(s.Products),
		Vehicles:        maps.Clone(s.Vehicles),
		VehicleStocks:   maps.Clone(s.VehicleStocks),
		Movements:       slices.Clone(s.Movements),
		Trips:           maps.Clone(s.Trips),
		Sales:           maps.Clone(s.Sales),
		SaleDetails:     slices.Clone(s.SaleDetails),
		Clients:         maps.Clone(s.Clients),
		Users:           maps.Clone(s.Users),
		Silos:           maps.Clone(s.Silos),
		Productions:     maps.Clone(s.Productions),
		ProductionIngs:  slices.Clone(s.ProductionIngs),
		Purchases:       maps.Clone(s.Purchases),
		PurchaseDetails: slices.Clone(s.PurchaseDetails),
		Notifications:   slices.Clone(s.Notifications),
	}
}

func (s *Store) restore(snap *Store) {
	*s = *snap
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner implementa los cuatro runners de transacción de la aplicación
// contra el Store: snapshot al entrar, restore si el callback falla.
type TxRunner struct {
	S *Store
}

var (
	_ ledger.TxRunner  = (*TxRunner)(nil)
	_ trips.TxRunner   = (*TxRunner)(nil)
	_ sales.TxRunner   = (*TxRunner)(nil)
	_ factory.TxRunner = (*TxRunner)(nil)
)

func (r *TxRunner) run(fn func() error) error {
	snap := r.S.snapshot()
	if err := fn(); err != nil {
		r.S.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{r.S}, &ProductRepo{r.S}, &VehicleStockRepo{r.S})
	})
}

func (r *TxRunner) RunPurchase(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{r.S}, &ProductRepo{r.S}, &VehicleStockRepo{r.S}, &PurchaseRepo{r.S})
	})
}

func (r *TxRunner) RunTrip(_ context.Context, fn func(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
) error) error {
	return r.run(func() error {
		return fn(&TripRepo{r.S}, &VehicleRepo{r.S}, &MovementRepo{r.S}, &ProductRepo{r.S}, &VehicleStockRepo{r.S})
	})
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	vehicleStockRepo repository.VehicleStockRepository,
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
) error) error {
	return r.run(func() error {
		return fn(&MovementRepo{r.S}, &ProductRepo{r.S}, &VehicleStockRepo{r.S}, &SaleRepo{r.S}, &ClientRepo{r.S})
	})
}

func (r *TxRunner) RunFactory(_ context.Context, fn func(
	siloRepo repository.SiloRepository,
	productionRepo repository.ProductionRepository,
) error) error {
	return r.run(func() error {
		return fn(&SiloRepo{r.S}, &ProductionRepo{r.S})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Notifier y comprobantes
// ──────────────────────────────────────────────────────────────────────────────

// Notifier registra los avisos emitidos para poder asertarlos.
type Notifier struct {
	Kinds    []string
	Messages []string
}

// Notify acumula el aviso.
func (n *Notifier) Notify(kind, message, _ string) {
	n.Kinds = append(n.Kinds, kind)
	n.Messages = append(n.Messages, message)
}

// Receipts es un generador de comprobantes de mentira: devuelve Path o Err.
type Receipts struct {
	Path string
	Err  error
}

// Generate devuelve la ruta configurada o el error configurado.
func (r *Receipts) Generate(_ *entity.Purchase, _ map[string]*entity.Product) (string, error) {
	return r.Path, r.Err
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository sobre el Store.
type ProductRepo struct{ S *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(p *entity.Product) error {
	if _, ok := r.S.Products[p.ID]; ok {
		return domain.ErrConflict
	}
	r.S.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.S.Products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) Update(p *entity.Product) error {
	if _, ok := r.S.Products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.S.Products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// VehicleRepo implementa repository.VehicleRepository sobre el Store.
type VehicleRepo struct{ S *Store }

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

func (r *VehicleRepo) Create(v *entity.Vehicle) error {
	r.S.Vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	if v, ok := r.S.Vehicles[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *VehicleRepo) GetForUpdate(id string) (*entity.Vehicle, error) {
	return r.GetByID(id)
}

func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	if _, ok := r.S.Vehicles[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Vehicles[v.ID] = *v
	return nil
}

func (r *VehicleRepo) SetEnRuta(vehicleID string, enRuta bool, driverID *string) error {
	v, ok := r.S.Vehicles[vehicleID]
	if !ok {
		return domain.ErrNotFound
	}
	v.EnRuta = enRuta
	v.DriverID = driverID
	r.S.Vehicles[vehicleID] = v
	return nil
}

func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	var out []*entity.Vehicle
	for _, v := range r.S.Vehicles {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (r *VehicleRepo) Delete(id string) error {
	if _, ok := r.S.Vehicles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.S.Vehicles, id)
	return nil
}

// VehicleStockRepo implementa repository.VehicleStockRepository sobre el
// Store, incluida la fila en cero cuando el par todavía no existe.
type VehicleStockRepo struct{ S *Store }

var _ repository.VehicleStockRepository = (*VehicleStockRepo)(nil)

func (r *VehicleStockRepo) Get(vehicleID, productID string) (*entity.VehicleStock, error) {
	if st, ok := r.S.VehicleStocks[stockKey(vehicleID, productID)]; ok {
		return &st, nil
	}
	return &entity.VehicleStock{VehicleID: vehicleID, ProductID: productID, Quantity: decimal.Zero}, nil
}

func (r *VehicleStockRepo) GetForUpdate(vehicleID, productID string) (*entity.VehicleStock, error) {
	return r.Get(vehicleID, productID)
}

func (r *VehicleStockRepo) Upsert(st *entity.VehicleStock) error {
	r.S.VehicleStocks[stockKey(st.VehicleID, st.ProductID)] = *st
	return nil
}

func (r *VehicleStockRepo) ListByVehicle(vehicleID string) ([]*entity.VehicleStock, error) {
	var out []*entity.VehicleStock
	for _, st := range r.S.VehicleStocks {
		if st.VehicleID == vehicleID {
			st := st
			out = append(out, &st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *VehicleStockRepo) ListByVehicleForUpdate(vehicleID string) ([]*entity.VehicleStock, error) {
	return r.ListByVehicle(vehicleID)
}

func (r *VehicleStockRepo) ListOnStreet() ([]*entity.StreetStock, error) {
	byProduct := make(map[string]*entity.StreetStock)
	for _, st := range r.S.VehicleStocks {
		v, ok := r.S.Vehicles[st.VehicleID]
		if !ok || !v.EnRuta || st.Quantity.IsZero() {
			continue
		}
		agg, ok := byProduct[st.ProductID]
		if !ok {
			agg = &entity.StreetStock{ProductID: st.ProductID, Quantity: decimal.Zero}
			byProduct[st.ProductID] = agg
		}
		agg.Quantity = agg.Quantity.Add(st.Quantity)
		agg.Vehicles++
	}
	var out []*entity.StreetStock
	for _, agg := range byProduct {
		out = append(out, agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *VehicleStockRepo) HasStock(vehicleID string) (bool, error) {
	for _, st := range r.S.VehicleStocks {
		if st.VehicleID == vehicleID && !st.Quantity.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

// MovementRepo implementa repository.StockMovementRepository sobre el Store.
type MovementRepo struct{ S *Store }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(m *entity.StockMovement) error {
	r.S.Movements = append(r.S.Movements, *m)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.S.Movements {
		if m.ID == id {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByVehicle(vehicleID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool {
		return m.VehicleID != nil && *m.VehicleID == vehicleID
	}, from, to, limit, offset), nil
}

func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return r.list(func(m entity.StockMovement) bool {
		return m.ProductID == productID
	}, from, to, limit, offset), nil
}

func (r *MovementRepo) list(match func(entity.StockMovement) bool, from, to *time.Time, limit, offset int) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.S.Movements {
		if !match(m) {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset)
}

// SumByVehicleProduct replica la semántica del adaptador SQL: los asientos
// DESCARGA_FINAL registran el retorno en positivo pero restan del vehículo.
func (r *MovementRepo) SumByVehicleProduct(vehicleID, productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.S.Movements {
		if m.VehicleID == nil || *m.VehicleID != vehicleID || m.ProductID != productID {
			continue
		}
		if m.Type == entity.MovementTypeDescarga {
			sum = sum.Sub(m.Quantity)
		} else {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// TripRepo implementa repository.TripRepository sobre el Store. Create imita
// el índice parcial único: un solo viaje EN_CURSO por vehículo.
type TripRepo struct{ S *Store }

var _ repository.TripRepository = (*TripRepo)(nil)

func (r *TripRepo) Create(t *entity.Trip) error {
	if t.Status == entity.TripStatusEnCurso {
		for _, existing := range r.S.Trips {
			if existing.VehicleID == t.VehicleID && existing.Status == entity.TripStatusEnCurso {
				return domain.ErrInvalidState
			}
		}
	}
	r.S.Trips[t.ID] = *t
	return nil
}

func (r *TripRepo) GetByID(id string) (*entity.Trip, error) {
	if t, ok := r.S.Trips[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r *TripRepo) GetForUpdate(id string) (*entity.Trip, error) {
	return r.GetByID(id)
}

func (r *TripRepo) Update(t *entity.Trip) error {
	if _, ok := r.S.Trips[t.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Trips[t.ID] = *t
	return nil
}

func (r *TripRepo) GetActiveByVehicle(vehicleID string) (*entity.Trip, error) {
	for _, t := range r.S.Trips {
		if t.VehicleID == vehicleID && t.Status == entity.TripStatusEnCurso {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *TripRepo) GetActiveByUser(userID string) (*entity.Trip, error) {
	for _, t := range r.S.Trips {
		if t.Status != entity.TripStatusEnCurso {
			continue
		}
		if t.DriverID == userID || (t.CompanionID != nil && *t.CompanionID == userID) {
			t := t
			return &t, nil
		}
	}
	return nil, nil
}

func (r *TripRepo) ListActive() ([]*entity.Trip, error) {
	var out []*entity.Trip
	for _, t := range r.S.Trips {
		if t.Status == entity.TripStatusEnCurso {
			t := t
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartedAt.Before(out[j].DepartedAt) })
	return out, nil
}

// SaleRepo implementa repository.SaleRepository sobre el Store.
type SaleRepo struct{ S *Store }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(s *entity.Sale) error {
	stored := *s
	stored.Details = nil // las líneas viven en SaleDetails, como en la tabla
	r.S.Sales[s.ID] = stored
	return nil
}

func (r *SaleRepo) CreateDetail(d *entity.SaleDetail) error {
	r.S.SaleDetails = append(r.S.SaleDetails, *d)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.S.Sales[id]
	if !ok {
		return nil, nil
	}
	for _, d := range r.S.SaleDetails {
		if d.SaleID == id {
			d := d
			s.Details = append(s.Details, &d)
		}
	}
	return &s, nil
}

func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *SaleRepo) UpdateStatus(id string, active bool, cancelNote string) error {
	s, ok := r.S.Sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = active
	s.CancelNote = cancelNote
	s.UpdatedAt = time.Now()
	r.S.Sales[id] = s
	return nil
}

func (r *SaleRepo) ListByVehicleAndDate(vehicleID string, day time.Time) ([]*entity.Sale, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var out []*entity.Sale
	for id, s := range r.S.Sales {
		if s.VehicleID != vehicleID || s.Date.Before(start) || !s.Date.Before(end) {
			continue
		}
		full, _ := r.GetByID(id)
		out = append(out, full)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ClientRepo implementa repository.ClientRepository sobre el Store.
type ClientRepo struct{ S *Store }

var _ repository.ClientRepository = (*ClientRepo)(nil)

func (r *ClientRepo) Create(c *entity.Client) error {
	r.S.Clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	if c, ok := r.S.Clients[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *ClientRepo) GetForUpdate(id string) (*entity.Client, error) {
	return r.GetByID(id)
}

func (r *ClientRepo) Update(c *entity.Client) error {
	if _, ok := r.S.Clients[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Clients[c.ID] = *c
	return nil
}

func (r *ClientRepo) SearchByName(name string, limit int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.S.Clients {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, 0), nil
}

// UserRepo implementa repository.UserRepository sobre el Store.
type UserRepo struct{ S *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(u *entity.User) error {
	for _, existing := range r.S.Users {
		if existing.Email == u.Email {
			return domain.ErrConflict
		}
	}
	r.S.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.S.Users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.S.Users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

// SiloRepo implementa repository.SiloRepository sobre el Store.
type SiloRepo struct{ S *Store }

var _ repository.SiloRepository = (*SiloRepo)(nil)

func (r *SiloRepo) Create(s *entity.Silo) error {
	r.S.Silos[s.ID] = *s
	return nil
}

func (r *SiloRepo) GetByID(id string) (*entity.Silo, error) {
	if s, ok := r.S.Silos[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *SiloRepo) GetForUpdate(id string) (*entity.Silo, error) {
	return r.GetByID(id)
}

func (r *SiloRepo) Update(s *entity.Silo) error {
	if _, ok := r.S.Silos[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.S.Silos[s.ID] = *s
	return nil
}

func (r *SiloRepo) List() ([]*entity.Silo, error) {
	var out []*entity.Silo
	for _, s := range r.S.Silos {
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProductionRepo implementa repository.ProductionRepository sobre el Store.
type ProductionRepo struct{ S *Store }

var _ repository.ProductionRepository = (*ProductionRepo)(nil)

func (r *ProductionRepo) Create(p *entity.Production) error {
	stored := *p
	stored.Ingredients = nil
	r.S.Productions[p.ID] = stored
	return nil
}

func (r *ProductionRepo) CreateIngredient(ing *entity.ProductionIngredient) error {
	r.S.ProductionIngs = append(r.S.ProductionIngs, *ing)
	return nil
}

func (r *ProductionRepo) List(limit, offset int) ([]*entity.Production, error) {
	var out []*entity.Production
	for id, p := range r.S.Productions {
		p := p
		for _, ing := range r.S.ProductionIngs {
			if ing.ProductionID == id {
				ing := ing
				p.Ingredients = append(p.Ingredients, &ing)
			}
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return paginate(out, limit, offset), nil
}

// PurchaseRepo implementa repository.PurchaseRepository sobre el Store.
type PurchaseRepo struct{ S *Store }

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	stored := *p
	stored.Details = nil
	r.S.Purchases[p.ID] = stored
	return nil
}

func (r *PurchaseRepo) CreateDetail(d *entity.PurchaseDetail) error {
	r.S.PurchaseDetails = append(r.S.PurchaseDetails, *d)
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	p, ok := r.S.Purchases[id]
	if !ok {
		return nil, nil
	}
	for _, d := range r.S.PurchaseDetails {
		if d.PurchaseID == id {
			d := d
			p.Details = append(p.Details, &d)
		}
	}
	return &p, nil
}

func (r *PurchaseRepo) UpdateReceiptPath(id, path string) error {
	p, ok := r.S.Purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.ReceiptPath = path
	r.S.Purchases[id] = p
	return nil
}

// NotificationRepo implementa repository.NotificationRepository sobre el Store.
type NotificationRepo struct{ S *Store }

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

func (r *NotificationRepo) Create(n *entity.Notification) error {
	r.S.Notifications = append(r.S.Notifications, *n)
	return nil
}

func (r *NotificationRepo) List(limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for i := len(r.S.Notifications) - 1; i >= 0; i-- {
		n := r.S.Notifications[i]
		out = append(out, &n)
	}
	return paginate(out, limit, offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
