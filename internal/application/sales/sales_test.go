package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/application/apptest"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/sales"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	vehA = "veh-a"
	vehB = "veh-b"

	choferJuan = "user-juan"
	encargado  = "user-encargado"

	clienteRosa = "cli-rosa"

	prodHuevos = "prod-huevos"
	prodPollo  = "prod-pollo"
)

func newStore() *apptest.Store {
	s := apptest.NewStore()
	s.Vehicles[vehA] = entity.Vehicle{ID: vehA, Plate: "AB123CD"}
	s.Vehicles[vehB] = entity.Vehicle{ID: vehB, Plate: "AC456EF"}
	s.Users[choferJuan] = entity.User{ID: choferJuan, Name: "Juan", Role: entity.RoleChofer, Status: entity.UserStatusActive}
	s.Users[encargado] = entity.User{ID: encargado, Name: "Encargado", Role: entity.RoleEncargado, Status: entity.UserStatusActive}
	s.Clients[clienteRosa] = entity.Client{ID: clienteRosa, Name: "Almacén Rosa"}
	s.Products[prodHuevos] = entity.Product{ID: prodHuevos, Name: "Huevos blancos", Stock: decimal.NewFromInt(500)}
	s.Products[prodPollo] = entity.Product{ID: prodPollo, Name: "Pollo entero", Stock: decimal.NewFromInt(200)}
	s.VehicleStocks[vehA+"|"+prodHuevos] = entity.VehicleStock{
		VehicleID: vehA, ProductID: prodHuevos, Quantity: decimal.NewFromInt(50),
	}
	s.VehicleStocks[vehA+"|"+prodPollo] = entity.VehicleStock{
		VehicleID: vehA, ProductID: prodPollo, Quantity: decimal.NewFromInt(20),
	}
	return s
}

func newUC(s *apptest.Store) *sales.UseCase {
	runner := &apptest.TxRunner{S: s}
	return sales.NewUseCase(
		runner,
		ledger.NewApplyMovementUseCase(runner),
		&apptest.UserRepo{S: s},
		&apptest.ClientRepo{S: s},
		&apptest.TripRepo{S: s},
		&apptest.SaleRepo{S: s},
		&apptest.Notifier{},
	)
}

func openTrip(s *apptest.Store, id, vehicleID, driverID string) {
	s.Trips[id] = entity.Trip{
		ID: id, VehicleID: vehicleID, DriverID: driverID,
		Status: entity.TripStatusEnCurso,
	}
}

func basicInput(userID string) sales.RegisterInput {
	return sales.RegisterInput{
		ClientID:  clienteRosa,
		UserID:    userID,
		VehicleID: vehA,
		Payment:   entity.PaymentEfectivo,
		Lines: []sales.SaleLine{
			{ProductID: prodHuevos, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			{ProductID: prodPollo, Quantity: decimal.NewFromInt(4), UnitPrice: decimal.NewFromInt(8)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_EncargadoSinViaje(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	sale, err := uc.RegisterSale(context.Background(), basicInput(encargado))
	require.NoError(t, err, "un encargado puede vender sin viaje activo")
	require.NotNil(t, sale)

	// total = 10*5 + 4*8 = 82, sin descuento
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(82)))
	assert.Nil(t, sale.TripID)
	assert.True(t, sale.Active)
	require.Len(t, sale.Details, 2)

	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).Equal(decimal.NewFromInt(40)))
	assert.True(t, s.VehicleStockQty(vehA, prodPollo).Equal(decimal.NewFromInt(16)))

	ventas := s.MovementsOfType(entity.MovementTypeVenta)
	require.Len(t, ventas, 2, "un asiento VENTA por línea")
	for _, m := range ventas {
		assert.True(t, m.Quantity.IsNegative(), "la venta sale del vehículo en negativo")
	}

	client := s.Clients[clienteRosa]
	assert.True(t, client.TotalPurchased.Equal(decimal.NewFromInt(82)))
	assert.True(t, client.Debt.IsZero(), "venta en efectivo no genera deuda")
	assert.NotNil(t, client.LastPurchase)
}

func TestRegisterSale_ConDescuento(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	in := basicInput(encargado)
	in.DiscountPct = decimal.NewFromInt(10)
	sale, err := uc.RegisterSale(context.Background(), in)
	require.NoError(t, err)

	// subtotal 82, descuento 8.2, total 73.8
	assert.True(t, sale.DiscountAmt.Equal(decimal.NewFromFloat(8.2)))
	assert.True(t, sale.Total.Equal(decimal.NewFromFloat(73.8)))
}

func TestRegisterSale_CtaCorrienteSumaDeuda(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	in := basicInput(encargado)
	in.Payment = entity.PaymentCtaCorriente
	sale, err := uc.RegisterSale(context.Background(), in)
	require.NoError(t, err)

	client := s.Clients[clienteRosa]
	assert.True(t, client.Debt.Equal(sale.Total),
		"la venta a cuenta corriente suma la deuda del cliente")
}

func TestRegisterSale_ChoferSinViaje(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	_, err := uc.RegisterSale(context.Background(), basicInput(choferJuan))
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"un chofer solo vende con viaje activo")
	assert.Empty(t, s.Sales)
	assert.Empty(t, s.Movements)
}

func TestRegisterSale_ChoferConViajeEnOtroVehiculo(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	openTrip(s, "trip-1", vehB, choferJuan)

	_, err := uc.RegisterSale(context.Background(), basicInput(choferJuan))
	assert.ErrorIs(t, err, domain.ErrConflict,
		"el chofer solo vende desde el vehículo de su viaje")
}

func TestRegisterSale_ChoferConViaje_AsociaElViaje(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	openTrip(s, "trip-1", vehA, choferJuan)

	sale, err := uc.RegisterSale(context.Background(), basicInput(choferJuan))
	require.NoError(t, err)
	require.NotNil(t, sale.TripID)
	assert.Equal(t, "trip-1", *sale.TripID)
}

// La venta es todo-o-nada: si una línea no tiene stock, ni la cabecera ni los
// asientos ni los agregados del cliente deben quedar.
func TestRegisterSale_StockInsuficiente_SinEfectos(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	in := basicInput(encargado)
	in.Lines = []sales.SaleLine{
		{ProductID: prodHuevos, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
		{ProductID: prodPollo, Quantity: decimal.NewFromInt(99), UnitPrice: decimal.NewFromInt(8)}, // hay 20
	}
	_, err := uc.RegisterSale(context.Background(), in)

	var insufficientErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, prodPollo, insufficientErr.ProductID)
	assert.Equal(t, "Pollo entero", insufficientErr.ProductName)
	assert.True(t, insufficientErr.Available.Equal(decimal.NewFromInt(20)))

	assert.Empty(t, s.Sales)
	assert.Empty(t, s.SaleDetails)
	assert.Empty(t, s.Movements)
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).Equal(decimal.NewFromInt(50)))
	assert.True(t, s.Clients[clienteRosa].TotalPurchased.IsZero())
}

func TestRegisterSale_ClienteInexistente(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	in := basicInput(encargado)
	in.ClientID = "cli-fantasma"
	_, err := uc.RegisterSale(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterSale_Validaciones(t *testing.T) {
	uc := newUC(newStore())
	ctx := context.Background()

	in := basicInput(encargado)
	in.Payment = "TRUEQUE"
	_, err := uc.RegisterSale(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "método de pago inválido")

	in = basicInput(encargado)
	in.DiscountPct = decimal.NewFromInt(150)
	_, err = uc.RegisterSale(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descuento mayor a 100")

	in = basicInput(encargado)
	in.Lines = nil
	_, err = uc.RegisterSale(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	in = basicInput(encargado)
	in.Lines[0].Quantity = decimal.Zero
	_, err = uc.RegisterSale(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea con cantidad cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelSale_RevierteTodo(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	in := basicInput(encargado)
	in.Payment = entity.PaymentCtaCorriente
	sale, err := uc.RegisterSale(context.Background(), in)
	require.NoError(t, err)

	err = uc.CancelSale(context.Background(), sale.ID, encargado, "pedido equivocado")
	require.NoError(t, err)

	stored := s.Sales[sale.ID]
	assert.False(t, stored.Active, "la venta queda anulada, nunca borrada")
	assert.Equal(t, "pedido equivocado", stored.CancelNote)

	client := s.Clients[clienteRosa]
	assert.True(t, client.TotalPurchased.IsZero())
	assert.True(t, client.Debt.IsZero(), "la anulación revierte la deuda de cta corriente")

	devoluciones := s.MovementsOfType(entity.MovementTypeDevolucion)
	assert.Len(t, devoluciones, 2, "un asiento DEVOLUCION_CLIENTE por línea")
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).Equal(decimal.NewFromInt(50)),
		"el stock vuelve al vehículo")
	assert.True(t, s.VehicleStockQty(vehA, prodPollo).Equal(decimal.NewFromInt(20)))
}

func TestCancelSale_DobleAnulacion(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	sale, err := uc.RegisterSale(context.Background(), basicInput(encargado))
	require.NoError(t, err)
	require.NoError(t, uc.CancelSale(context.Background(), sale.ID, encargado, "error"))

	movsBefore := len(s.Movements)
	err = uc.CancelSale(context.Background(), sale.ID, encargado, "de nuevo")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, s.Movements, movsBefore,
		"no pueden salir dos tandas de devoluciones de una misma venta")
	assert.True(t, s.Clients[clienteRosa].TotalPurchased.IsZero(),
		"los agregados no se revierten dos veces")
}

func TestCancelSale_Inexistente(t *testing.T) {
	uc := newUC(newStore())

	err := uc.CancelSale(context.Background(), "sale-fantasma", encargado, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSale_TraeLasLineas(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	sale, err := uc.RegisterSale(context.Background(), basicInput(encargado))
	require.NoError(t, err)

	got, err := uc.GetSale(sale.ID)
	require.NoError(t, err)
	assert.Len(t, got.Details, 2)
	assert.True(t, got.Total.Equal(sale.Total))
}

func TestListByVehicleAndDate(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	sale, err := uc.RegisterSale(context.Background(), basicInput(encargado))
	require.NoError(t, err)

	list, err := uc.ListByVehicleAndDate(vehA, sale.Date)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, sale.ID, list[0].ID)

	list, err = uc.ListByVehicleAndDate(vehB, sale.Date)
	require.NoError(t, err)
	assert.Empty(t, list)
}
