package trips_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/application/apptest"
	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/application/trips"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

const (
	vehA = "veh-a"
	vehB = "veh-b"

	choferJuan  = "user-juan"
	choferPedro = "user-pedro"
	acompMaria  = "user-maria"
	encargado   = "user-encargado"

	prodHuevos = "prod-huevos"
	prodPollo  = "prod-pollo"
)

func newStore() *apptest.Store {
	s := apptest.NewStore()
	s.Vehicles[vehA] = entity.Vehicle{ID: vehA, Plate: "AB123CD"}
	s.Vehicles[vehB] = entity.Vehicle{ID: vehB, Plate: "AC456EF"}
	s.Users[choferJuan] = entity.User{ID: choferJuan, Name: "Juan", Role: entity.RoleChofer, Status: entity.UserStatusActive}
	s.Users[choferPedro] = entity.User{ID: choferPedro, Name: "Pedro", Role: entity.RoleChofer, Status: entity.UserStatusActive}
	s.Users[acompMaria] = entity.User{ID: acompMaria, Name: "María", Role: entity.RoleChofer, Status: entity.UserStatusActive}
	s.Users[encargado] = entity.User{ID: encargado, Name: "Encargado", Role: entity.RoleEncargado, Status: entity.UserStatusActive}
	s.Products[prodHuevos] = entity.Product{ID: prodHuevos, Name: "Huevos blancos", Stock: decimal.NewFromInt(500)}
	s.Products[prodPollo] = entity.Product{ID: prodPollo, Name: "Pollo entero", Stock: decimal.NewFromInt(200)}
	return s
}

func newUC(s *apptest.Store) *trips.UseCase {
	runner := &apptest.TxRunner{S: s}
	return trips.NewUseCase(
		runner,
		ledger.NewApplyMovementUseCase(runner),
		&apptest.TripRepo{S: s},
		&apptest.VehicleRepo{S: s},
		&apptest.UserRepo{S: s},
		&apptest.Notifier{},
	)
}

func loadStock(s *apptest.Store, vehicleID, productID string, qty int64) {
	s.VehicleStocks[vehicleID+"|"+productID] = entity.VehicleStock{
		VehicleID: vehicleID, ProductID: productID, Quantity: decimal.NewFromInt(qty),
	}
}

func startTrip(t *testing.T, uc *trips.UseCase, vehicleID, driverID string) *entity.Trip {
	t.Helper()
	trip, err := uc.StartTrip(context.Background(), trips.StartInput{VehicleID: vehicleID, DriverID: driverID})
	require.NoError(t, err)
	return trip
}

// ──────────────────────────────────────────────────────────────────────────────
// StartTrip
// ──────────────────────────────────────────────────────────────────────────────

func TestStartTrip_AbreViajeYMarcaEnRuta(t *testing.T) {
	s := newStore()
	uc := newUC(s)

	trip := startTrip(t, uc, vehA, choferJuan)

	assert.Equal(t, entity.TripStatusEnCurso, trip.Status)
	assert.Equal(t, vehA, trip.VehicleID)
	assert.Equal(t, choferJuan, trip.DriverID)
	assert.True(t, s.Vehicles[vehA].EnRuta)
	require.NotNil(t, s.Vehicles[vehA].DriverID)
	assert.Equal(t, choferJuan, *s.Vehicles[vehA].DriverID)
}

func TestStartTrip_VehiculoConViajeActivo(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	startTrip(t, uc, vehA, choferJuan)

	_, err := uc.StartTrip(context.Background(), trips.StartInput{VehicleID: vehA, DriverID: choferPedro})
	assert.ErrorIs(t, err, domain.ErrInvalidState,
		"un solo viaje EN_CURSO por vehículo")
}

func TestStartTrip_ChoferYaEnOtroViaje(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	startTrip(t, uc, vehA, choferJuan)

	_, err := uc.StartTrip(context.Background(), trips.StartInput{VehicleID: vehB, DriverID: choferJuan})
	assert.ErrorIs(t, err, domain.ErrConflict,
		"un empleado participa de a lo sumo un viaje EN_CURSO")
}

func TestStartTrip_AcompananteYaEnOtroViaje(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	startTrip(t, uc, vehA, acompMaria)

	companion := acompMaria
	_, err := uc.StartTrip(context.Background(), trips.StartInput{
		VehicleID:   vehB,
		DriverID:    choferPedro,
		CompanionID: &companion,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStartTrip_AcompananteIgualChofer(t *testing.T) {
	uc := newUC(newStore())

	companion := choferJuan
	_, err := uc.StartTrip(context.Background(), trips.StartInput{
		VehicleID:   vehA,
		DriverID:    choferJuan,
		CompanionID: &companion,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStartTrip_ChoferInactivo(t *testing.T) {
	s := newStore()
	u := s.Users[choferJuan]
	u.Status = entity.UserStatusInactive
	s.Users[choferJuan] = u
	uc := newUC(s)

	_, err := uc.StartTrip(context.Background(), trips.StartInput{VehicleID: vehA, DriverID: choferJuan})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestStartTrip_ChoferInexistente(t *testing.T) {
	uc := newUC(newStore())

	_, err := uc.StartTrip(context.Background(), trips.StartInput{VehicleID: vehA, DriverID: "user-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// FinishTrip sin rendición
// ──────────────────────────────────────────────────────────────────────────────

// Counted nil es un cierre administrativo: el viaje cierra, el vehículo se
// libera y el stock arriba del vehículo queda como estaba.
func TestFinishTrip_SinRendicion(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 40)

	finished, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID: trip.ID,
		UserID: encargado,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TripStatusFinalizado, finished.Status)
	assert.NotNil(t, finished.ReturnedAt)
	assert.False(t, s.Vehicles[vehA].EnRuta)
	assert.Empty(t, s.Movements, "sin conteo no hay asientos de rendición")
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).Equal(decimal.NewFromInt(40)))
}

func TestFinishTrip_DobleCierre(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{TripID: trip.ID, UserID: encargado})
	require.NoError(t, err)

	movsBefore := len(s.Movements)
	_, err = uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodHuevos: decimal.NewFromInt(10)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Len(t, s.Movements, movsBefore,
		"un viaje ya finalizado no genera ni un movimiento más")
}

func TestFinishTrip_Inexistente(t *testing.T) {
	uc := newUC(newStore())

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{TripID: "trip-fantasma", UserID: encargado})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// FinishTrip con rendición
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: salió con 100, se contaron 92 al volver. Debe asentar
// MERMA -8, DESCARGA_FINAL +92, devolver 92 al depósito y dejar el vehículo
// en cero. El replay del libro también tiene que dar cero.
func TestFinishTrip_RendicionConFaltante(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 100)
	// asiento de carga para que el libro tenga la historia completa
	vid := vehA
	s.Movements = append(s.Movements, entity.StockMovement{
		ID: "mov-carga", Type: entity.MovementTypeCargaInicial,
		VehicleID: &vid, ProductID: prodHuevos,
		Quantity: decimal.NewFromInt(100), UserID: encargado,
	})
	depotBefore := s.Products[prodHuevos].Stock

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodHuevos: decimal.NewFromInt(92)},
	})
	require.NoError(t, err)

	mermas := s.MovementsOfType(entity.MovementTypeMerma)
	require.Len(t, mermas, 1)
	assert.True(t, mermas[0].Quantity.Equal(decimal.NewFromInt(-8)))

	descargas := s.MovementsOfType(entity.MovementTypeDescarga)
	require.Len(t, descargas, 1)
	assert.True(t, descargas[0].Quantity.Equal(decimal.NewFromInt(92)),
		"la descarga registra lo contado en positivo")

	assert.True(t, s.Products[prodHuevos].Stock.Equal(depotBefore.Add(decimal.NewFromInt(92))),
		"lo contado vuelve al depósito")
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).IsZero())

	// replay del libro: +100 -8 -92 = 0, igual al saldo materializado
	sum, err := (&apptest.MovementRepo{S: s}).SumByVehicleProduct(vehA, prodHuevos)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestFinishTrip_RendicionConSobrante(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 100)

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodHuevos: decimal.NewFromInt(105)},
	})
	require.NoError(t, err)

	ajustes := s.MovementsOfType(entity.MovementTypeAjuste)
	require.Len(t, ajustes, 1)
	assert.True(t, ajustes[0].Quantity.Equal(decimal.NewFromInt(5)))

	descargas := s.MovementsOfType(entity.MovementTypeDescarga)
	require.Len(t, descargas, 1)
	assert.True(t, descargas[0].Quantity.Equal(decimal.NewFromInt(105)))
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).IsZero())
}

// Producto con fila en el vehículo pero no contado: se rinde como desaparecido.
func TestFinishTrip_ProductoNoContadoEsFaltanteTotal(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 30)
	loadStock(s, vehA, prodPollo, 15)

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodHuevos: decimal.NewFromInt(30)},
	})
	require.NoError(t, err)

	mermas := s.MovementsOfType(entity.MovementTypeMerma)
	require.Len(t, mermas, 1)
	assert.Equal(t, prodPollo, mermas[0].ProductID)
	assert.True(t, mermas[0].Quantity.Equal(decimal.NewFromInt(-15)))
	assert.True(t, s.VehicleStockQty(vehA, prodPollo).IsZero())
}

// Producto contado que el vehículo nunca tuvo registrado: sobrante suelto,
// ajuste más suma directa al depósito.
func TestFinishTrip_SobranteSinRegistroEnVehiculo(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	depotBefore := s.Products[prodPollo].Stock

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodPollo: decimal.NewFromInt(7)},
	})
	require.NoError(t, err)

	ajustes := s.MovementsOfType(entity.MovementTypeAjuste)
	require.Len(t, ajustes, 1)
	assert.True(t, ajustes[0].Quantity.Equal(decimal.NewFromInt(7)))
	assert.True(t, s.Products[prodPollo].Stock.Equal(depotBefore.Add(decimal.NewFromInt(7))))
}

// Un conteo negativo aborta toda la rendición: el viaje sigue EN_CURSO y el
// stock del vehículo queda intacto.
func TestFinishTrip_ConteoNegativoAbortaTodo(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 50)

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{prodHuevos: decimal.NewFromInt(-1)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.TripStatusEnCurso, s.Trips[trip.ID].Status)
	assert.True(t, s.VehicleStockQty(vehA, prodHuevos).Equal(decimal.NewFromInt(50)))
	assert.Empty(t, s.Movements)
}

// Conteo vacío pero no nil: rendición con todo en cero, cada producto del
// vehículo se rinde como faltante.
func TestFinishTrip_ConteoVacioRindeTodoEnCero(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)
	loadStock(s, vehA, prodHuevos, 20)

	_, err := uc.FinishTrip(context.Background(), trips.FinishInput{
		TripID:  trip.ID,
		UserID:  encargado,
		Counted: map[string]decimal.Decimal{},
	})
	require.NoError(t, err)

	mermas := s.MovementsOfType(entity.MovementTypeMerma)
	require.Len(t, mermas, 1)
	assert.True(t, mermas[0].Quantity.Equal(decimal.NewFromInt(-20)))
	assert.Empty(t, s.MovementsOfType(entity.MovementTypeDescarga),
		"con físico cero no hay nada que descargar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas de viaje activo
// ──────────────────────────────────────────────────────────────────────────────

func TestGetActiveTripForUser_ComoChoferYComoAcompanante(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	companion := acompMaria
	trip, err := uc.StartTrip(context.Background(), trips.StartInput{
		VehicleID:   vehA,
		DriverID:    choferJuan,
		CompanionID: &companion,
	})
	require.NoError(t, err)

	got, err := uc.GetActiveTripForUser(context.Background(), choferJuan)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, trip.ID, got.ID)

	got, err = uc.GetActiveTripForUser(context.Background(), acompMaria)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, trip.ID, got.ID)

	got, err = uc.GetActiveTripForUser(context.Background(), choferPedro)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Drift entre las dos representaciones: viaje EN_CURSO con el vehículo ya
// liberado. La lectura lo auto-finaliza y devuelve "sin viaje".
func TestGetActiveTripForUser_AutoReparaDrift(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)

	v := s.Vehicles[vehA]
	v.EnRuta = false // cierre que no llegó a impactar en el viaje
	s.Vehicles[vehA] = v

	got, err := uc.GetActiveTripForUser(context.Background(), choferJuan)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, entity.TripStatusFinalizado, s.Trips[trip.ID].Status)
	assert.Contains(t, s.Trips[trip.ID].Notes, "Cierre automático")
}

func TestGetActiveTripForVehicle(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	trip := startTrip(t, uc, vehA, choferJuan)

	got, err := uc.GetActiveTripForVehicle(vehA)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, trip.ID, got.ID)

	got, err = uc.GetActiveTripForVehicle(vehB)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListActiveTrips(t *testing.T) {
	s := newStore()
	uc := newUC(s)
	startTrip(t, uc, vehA, choferJuan)
	startTrip(t, uc, vehB, choferPedro)

	active, err := uc.ListActiveTrips()
	require.NoError(t, err)
	assert.Len(t, active, 2)
}
