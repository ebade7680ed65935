package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/application/apptest"
	"github.com/avidelsur/distribuidora-api/internal/application/catalog"
	"github.com/avidelsur/distribuidora-api/internal/domain"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

func newUC(s *apptest.Store) *catalog.UseCase {
	return catalog.NewUseCase(
		&apptest.ProductRepo{S: s},
		&apptest.ClientRepo{S: s},
		&apptest.VehicleRepo{S: s},
		&apptest.VehicleStockRepo{S: s},
		&apptest.TripRepo{S: s},
		&apptest.NotificationRepo{S: s},
	)
}

func TestCreateProduct_AsignaID(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)

	p := &entity.Product{Name: "Huevos color", UnitMeasure: "maple"}
	require.NoError(t, uc.CreateProduct(p))
	assert.NotEmpty(t, p.ID)
	assert.Contains(t, s.Products, p.ID)
}

func TestCreateProduct_SinNombre(t *testing.T) {
	uc := newUC(apptest.NewStore())
	assert.ErrorIs(t, uc.CreateProduct(&entity.Product{}), domain.ErrInvalidInput)
}

// El update comercial no puede pisar los saldos que mantiene el libro.
func TestUpdateProduct_PreservaStockYCosto(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	s.Products["p1"] = entity.Product{
		ID: "p1", Name: "Huevos blancos",
		Stock:    decimal.NewFromInt(80),
		LastCost: decimal.NewFromFloat(1.75),
	}

	err := uc.UpdateProduct(&entity.Product{
		ID:             "p1",
		Name:           "Huevos blancos AAA",
		SuggestedPrice: decimal.NewFromInt(6),
		Stock:          decimal.NewFromInt(9999), // intento de pisar el saldo
	})
	require.NoError(t, err)

	stored := s.Products["p1"]
	assert.Equal(t, "Huevos blancos AAA", stored.Name)
	assert.True(t, stored.Stock.Equal(decimal.NewFromInt(80)),
		"el stock solo lo mueve el libro de movimientos")
	assert.True(t, stored.LastCost.Equal(decimal.NewFromFloat(1.75)))
}

func TestGetProduct_Inexistente(t *testing.T) {
	uc := newUC(apptest.NewStore())
	_, err := uc.GetProduct("p-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateVehicle_NaceFueraDeRuta(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)

	driver := "user-x"
	v := &entity.Vehicle{Plate: "AB123CD", EnRuta: true, DriverID: &driver}
	require.NoError(t, uc.CreateVehicle(v))

	stored := s.Vehicles[v.ID]
	assert.False(t, stored.EnRuta, "una camioneta nueva nunca arranca en ruta")
	assert.Nil(t, stored.DriverID)
}

func TestDeleteVehicle_ConViajeActivo(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	s.Vehicles["v1"] = entity.Vehicle{ID: "v1", Plate: "AB123CD"}
	s.Trips["t1"] = entity.Trip{ID: "t1", VehicleID: "v1", DriverID: "u1", Status: entity.TripStatusEnCurso}

	err := uc.DeleteVehicle("v1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, s.Vehicles, "v1")
}

func TestDeleteVehicle_ConStockCargado(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	s.Vehicles["v1"] = entity.Vehicle{ID: "v1", Plate: "AB123CD"}
	s.VehicleStocks["v1|p1"] = entity.VehicleStock{
		VehicleID: "v1", ProductID: "p1", Quantity: decimal.NewFromInt(5),
	}

	err := uc.DeleteVehicle("v1")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// Una fila de stock en cero (vehículo ya rendido) no bloquea la baja.
func TestDeleteVehicle_StockEnCeroNoBloquea(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	s.Vehicles["v1"] = entity.Vehicle{ID: "v1", Plate: "AB123CD"}
	s.VehicleStocks["v1|p1"] = entity.VehicleStock{
		VehicleID: "v1", ProductID: "p1", Quantity: decimal.Zero,
	}
	s.Trips["t1"] = entity.Trip{ID: "t1", VehicleID: "v1", DriverID: "u1", Status: entity.TripStatusFinalizado}

	require.NoError(t, uc.DeleteVehicle("v1"))
	assert.NotContains(t, s.Vehicles, "v1")
}

func TestSearchClients_PorNombre(t *testing.T) {
	s := apptest.NewStore()
	uc := newUC(s)
	s.Clients["c1"] = entity.Client{ID: "c1", Name: "Almacén Rosa"}
	s.Clients["c2"] = entity.Client{ID: "c2", Name: "Granja El Hornero"}

	list, err := uc.SearchClients("rosa", 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c1", list[0].ID)
}
