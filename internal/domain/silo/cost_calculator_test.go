package silo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avidelsur/distribuidora-api/internal/domain/silo"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// 200 kg a 10/kg (valor 2000) + carga de 100 kg por 1500 => 300 kg a 11.666...
func TestWeightedAvgCost_MezclaPonderada(t *testing.T) {
	got := silo.WeightedAvgCost(dec("200"), dec("10"), dec("100"), dec("1500"))

	want := dec("3500").Div(dec("300"))
	require.True(t, got.Equal(want), "esperado %s, obtenido %s", want, got)
	assert.Equal(t, "11.67", got.Round(2).String())
}

func TestWeightedAvgCost_SiloVacio(t *testing.T) {
	got := silo.WeightedAvgCost(decimal.Zero, decimal.Zero, dec("100"), dec("1200"))
	assert.True(t, got.Equal(dec("12")))
}

func TestWeightedAvgCost_CantidadResultanteCero(t *testing.T) {
	// Carga que no agrega kilos: el costo vigente no se toca.
	got := silo.WeightedAvgCost(decimal.Zero, dec("10"), decimal.Zero, decimal.Zero)
	assert.True(t, got.Equal(dec("10")))
}

func TestWeightedAvgCost_CargaSinCosto(t *testing.T) {
	// Producción interna entra a costo 0 y diluye el promedio.
	got := silo.WeightedAvgCost(dec("100"), dec("10"), dec("100"), decimal.Zero)
	assert.True(t, got.Equal(dec("5")))
}
