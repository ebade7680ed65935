package silo

import "github.com/shopspring/decimal"

// WeightedAvgCost recalcula el costo promedio ponderado de un silo tras una carga.
// NuevoCosto = (CantActual*CostoActual + CostoTotalCarga) / (CantActual + CantCarga)
// Si la cantidad resultante es <= 0 se devuelve el costo actual sin cambios.
func WeightedAvgCost(currentKg, currentCost, loadKg, loadTotalCost decimal.Decimal) decimal.Decimal {
	newTotalKg := currentKg.Add(loadKg)
	if newTotalKg.LessThanOrEqual(decimal.Zero) {
		return currentCost
	}
	newTotalValue := currentKg.Mul(currentCost).Add(loadTotalCost)
	return newTotalValue.Div(newTotalKg)
}
