package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeCargaInicial = "CARGA_INICIAL"     // carga de camioneta desde depósito
	MovementTypeRecarga      = "RECARGA"           // carga adicional durante el día
	MovementTypeVenta        = "VENTA"             // salida por venta a cliente
	MovementTypeDevolucion   = "DEVOLUCION_CLIENTE" // devolución (incluye anulación de venta)
	MovementTypeDescarga     = "DESCARGA_FINAL"    // remanente que vuelve al depósito
	MovementTypeMerma        = "MERMA"             // roturas o pérdidas
	MovementTypeAjuste       = "AJUSTE_INVENTARIO" // correcciones y sobrantes
	MovementTypeCompra       = "COMPRA"            // ingreso por compra a proveedor
)

// StockMovement es una entrada inmutable del libro de stock: nunca se edita
// ni se borra después de creada. VehicleID nulo significa depósito central.
type StockMovement struct {
	ID        string
	Type      string
	VehicleID *string
	ProductID string
	Quantity  decimal.Decimal // con signo: positivo entra, negativo sale
	UserID    string
	Notes     string
	Date      time.Time
	CreatedAt time.Time
}
