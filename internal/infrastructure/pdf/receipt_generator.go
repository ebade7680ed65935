// Package pdf genera el comprobante interno de una compra a proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de compra │ N° + Fecha                 │
//	│  PROVEEDOR: nombre + notas                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Costo Unit | Subtotal             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/avidelsur/distribuidora-api/internal/application/ledger"
	"github.com/avidelsur/distribuidora-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ledger.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa ledger.ReceiptGenerator usando Maroto v2.
// Escribe el PDF en disco y devuelve su ruta.
type ReceiptGenerator struct {
	dir string
}

// NewReceiptGenerator construye el generador. dir es el directorio de salida.
func NewReceiptGenerator(dir string) *ReceiptGenerator {
	return &ReceiptGenerator{dir: dir}
}

// Generate arma el comprobante de la compra y lo escribe en disco.
func (g *ReceiptGenerator) Generate(purchase *entity.Purchase, products map[string]*entity.Product) (string, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de compra", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(purchase))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(purchase))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, d := range purchase.Details {
		m.AddRows(detailRow(d, products))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(purchase))

	doc, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("pdf: generar documento: %w", err)
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("pdf: crear directorio: %w", err)
	}
	path := filepath.Join(g.dir, fmt.Sprintf("compra-%s.pdf", purchase.ID))
	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		return "", fmt.Errorf("pdf: escribir comprobante: %w", err)
	}
	return path, nil
}

func headerRow(purchase *entity.Purchase) core.Row {
	return row.New(14).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("N° "+purchase.ID, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Fecha: "+purchase.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func supplierRow(purchase *entity.Purchase) core.Row {
	notes := purchase.Notes
	if notes == "" {
		notes = "—"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Proveedor: "+purchase.Supplier, props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 1,
			}),
			text.New("Notas: "+notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New("Cant.", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(6).Add(text.New("Producto", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("Costo Unit.", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("Subtotal", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func detailRow(d *entity.PurchaseDetail, products map[string]*entity.Product) core.Row {
	name := d.ProductID
	if p, ok := products[d.ProductID]; ok {
		name = p.Name
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(d.Quantity.String(), props.Text{Size: 8})),
		col.New(6).Add(text.New(name, props.Text{Size: 8})),
		col.New(2).Add(text.New(d.UnitCost.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New(d.Subtotal.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
	)
}

func totalRow(purchase *entity.Purchase) core.Row {
	return row.New(9).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New("$ "+purchase.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}
