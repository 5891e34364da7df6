// Package pdf genera el comprobante de compra en PDF.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────┐
//	│  HEADER: Nombre app  │  N° compra + fecha │
//	│  ───────────────────────────────────────  │
//	│  TABLA: Producto | Cant | P.Unit | Total  │
//	│  ───────────────────────────────────────  │
//	│  TOTAL                                    │
//	│  FOOTER: leyenda                          │
//	└───────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/inventory-service/internal/application/dto"
	"github.com/jhoicas/inventory-service/internal/application/inventory"
)

var _ inventory.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReceiptGenerator implementa inventory.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	issuer  string
	printer *message.Printer
}

// NewReceiptGenerator construye el generador. issuer aparece en el encabezado del comprobante.
func NewReceiptGenerator(issuer string) *ReceiptGenerator {
	return &ReceiptGenerator{
		issuer:  nonEmpty(issuer, "inventory-service"),
		printer: message.NewPrinter(language.Spanish),
	}
}

// GeneratePurchaseReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GeneratePurchaseReceipt(_ context.Context, purchase *dto.PurchaseResponse) ([]byte, error) {
	if purchase == nil {
		return nil, fmt.Errorf("pdf: compra nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Comprobante de compra %d", purchase.ID), true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(purchase))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(g.detailRow(purchase))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalRow(purchase))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(purchase))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(p *dto.PurchaseResponse) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.issuer, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COMPROBANTE DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", p.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+p.PurchaseDate.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Producto", 5, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *ReceiptGenerator) detailRow(p *dto.PurchaseResponse) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(productLabel(p), props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(g.printer.Sprintf("%d", p.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(g.Money(p.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(3).Add(text.New(g.Money(p.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}

func (g *ReceiptGenerator) totalRow(p *dto.PurchaseResponse) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New(g.Money(p.TotalPrice), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func footerRow(p *dto.PurchaseResponse) core.Row {
	legend := "Precio unitario tomado del catálogo al momento de la compra."
	if !p.ProductAvailable {
		legend += " El producto ya no está disponible en el catálogo."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// Money formatea un monto con separadores del locale: 12345.5 → "$12.345,50".
func (g *ReceiptGenerator) Money(amount decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}

func productLabel(p *dto.PurchaseResponse) string {
	return fmt.Sprintf("%s (#%d)", nonEmpty(p.ProductName, "—"), p.ProductID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
