// Package pdf genera la representación imprimible de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  N° Cotización + Fecha        │
//	│  CLIENTE: Nombre + NIF + contacto                            │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Subtotal         │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  FOOTER: validez + QR con número y total                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// QuotationPDFGenerator genera cotizaciones en PDF con Maroto v2.
type QuotationPDFGenerator struct {
	companyName string
}

// NewQuotationPDFGenerator construye el generador; companyName encabeza el documento.
func NewQuotationPDFGenerator(companyName string) *QuotationPDFGenerator {
	return &QuotationPDFGenerator{companyName: companyName}
}

// GenerateQuotationPDF genera el PDF y devuelve sus bytes. client puede ser nil (cliente borrado).
func (g *QuotationPDFGenerator) GenerateQuotationPDF(_ context.Context, q *entity.Quotation, client *entity.Client) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Number, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, g.companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(q, client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(q.Items)...)

	net, tax, total := q.Totals()
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(net, tax, total))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(q, total))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(q *entity.Quotation, companyName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(companyName, "AllInStock"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("COTIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(q.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+q.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(q *entity.Quotation, client *entity.Client) core.Row {
	name, details := q.ClientID, "-"
	if client != nil {
		name = client.Name
		details = fmt.Sprintf("NIF: %s   |   Email: %s   |   Tel: %s",
			nonEmpty(client.TaxID, "-"), nonEmpty(client.Email, "-"), nonEmpty(client.Phone, "-"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(details, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("IVA%", 1, align.Center),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.QuotationItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(FormatMoney(it.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalsRow(net, tax, total decimal.Decimal) core.Row {
	label := func(s string, size, top float64, color *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2, Top: top, Color: color})
	}
	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:", 9, 0, nil),
			label("Impuestos:", 9, 5, nil),
			label("TOTAL:", 10, 10, colorPrimary),
		),
		col.New(3).Add(
			text.New(FormatMoney(net), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(FormatMoney(tax), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(FormatMoney(total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 10, Color: colorPrimary}),
		),
		col.New(3),
	)
}

func footerRow(q *entity.Quotation, total decimal.Decimal) core.Row {
	validity := "Sin fecha de validez"
	if q.ValidUntil != nil {
		validity = "Válida hasta " + q.ValidUntil.Format("02/01/2006")
	}
	notes := validity
	if q.Notes != "" {
		notes += "\n" + q.Notes
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(q.Number+"|"+total.StringFixed(2), props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(
			text.New(notes, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con separador de miles "." y dos decimales: 1234.5 -> "1.234,50".
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}
