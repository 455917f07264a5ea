// Package pdf implementa la representación gráfica de una cotización.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + NIT  │  N° Cotización + Fechas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: Dirección / Tel / Email                            │
//	│  CLIENTE: Nombre + NIT/CC + contacto                        │
//	│  EVENTO (solo catering): fecha, invitados, lugar, menú       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Base / Impuesto / TOTAL     │
//	│  NOTAS + vigencia                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	appquotation "github.com/jhoicas/Cotizaciones-api/internal/application/quotation"
	"github.com/jhoicas/Cotizaciones-api/internal/domain/entity"
	domquotation "github.com/jhoicas/Cotizaciones-api/internal/domain/quotation"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorCatering = &props.Color{Red: 150, Green: 60, Blue: 20}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appquotation.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa quotation.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateQuotationPDF genera el PDF y devuelve sus bytes. Los montos se muestran redondeados a 2 decimales.
func (g *MarotoPDFGenerator) GenerateQuotationPDF(ctx context.Context, doc *appquotation.Document) ([]byte, error) {
	if doc == nil || doc.Quotation == nil || doc.Company == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := doc.Quotation
	accent := colorPrimary
	if q.Kind == entity.QuotationKindCatering {
		accent = colorCatering
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cotización "+q.Number, true).
		WithAuthor(doc.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(q, doc.Company, accent))
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.5}))
	m.AddRows(companyRow(doc.Company, accent))
	m.AddRows(clientRow(doc.Client, accent))
	if q.Kind == entity.QuotationKindCatering && q.Event != nil {
		m.AddRows(eventRows(q, accent)...)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(accent))
	m.AddRows(tableDetailRows(q.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: accent, Thickness: 0.3}))
	m.AddRows(totalsRow(q, accent))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(q)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(q *entity.Quotation, company *entity.Company, accent *props.Color) core.Row {
	title := "COTIZACIÓN"
	if q.Kind == entity.QuotationKindCatering {
		title = "COTIZACIÓN DE CATERING"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: accent, Top: 1,
			}),
			text.New("NIT: "+company.TaxID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: accent, Top: 1,
			}),
			text.New(q.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(fmt.Sprintf("Fecha: %s   Válida hasta: %s",
				q.IssueDate.Format("02/01/2006"), q.ExpiresAt.Format("02/01/2006"),
			), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func companyRow(company *entity.Company, accent *props.Color) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{Style: fontstyle.Bold, Size: 8, Color: accent, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: el cliente puede haber sido eliminado; se imprime un marcador.
func clientRow(client *entity.Client, accent *props.Color) core.Row {
	name, detail := "Cliente no disponible", ""
	if client != nil {
		name = client.Name
		detail = fmt.Sprintf("NIT/CC: %s   |   Contacto: %s   |   Email: %s   |   Tel: %s",
			nonEmpty(client.TaxID, "-"),
			nonEmpty(client.ContactName, "-"),
			nonEmpty(client.Email, "-"),
			nonEmpty(client.Phone, "-"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: accent, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func eventRows(q *entity.Quotation, accent *props.Color) []core.Row {
	ev := q.Event
	rows := []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("EVENTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: accent, Top: 1}),
				text.New(fmt.Sprintf("Fecha: %s   |   Invitados: %d   |   Lugar: %s",
					ev.EventDate.Format("02/01/2006"), ev.GuestCount, nonEmpty(ev.Venue, "-"),
				), props.Text{Size: 9, Top: 6}),
			),
		),
	}
	if strings.TrimSpace(ev.MenuNotes) != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Menú: "+ev.MenuNotes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
	return rows
}

func tableHeaderRow(accent *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: accent, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func tableDetailRows(items []entity.QuotationItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(formatMoney(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	if len(result) == 0 {
		result = append(result, row.New(7).Add(col.New(12).Add(
			text.New("Sin ítems", props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
		)))
	}
	return result
}

func totalsRow(q *entity.Quotation, accent *props.Color) core.Row {
	t := q.Totals
	labels := []string{"Subtotal:", discountLabel(q.Discount), "Base gravable:", "Impuesto (" + q.Tax.RatePercent.String() + "%):"}
	values := []decimal.Decimal{t.Subtotal, t.DiscountAmount.Neg(), t.TaxableBase, t.TaxAmount}
	if q.Kind == entity.QuotationKindCatering && q.Event != nil && q.Event.GuestCount > 0 {
		labels = append(labels, "Precio por invitado:")
		values = append(values, appquotation.PricePerGuest(q))
	}

	left := col.New(3)
	right := col.New(3)
	top := 0.0
	for i := range labels {
		left.Add(text.New(labels[i], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		right.Add(text.New(formatMoney(values[i]), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
		top += 5
	}
	left.Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: accent, Right: 2, Top: top}))
	right.Add(text.New(formatMoney(t.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: accent, Right: 1, Top: top}))

	return row.New(top+8).Add(col.New(3), left, right, col.New(3))
}

func footerRows(q *entity.Quotation) []core.Row {
	var rows []core.Row
	if strings.TrimSpace(q.Notes) != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Notas: "+q.Notes, props.Text{Size: 8, Top: 1}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Esta cotización no constituye factura. Precios válidos hasta "+q.ExpiresAt.Format("02/01/2006")+".",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func discountLabel(d entity.Discount) string {
	if d.Kind == entity.DiscountPercentage {
		return "Descuento (" + d.Value.String() + "%):"
	}
	return "Descuento:"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a 2 decimales y usa puntos de miles y coma decimal.
// Ej: 1234567.891 → "$1.234.567,89"
func formatMoney(v decimal.Decimal) string {
	s := domquotation.Round(v).StringFixed(domquotation.PresentationPlaces)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "$" + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
