// Package pdf genera el documento PDF de la factura de un trabajo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + contacto  │  Título + Número             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TRABAJO: título + nota  │  Emisión / Vencimiento / Periodo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Horario | Actividad | Horas | Tarifa | Total│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
// TODO: registrar una fuente TTF con diacríticos checos; helvetica usa cp1252.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(ctx context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil || doc.Invoice == nil || doc.Job == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	settings := doc.Settings
	if settings == nil {
		settings = &entity.Settings{}
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title+" "+numberOrDash(doc.Invoice), true).
		WithAuthor(settings.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, settings))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(jobRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableEntryRows(doc.Entries)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(doc.Invoice, settings.Currency))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa y contacto (izq), título y número (der).
func headerRow(doc *billing.InvoiceDocument, s *entity.Settings) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(s.CompanyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("tel: %s   |   email: %s", nonEmpty(s.Phone, "—"), nonEmpty(s.Email, "—")), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Číslo: "+numberOrDash(doc.Invoice), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

// jobRow: trabajo (izq) y fechas (der).
func jobRow(doc *billing.InvoiceDocument) core.Row {
	inv := doc.Invoice
	left := col.New(7).Add(
		text.New("Zakázka", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(doc.Job.Title, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
	)
	if doc.Job.Note != "" {
		left.Add(text.New(doc.Job.Note, props.Text{Size: 8, Top: 12, Color: colorGray}))
	}
	dateText := func(label, value string, top float64) core.Component {
		return text.New(label+": "+value, props.Text{Size: 8, Align: align.Right, Top: top})
	}
	return row.New(20).Add(
		left,
		col.New(5).Add(
			dateText("Vystaveno", billing.FormatDate(inv.IssueDate), 1),
			dateText("Splatnost", billing.FormatDate(doc.DueDate), 6),
			dateText("Období", billing.FormatDate(inv.PeriodFrom)+" – "+billing.FormatDate(inv.PeriodTo), 11),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de registros.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Datum", 2, align.Left),
		h("Čas", 2, align.Left),
		h("Činnost", 4, align.Left),
		h("Hod", 1, align.Right),
		h("Sazba", 1, align.Right),
		h("Celkem", 2, align.Right),
	)
}

// tableEntryRows: una fila por registro de trabajo (orden cronológico).
func tableEntryRows(entries []*entity.WorkEntry) []core.Row {
	if len(entries) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Bez záznamů", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		slot := fmt.Sprintf("%s–%s", e.TimeFrom, e.TimeTo)
		if e.BreakMinutes > 0 {
			slot += fmt.Sprintf(" (-%dm)", e.BreakMinutes)
		}
		result = append(result, row.New(7).Add(
			cell(billing.FormatDate(&e.WorkDate), 2, align.Left),
			cell(slot, 2, align.Left),
			cell(e.Activity, 4, align.Left),
			cell(billing.FormatHours(e.MinutesTotal), 1, align.Right),
			cell(billing.FormatMoney(e.HourRate), 1, align.Right),
			cell(billing.FormatMoney(e.PriceTotal), 2, align.Right),
		))
	}
	return result
}

// totalRow: total alineado a la derecha, con la moneda como etiqueta opaca.
func totalRow(inv *entity.Invoice, currency string) core.Row {
	amount := billing.FormatMoney(inv.Total)
	if currency != "" {
		amount += " " + currency
	}
	return row.New(12).Add(
		col.New(6),
		col.New(3).Add(text.New("Celkem:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(3).Add(text.New(amount, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func numberOrDash(inv *entity.Invoice) string {
	return nonEmpty(inv.NumberText, "—")
}
