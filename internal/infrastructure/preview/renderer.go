// Package preview renderiza la vista previa imprimible (HTML) de una factura.
package preview

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

//go:embed invoice.html.tmpl
var invoiceTemplate string

var _ billing.InvoiceHTMLRenderer = (*Renderer)(nil)

// Renderer implementa billing.InvoiceHTMLRenderer con html/template (escapa el texto del usuario).
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer compila la plantilla embebida.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return nil, fmt.Errorf("preview: parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type page struct {
	Lang       string
	Title      string
	Number     string
	Company    string
	Phone      string
	Email      string
	Currency   string
	JobTitle   string
	JobNote    string
	IssueDate  string
	DueDate    string
	PeriodFrom string
	PeriodTo   string
	Rows       []pageRow
	Total      string
}

type pageRow struct {
	Date     string
	From     string
	To       string
	Break    int
	Activity string
	Hours    string
	Rate     string
	Price    string
}

// RenderInvoiceHTML escribe el documento completo en w.
func (r *Renderer) RenderInvoiceHTML(w io.Writer, doc *billing.InvoiceDocument) error {
	if doc == nil || doc.Invoice == nil || doc.Job == nil {
		return fmt.Errorf("preview: documento incompleto")
	}
	settings := doc.Settings
	if settings == nil {
		settings = &entity.Settings{}
	}
	inv := doc.Invoice

	p := page{
		Lang:       dash(settings.Language),
		Title:      doc.Title,
		Number:     dash(inv.NumberText),
		Company:    settings.CompanyName,
		Phone:      dash(settings.Phone),
		Email:      dash(settings.Email),
		Currency:   settings.Currency,
		JobTitle:   doc.Job.Title,
		JobNote:    doc.Job.Note,
		IssueDate:  billing.FormatDate(inv.IssueDate),
		DueDate:    billing.FormatDate(doc.DueDate),
		PeriodFrom: billing.FormatDate(inv.PeriodFrom),
		PeriodTo:   billing.FormatDate(inv.PeriodTo),
		Total:      billing.FormatMoney(inv.Total),
	}
	for _, e := range doc.Entries {
		p.Rows = append(p.Rows, pageRow{
			Date:     billing.FormatDate(&e.WorkDate),
			From:     e.TimeFrom,
			To:       e.TimeTo,
			Break:    e.BreakMinutes,
			Activity: e.Activity,
			Hours:    billing.FormatHours(e.MinutesTotal),
			Rate:     billing.FormatMoney(e.HourRate),
			Price:    billing.FormatMoney(e.PriceTotal),
		})
	}
	if err := r.tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("preview: render: %w", err)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
