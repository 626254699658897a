package billing

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// SettingsProvider da acceso de solo lectura a la configuración que necesita la facturación.
type SettingsProvider interface {
	// GetDefaultDueDays días de vencimiento que se copian en la factura al prepararla.
	GetDefaultDueDays(ctx context.Context) (int, error)
	// NumberFormat formato con el que se renderiza el número de factura.
	NumberFormat(ctx context.Context) (string, error)
}

// InvoiceDocument datos completos para la representación de una factura.
type InvoiceDocument struct {
	Title    string // "FAKTURA" cuando está emitida; vista previa en otro caso
	Settings *entity.Settings
	Job      *entity.Job
	Invoice  *entity.Invoice
	Entries  []*entity.WorkEntry // orden cronológico
	DueDate  *time.Time
}

// InvoicePDFGenerator puerto para generar el PDF de una factura.
// La implementación vive en infrastructure/pdf (Maroto v2).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceHTMLRenderer puerto para la vista previa imprimible (HTML).
type InvoiceHTMLRenderer interface {
	RenderInvoiceHTML(w io.Writer, doc *InvoiceDocument) error
}
