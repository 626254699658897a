package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceState estados del ciclo de vida de una factura.
type InvoiceState string

const (
	InvoiceStateDraft    InvoiceState = "draft"    // Sin número; se recalcula con cada registro de trabajo
	InvoiceStatePrepared InvoiceState = "prepared" // Número asignado, todavía cancelable
	InvoiceStateIssued   InvoiceState = "issued"   // Emitida; bloqueada para siempre
)

// Active indica si el estado ocupa un número en su periodo (prepared o issued).
func (s InvoiceState) Active() bool {
	return s == InvoiceStatePrepared || s == InvoiceStateIssued
}

// Invoice representa la factura de un trabajo (exactamente una por Job).
// Los campos Subtotal/Total/PeriodFrom/PeriodTo son una proyección cacheada de
// los registros de trabajo, reescrita por el agregador.
type Invoice struct {
	ID        string
	JobID     string
	State     InvoiceState
	IssueDate *time.Time
	DueDays   int // 0 = sin fijar

	// Identidad de numeración: (NumberYear, NumberMonth, NumberSeq) + texto renderizado.
	NumberYear  int
	NumberMonth int
	NumberSeq   int
	NumberText  string

	Subtotal   decimal.Decimal
	Total      decimal.Decimal
	PeriodFrom *time.Time
	PeriodTo   *time.Time

	PreparedAt *time.Time
	// Marcadores de bloqueo: cualquiera no nulo congela número y cancelación.
	ExportedAt *time.Time
	SentAt     *time.Time
	IssuedAt   *time.Time

	CancelledAt  *time.Time
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDraftInvoice construye la factura en borrador que acompaña a un Job nuevo.
func NewDraftInvoice(id, jobID string, now time.Time) *Invoice {
	return &Invoice{
		ID:        id,
		JobID:     jobID,
		State:     InvoiceStateDraft,
		Subtotal:  decimal.Zero,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsLocked es verdadero si la factura ya fue exportada, enviada o emitida.
func (i *Invoice) IsLocked() bool {
	return i.ExportedAt != nil || i.SentAt != nil || i.IssuedAt != nil
}

// Scope devuelve el periodo de numeración; ok=false si la factura no tiene número.
func (i *Invoice) Scope() (Scope, bool) {
	if i.NumberSeq == 0 {
		return Scope{}, false
	}
	return Scope{Year: i.NumberYear, Month: i.NumberMonth}, true
}

// DueDate fecha de vencimiento = fecha de emisión + días de vencimiento.
func (i *Invoice) DueDate() *time.Time {
	if i.IssueDate == nil {
		return nil
	}
	d := i.IssueDate.AddDate(0, 0, i.DueDays)
	return &d
}

// ClearNumber elimina la identidad de numeración y la fecha de emisión (cancelación).
func (i *Invoice) ClearNumber() {
	i.NumberYear = 0
	i.NumberMonth = 0
	i.NumberSeq = 0
	i.NumberText = ""
	i.IssueDate = nil
}

// InvoiceTotals resultado del agregador de registros de trabajo.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	PeriodFrom *time.Time
	PeriodTo   *time.Time
}
