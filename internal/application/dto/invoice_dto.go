package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// PrepareInvoiceRequest body para POST /api/jobs/:id/invoice/prepare.
// IssueDate vacío = hoy.
type PrepareInvoiceRequest struct {
	IssueDate string `json:"issue_date"`
}

// CancelInvoiceRequest body para POST /api/jobs/:id/invoice/cancel.
type CancelInvoiceRequest struct {
	Reason string `json:"reason"`
}

// InvoiceResponse factura de un trabajo.
type InvoiceResponse struct {
	ID           string          `json:"id"`
	JobID        string          `json:"job_id"`
	State        string          `json:"state"`
	Locked       bool            `json:"locked"`
	NumberText   string          `json:"number_text,omitempty"`
	NumberYear   int             `json:"number_year,omitempty"`
	NumberMonth  int             `json:"number_month,omitempty"`
	NumberSeq    int             `json:"number_seq,omitempty"`
	IssueDate    *string         `json:"issue_date"`
	DueDays      int             `json:"due_days"`
	DueDate      *string         `json:"due_date"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	PeriodFrom   *string         `json:"period_from"`
	PeriodTo     *string         `json:"period_to"`
	PreparedAt   *time.Time      `json:"prepared_at"`
	ExportedAt   *time.Time      `json:"exported_at"`
	SentAt       *time.Time      `json:"sent_at"`
	IssuedAt     *time.Time      `json:"issued_at"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// NewInvoiceResponse mapea la entidad a la respuesta.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:           inv.ID,
		JobID:        inv.JobID,
		State:        string(inv.State),
		Locked:       inv.IsLocked(),
		NumberText:   inv.NumberText,
		NumberYear:   inv.NumberYear,
		NumberMonth:  inv.NumberMonth,
		NumberSeq:    inv.NumberSeq,
		IssueDate:    formatDate(inv.IssueDate),
		DueDays:      inv.DueDays,
		DueDate:      formatDate(inv.DueDate()),
		Subtotal:     inv.Subtotal,
		Total:        inv.Total,
		PeriodFrom:   formatDate(inv.PeriodFrom),
		PeriodTo:     formatDate(inv.PeriodTo),
		PreparedAt:   inv.PreparedAt,
		ExportedAt:   inv.ExportedAt,
		SentAt:       inv.SentAt,
		IssuedAt:     inv.IssuedAt,
		CancelledAt:  inv.CancelledAt,
		CancelReason: inv.CancelReason,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
