package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// UpdateSettingsRequest body para PUT /api/settings (campos opcionales).
type UpdateSettingsRequest struct {
	Language              *string          `json:"language"`
	CompanyName           *string          `json:"company_name"`
	Phone                 *string          `json:"phone"`
	Email                 *string          `json:"email"`
	Currency              *string          `json:"currency"`
	DefaultHourRate       *decimal.Decimal `json:"default_hour_rate"`
	InvoiceDueDaysDefault *int             `json:"invoice_due_days_default"`
	InvoiceNumberFormat   *string          `json:"invoice_number_format"`
	InvoiceAllowRedating  *bool            `json:"invoice_allow_redating"`
}

// SettingsResponse configuración global.
type SettingsResponse struct {
	Language              string          `json:"language"`
	CompanyName           string          `json:"company_name"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email"`
	Currency              string          `json:"currency"`
	DefaultHourRate       decimal.Decimal `json:"default_hour_rate"`
	InvoiceDueDaysDefault int             `json:"invoice_due_days_default"`
	InvoiceNumberFormat   string          `json:"invoice_number_format"`
	InvoiceAllowRedating  bool            `json:"invoice_allow_redating"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// NewSettingsResponse mapea la entidad a la respuesta.
func NewSettingsResponse(s *entity.Settings) SettingsResponse {
	return SettingsResponse{
		Language:              s.Language,
		CompanyName:           s.CompanyName,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Currency:              s.Currency,
		DefaultHourRate:       s.DefaultHourRate,
		InvoiceDueDaysDefault: s.InvoiceDueDaysDefault,
		InvoiceNumberFormat:   s.InvoiceNumberFormat,
		InvoiceAllowRedating:  s.InvoiceAllowRedating,
		UpdatedAt:             s.UpdatedAt,
	}
}
