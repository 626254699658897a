package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Backup documento de copia de seguridad completo (JSON).
type Backup struct {
	App           string     `json:"app"`
	SchemaVersion int        `json:"schemaVersion"`
	ExportedAt    time.Time  `json:"exportedAt"`
	Data          BackupData `json:"data"`
}

// BackupData colecciones exportadas tal cual.
type BackupData struct {
	Settings *BackupSettings `json:"settings"`
	Jobs     []BackupJob     `json:"jobs"`
	Entries  []BackupEntry   `json:"entries"`
	Invoices []BackupInvoice `json:"invoices"`
}

type BackupSettings struct {
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

type BackupJob struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Note            string           `json:"note"`
	HourRateDefault *decimal.Decimal `json:"hour_rate_default"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type BackupEntry struct {
	ID           string          `json:"id"`
	JobID        string          `json:"job_id"`
	WorkDate     string          `json:"work_date"` // YYYY-MM-DD
	TimeFrom     string          `json:"time_from"`
	TimeTo       string          `json:"time_to"`
	BreakMinutes int             `json:"break_minutes"`
	HourRate     decimal.Decimal `json:"hour_rate"`
	Activity     string          `json:"activity"`
	MinutesTotal int             `json:"minutes_total"`
	PriceTotal   decimal.Decimal `json:"price_total"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type BackupInvoice struct {
	ID           string          `json:"id"`
	JobID        string          `json:"job_id"`
	State        string          `json:"state"`
	IssueDate    *string         `json:"issue_date"`
	DueDays      int             `json:"due_days"`
	NumberYear   int             `json:"number_year"`
	NumberMonth  int             `json:"number_month"`
	NumberSeq    int             `json:"number_seq"`
	NumberText   string          `json:"number_text"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	PeriodFrom   *string         `json:"period_from"`
	PeriodTo     *string         `json:"period_to"`
	PreparedAt   *time.Time      `json:"prepared_at"`
	ExportedAt   *time.Time      `json:"exported_at"`
	SentAt       *time.Time      `json:"sent_at"`
	IssuedAt     *time.Time      `json:"issued_at"`
	CancelledAt  *time.Time      `json:"cancelled_at"`
	CancelReason string          `json:"cancel_reason"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RestoreResponse resumen de lo restaurado.
type RestoreResponse struct {
	Jobs     int `json:"jobs"`
	Entries  int `json:"entries"`
	Invoices int `json:"invoices"`
}
