package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// CreateJobRequest body para POST /api/jobs.
type CreateJobRequest struct {
	Title           string           `json:"title"`
	Note            string           `json:"note"`
	HourRateDefault *decimal.Decimal `json:"hour_rate_default"`
}

// UpdateJobRequest body para PUT /api/jobs/:id (campos opcionales).
// ClearHourRate elimina la tarifa propia del trabajo.
type UpdateJobRequest struct {
	Title           *string          `json:"title"`
	Note            *string          `json:"note"`
	HourRateDefault *decimal.Decimal `json:"hour_rate_default"`
	ClearHourRate   bool             `json:"clear_hour_rate"`
}

// JobResponse salida de un trabajo.
type JobResponse struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Note            string           `json:"note"`
	HourRateDefault *decimal.Decimal `json:"hour_rate_default"`
	Status          string           `json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// JobListItem trabajo con el resumen de su factura.
type JobListItem struct {
	JobResponse
	InvoiceState  string          `json:"invoice_state"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// JobListResponse lista de trabajos (más recientes primero).
type JobListResponse struct {
	Items []JobListItem `json:"items"`
}

// JobDetailResponse trabajo con su factura y registros.
type JobDetailResponse struct {
	Job     JobResponse     `json:"job"`
	Invoice InvoiceResponse `json:"invoice"`
	Entries []EntryResponse `json:"entries"`
}

// EntryRequest body para POST /api/jobs/:id/entries.
// HourRate nil = tarifa del trabajo o, en su defecto, la de configuración.
type EntryRequest struct {
	WorkDate     string           `json:"work_date"`
	TimeFrom     string           `json:"time_from"`
	TimeTo       string           `json:"time_to"`
	BreakMinutes int              `json:"break_minutes"`
	HourRate     *decimal.Decimal `json:"hour_rate"`
	Activity     string           `json:"activity"`
}

// UpdateEntryRequest body para PUT /api/entries/:id (campos opcionales).
type UpdateEntryRequest struct {
	WorkDate     *string          `json:"work_date"`
	TimeFrom     *string          `json:"time_from"`
	TimeTo       *string          `json:"time_to"`
	BreakMinutes *int             `json:"break_minutes"`
	HourRate     *decimal.Decimal `json:"hour_rate"`
	Activity     *string          `json:"activity"`
}

// EntryResponse salida de un registro de trabajo.
type EntryResponse struct {
	ID           string          `json:"id"`
	JobID        string          `json:"job_id"`
	WorkDate     string          `json:"work_date"`
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

// NewJobResponse mapea la entidad a la respuesta.
func NewJobResponse(j *entity.Job) JobResponse {
	resp := JobResponse{
		ID:        j.ID,
		Title:     j.Title,
		Note:      j.Note,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.HourRateDefault.Valid {
		rate := j.HourRateDefault.Decimal
		resp.HourRateDefault = &rate
	}
	return resp
}

// NewEntryResponse mapea la entidad a la respuesta.
func NewEntryResponse(e *entity.WorkEntry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		JobID:        e.JobID,
		WorkDate:     e.WorkDate.Format(DateLayout),
		TimeFrom:     e.TimeFrom,
		TimeTo:       e.TimeTo,
		BreakMinutes: e.BreakMinutes,
		HourRate:     e.HourRate,
		Activity:     e.Activity,
		MinutesTotal: e.MinutesTotal,
		PriceTotal:   e.PriceTotal,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// NewEntryResponses mapea una lista de registros.
func NewEntryResponses(list []*entity.WorkEntry) []EntryResponse {
	out := make([]EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, NewEntryResponse(e))
	}
	return out
}
