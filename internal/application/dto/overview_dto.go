package dto

import "github.com/shopspring/decimal"

// OverviewResponse respuesta de GET /api/overview.
type OverviewResponse struct {
	// Suma de totales de facturas cuyos trabajos esperan pago.
	UnpaidTotal decimal.Decimal `json:"unpaid_total"`
	Currency    string          `json:"currency"`

	// Número de trabajos por estado (open, ready_to_invoice, awaiting_payment, paid).
	JobsByStatus map[string]int `json:"jobs_by_status"`

	DateLabel  string `json:"date_label"`  // ej: "2025-01-20"
	MonthLabel string `json:"month_label"` // ej: "leden 2025"
}
