package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobStatus estado grueso de un trabajo, derivado de su factura.
type JobStatus string

const (
	JobStatusOpen            JobStatus = "open"
	JobStatusReadyToInvoice  JobStatus = "ready_to_invoice"
	JobStatusAwaitingPayment JobStatus = "awaiting_payment"
	JobStatusPaid            JobStatus = "paid"
)

// Valid indica si s es uno de los estados conocidos.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusOpen, JobStatusReadyToInvoice, JobStatusAwaitingPayment, JobStatusPaid:
		return true
	}
	return false
}

// Job representa un trabajo del que cuelgan registros y una factura.
type Job struct {
	ID              string
	Title           string
	Note            string
	HourRateDefault decimal.NullDecimal // Tarifa por hora propia del trabajo (opcional)
	Status          JobStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
