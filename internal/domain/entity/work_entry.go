package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkEntry representa un registro de trabajo de un Job.
// MinutesTotal y PriceTotal se derivan de las horas, la pausa y la tarifa.
type WorkEntry struct {
	ID           string
	JobID        string
	WorkDate     time.Time
	TimeFrom     string // HH:MM
	TimeTo       string // HH:MM; menor que TimeFrom = cruza la medianoche
	BreakMinutes int
	HourRate     decimal.Decimal
	Activity     string
	MinutesTotal int
	PriceTotal   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
