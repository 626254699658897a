package worktime

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MinutesPerDay minutos de un día; un fin menor que el inicio cruza la medianoche.
const MinutesPerDay = 24 * 60

// DateLayout formato de fecha de los registros (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ErrInvalidClock hora con formato distinto de HH:MM o fuera de rango.
var ErrInvalidClock = errors.New("hora inválida, se espera HH:MM")

var sixty = decimal.NewFromInt(60)

// ParseClock convierte "HH:MM" en minutos desde la medianoche.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate valida una fecha YYYY-MM-DD y la devuelve en UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// WorkedMinutes minutos trabajados entre from y to (HH:MM) menos la pausa.
// Si to < from se asume que el turno cruza la medianoche: (1440 - from) + to.
// El resultado nunca es negativo.
func WorkedMinutes(from, to string, breakMinutes int) (int, error) {
	f, err := ParseClock(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseClock(to)
	if err != nil {
		return 0, err
	}
	minutes := t - f
	if minutes < 0 {
		minutes = (MinutesPerDay - f) + t
	}
	minutes -= breakMinutes
	if minutes < 0 {
		return 0, nil
	}
	return minutes, nil
}

// Price importe = round(minutes/60 * rate, 2). Se redondea una sola vez, sobre el producto.
func Price(minutes int, rate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).Mul(rate).Div(sixty).Round(2)
}

// Sum suma importes y redondea el total a 2 decimales al final.
func Sum(prices []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}
	return total.Round(2)
}
