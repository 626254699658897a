package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingsID clave de la única fila de configuración.
const SettingsID = 1

// Settings configuración global de la aplicación (fila única).
type Settings struct {
	ID                    int
	Language              string
	CompanyName           string
	Phone                 string
	Email                 string
	Currency              string // Etiqueta opaca que acompaña a los importes
	DefaultHourRate       decimal.Decimal
	InvoiceDueDaysDefault int
	InvoiceNumberFormat   string // Ej: "cccc/mm,rrrr" -> 0001/01,2025
	InvoiceAllowRedating  bool
	UpdatedAt             time.Time
}
