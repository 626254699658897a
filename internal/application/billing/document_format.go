package billing

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentDateLayout formato de fechas en los documentos impresos.
const DocumentDateLayout = "02.01.2006"

// FormatMoney importe con separador de miles (espacio) y coma decimal; los ceros decimales se omiten.
// Ej: 1250.1 -> "1 250,10", 650 -> "650".
func FormatMoney(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(c)
	}
	if frac != "00" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// FormatHours minutos como horas con dos decimales. Ej: 270 -> "4,50".
func FormatHours(minutes int) string {
	return strings.Replace(decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).StringFixed(2), ".", ",", 1)
}

// FormatDate fecha del documento; "—" si no hay.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format(DocumentDateLayout)
}
