package numbering

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultFormat formato por defecto: consecutivo de 4 dígitos, mes y año (0001/01,2025).
const DefaultFormat = "cccc/mm,rrrr"

// ErrFormatWithoutSequence el formato no contiene ningún token de consecutivo ("c").
var ErrFormatWithoutSequence = errors.New("el formato de numeración no contiene consecutivo")

// Validate comprueba que el formato tenga al menos un token de consecutivo.
func Validate(format string) error {
	if !strings.ContainsRune(format, 'c') {
		return ErrFormatWithoutSequence
	}
	return nil
}

// Format renderiza el número de factura.
//
// Tokens: una racha de "c" es el consecutivo rellenado con ceros hasta la longitud
// de la racha; "mm" mes con 2 dígitos, "m" mes; "rrrr" año con 4 dígitos, "rr" año
// con 2 dígitos. El resto de caracteres se copia literal. Un formato vacío usa DefaultFormat.
func Format(format string, year, month, seq int) string {
	if format == "" {
		format = DefaultFormat
	}
	var b strings.Builder
	for i := 0; i < len(format); {
		ch := format[i]
		run := 1
		for i+run < len(format) && format[i+run] == ch {
			run++
		}
		switch ch {
		case 'c':
			fmt.Fprintf(&b, "%0*d", run, seq)
		case 'm':
			writeRun(&b, run, 2, func(n int) string {
				if n == 1 {
					return fmt.Sprintf("%d", month)
				}
				return fmt.Sprintf("%02d", month)
			})
		case 'r':
			writeRun(&b, run, 4, func(n int) string {
				switch {
				case n >= 4:
					return fmt.Sprintf("%04d", year)
				case n >= 2:
					return fmt.Sprintf("%02d", year%100)
				default:
					return "r"
				}
			})
		default:
			b.WriteString(format[i : i+run])
		}
		i += run
	}
	return b.String()
}

// writeRun consume una racha de longitud run en bloques de como máximo size caracteres.
func writeRun(b *strings.Builder, run, size int, render func(n int) string) {
	for run > 0 {
		n := run
		if n > size {
			n = size
		}
		b.WriteString(render(n))
		run -= n
	}
}
