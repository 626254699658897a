package entity

import (
	"fmt"
	"sort"
	"time"
)

// Scope periodo (año, mes) que actúa como espacio de numeración de facturas.
type Scope struct {
	Year  int
	Month int
}

// ScopeOf devuelve el periodo de numeración de una fecha.
func ScopeOf(t time.Time) Scope {
	return Scope{Year: t.Year(), Month: int(t.Month())}
}

func (s Scope) String() string {
	return fmt.Sprintf("%04d-%02d", s.Year, s.Month)
}

// NumberingScope contador explícito de un periodo: último consecutivo entregado
// y lista de números liberados por cancelaciones que no pudieron compactarse.
// Gaps siempre está ordenado y todos sus valores son menores que LastSeq.
type NumberingScope struct {
	Scope
	LastSeq   int
	Gaps      []int
	UpdatedAt time.Time
}

// NewNumberingScope contador vacío para el periodo dado.
func NewNumberingScope(s Scope) *NumberingScope {
	return &NumberingScope{Scope: s}
}

// Next entrega el siguiente número del periodo: primero el hueco más bajo,
// si no hay huecos, LastSeq+1.
func (n *NumberingScope) Next() int {
	if len(n.Gaps) > 0 {
		sort.Ints(n.Gaps)
		seq := n.Gaps[0]
		n.Gaps = n.Gaps[1:]
		return seq
	}
	n.LastSeq++
	return n.LastSeq
}
