package numbering

import "sort"

// Slot ocupación de un consecutivo dentro de un periodo.
type Slot struct {
	ID     string
	Seq    int
	Locked bool // exportada, enviada o emitida
	Issued bool
}

// Move desplazamiento de una factura a un nuevo consecutivo.
type Move struct {
	ID   string
	From int
	To   int
}

// Plan resultado de cancelar un consecutivo en un periodo.
type Plan struct {
	Moves   []Move
	LastSeq int
	Gaps    []int
}

// PlanCancellation calcula qué facturas se desplazan al liberar cancelledSeq.
//
// Cada factura preparada y no bloqueada con consecutivo mayor baja exactamente una
// posición, en orden ascendente, siempre que el número destino esté libre. Las
// facturas bloqueadas nunca se mueven; sus números quedan fijos aunque dejen un
// hueco por debajo, y ese hueco queda en Gaps para el siguiente Prepare.
// slots son las facturas activas del periodo excluyendo la cancelada.
func PlanCancellation(slots []Slot, cancelledSeq int) Plan {
	sorted := make([]Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Seq < sorted[j].Seq })

	occupied := make(map[int]bool, len(sorted))
	for _, s := range sorted {
		occupied[s.Seq] = true
	}

	var moves []Move
	for _, s := range sorted {
		if s.Seq <= cancelledSeq || s.Locked || s.Issued {
			continue
		}
		to := s.Seq - 1
		if occupied[to] {
			continue
		}
		delete(occupied, s.Seq)
		occupied[to] = true
		moves = append(moves, Move{ID: s.ID, From: s.Seq, To: to})
	}

	seqs := make([]int, 0, len(occupied))
	for seq := range occupied {
		seqs = append(seqs, seq)
	}
	last, gaps := Rebuild(seqs)
	return Plan{Moves: moves, LastSeq: last, Gaps: gaps}
}

// Rebuild reconstruye el contador a partir de los consecutivos ocupados:
// LastSeq = máximo, Gaps = números de 1..máximo que no están ocupados.
func Rebuild(occupied []int) (lastSeq int, gaps []int) {
	set := make(map[int]bool, len(occupied))
	for _, seq := range occupied {
		if seq <= 0 {
			continue
		}
		set[seq] = true
		if seq > lastSeq {
			lastSeq = seq
		}
	}
	for seq := 1; seq < lastSeq; seq++ {
		if !set[seq] {
			gaps = append(gaps, seq)
		}
	}
	return lastSeq, gaps
}
