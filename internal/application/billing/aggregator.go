package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/worktime"
)

// Aggregator recalcula desde cero la proyección de la factura (subtotal, total,
// periodo) a partir de los registros de trabajo del job.
type Aggregator struct{}

// NewAggregator construye el agregador.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Totals suma los importes (redondeo único al final) y calcula el periodo min/max.
// Sin registros: subtotal 0 y periodo nulo.
func (a *Aggregator) Totals(entries []*entity.WorkEntry) entity.InvoiceTotals {
	prices := make([]decimal.Decimal, 0, len(entries))
	var from, to *time.Time
	for _, e := range entries {
		prices = append(prices, e.PriceTotal)
		d := e.WorkDate
		if from == nil || d.Before(*from) {
			from = &d
		}
		if to == nil || d.After(*to) {
			to = &d
		}
	}
	return entity.InvoiceTotals{Subtotal: worktime.Sum(prices), PeriodFrom: from, PeriodTo: to}
}

// Recompute relee los registros del job y sobrescribe la proyección de su factura.
// Se invoca tras cada alta, edición o baja de registro, con los repos de esa transacción.
func (a *Aggregator) Recompute(ctx context.Context, repos ports.Repositories, jobID string, now time.Time) (entity.InvoiceTotals, error) {
	entries, err := repos.Entries.ListByJob(ctx, jobID)
	if err != nil {
		return entity.InvoiceTotals{}, fmt.Errorf("recompute: list entries: %w", err)
	}
	totals := a.Totals(entries)

	inv, err := repos.Invoices.GetByJob(ctx, jobID)
	if err != nil {
		return entity.InvoiceTotals{}, fmt.Errorf("recompute: get invoice: %w", err)
	}
	if inv == nil {
		return entity.InvoiceTotals{}, domain.ErrNotFound
	}
	inv.Subtotal = totals.Subtotal
	inv.Total = totals.Subtotal
	inv.PeriodFrom = totals.PeriodFrom
	inv.PeriodTo = totals.PeriodTo
	inv.UpdatedAt = now
	if err := repos.Invoices.Update(ctx, inv); err != nil {
		return entity.InvoiceTotals{}, fmt.Errorf("recompute: %w", err)
	}
	return totals, nil
}
