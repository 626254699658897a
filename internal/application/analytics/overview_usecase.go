// Package analytics contiene los casos de uso de resumen (panel principal).
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

// OverviewUseCase genera el resumen del panel: pendiente de cobro y trabajos por estado.
type OverviewUseCase struct {
	txRunner ports.TxRunner
	now      func() time.Time
}

// NewOverviewUseCase construye el caso de uso.
func NewOverviewUseCase(txRunner ports.TxRunner) *OverviewUseCase {
	return &OverviewUseCase{txRunner: txRunner, now: time.Now}
}

// Summary construye el OverviewResponse.
//
// UnpaidTotal = suma de los totales de las facturas cuyo trabajo está en awaiting_payment.
func (uc *OverviewUseCase) Summary(ctx context.Context) (*dto.OverviewResponse, error) {
	var (
		jobs     []*entity.Job
		invoices []*entity.Invoice
		settings *entity.Settings
	)
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		if jobs, err = repos.Jobs.List(ctx, repository.JobFilter{}); err != nil {
			return err
		}
		if invoices, err = repos.Invoices.ListAll(ctx); err != nil {
			return err
		}
		settings, err = repos.Settings.Get(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	totalByJob := make(map[string]decimal.Decimal, len(invoices))
	for _, inv := range invoices {
		totalByJob[inv.JobID] = inv.Total
	}

	byStatus := map[string]int{
		string(entity.JobStatusOpen):            0,
		string(entity.JobStatusReadyToInvoice):  0,
		string(entity.JobStatusAwaitingPayment): 0,
		string(entity.JobStatusPaid):            0,
	}
	unpaid := decimal.Zero
	for _, job := range jobs {
		byStatus[string(job.Status)]++
		if job.Status == entity.JobStatusAwaitingPayment {
			unpaid = unpaid.Add(totalByJob[job.ID])
		}
	}

	resp := &dto.OverviewResponse{
		UnpaidTotal:  unpaid.Round(2),
		JobsByStatus: byStatus,
		DateLabel:    uc.now().Format(dto.DateLayout),
	}
	if settings != nil {
		resp.Currency = settings.Currency
		resp.MonthLabel = monthLabel(uc.now(), settings.Language)
	}
	return resp, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "leden 2025".
func monthLabel(t time.Time, lang string) string {
	var months [12]string
	switch lang {
	case "cs":
		months = [...]string{
			"leden", "únor", "březen", "duben", "květen", "červen",
			"červenec", "srpen", "září", "říjen", "listopad", "prosinec",
		}
	case "es":
		months = [...]string{
			"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
			"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
		}
	default:
		return t.Format("01/2006")
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
