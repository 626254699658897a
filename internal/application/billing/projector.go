package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

// StatusForState estado del trabajo que corresponde a cada estado de su factura.
func StatusForState(state entity.InvoiceState) entity.JobStatus {
	switch state {
	case entity.InvoiceStatePrepared:
		return entity.JobStatusReadyToInvoice
	case entity.InvoiceStateIssued:
		return entity.JobStatusAwaitingPayment
	default:
		return entity.JobStatusOpen
	}
}

// projectJobStatus escribe el estado derivado en el trabajo, dentro de la misma
// transacción que el cambio de factura que lo origina.
func projectJobStatus(ctx context.Context, jobs repository.JobRepository, jobID string, status entity.JobStatus, now time.Time) error {
	job, err := jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("project status: get job: %w", err)
	}
	if job == nil {
		return domain.ErrNotFound
	}
	job.Status = status
	job.UpdatedAt = now
	if err := jobs.Update(ctx, job); err != nil {
		return fmt.Errorf("project status: %w", err)
	}
	return nil
}
