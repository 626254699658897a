package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
	"github.com/jhoicas/jobledger/internal/domain/worktime"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// StatusAll filtro de listado sin restricción de estado.
const StatusAll = "all"

// JobUseCase casos de uso de trabajos y sus registros de trabajo.
// Cada cambio de registro recalcula la factura del trabajo en la misma transacción.
type JobUseCase struct {
	txRunner   ports.TxRunner
	aggregator *billing.Aggregator
	log        *logger.Logger
	now        func() time.Time
}

// NewJobUseCase construye el caso de uso.
func NewJobUseCase(txRunner ports.TxRunner, aggregator *billing.Aggregator, log *logger.Logger) *JobUseCase {
	if aggregator == nil {
		aggregator = billing.NewAggregator()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &JobUseCase{
		txRunner:   txRunner,
		aggregator: aggregator,
		log:        log.Component("jobs"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create crea el trabajo (open) junto con su factura en borrador.
func (uc *JobUseCase) Create(ctx context.Context, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: el título es obligatorio", domain.ErrInvalidInput)
	}
	if in.HourRateDefault != nil && in.HourRateDefault.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}

	now := uc.now()
	job := &entity.Job{
		ID:        uuid.New().String(),
		Title:     title,
		Note:      strings.TrimSpace(in.Note),
		Status:    entity.JobStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.HourRateDefault != nil {
		job.HourRateDefault = decimal.NewNullDecimal(*in.HourRateDefault)
	}
	inv := entity.NewDraftInvoice(uuid.New().String(), job.ID, now)

	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		if err := repos.Jobs.Create(ctx, job); err != nil {
			return err
		}
		return repos.Invoices.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("job_id", job.ID).Str("invoice_id", inv.ID).Msg("trabajo creado")
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Update actualiza título, nota o tarifa del trabajo.
func (uc *JobUseCase) Update(ctx context.Context, id string, in dto.UpdateJobRequest) (*dto.JobResponse, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, fmt.Errorf("%w: el título es obligatorio", domain.ErrInvalidInput)
	}
	if in.HourRateDefault != nil && in.HourRateDefault.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}

	var job *entity.Job
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		job, err = loadJob(ctx, repos, id)
		if err != nil {
			return err
		}
		if in.Title != nil {
			job.Title = strings.TrimSpace(*in.Title)
		}
		if in.Note != nil {
			job.Note = strings.TrimSpace(*in.Note)
		}
		switch {
		case in.ClearHourRate:
			job.HourRateDefault = decimal.NullDecimal{}
		case in.HourRateDefault != nil:
			job.HourRateDefault = decimal.NewNullDecimal(*in.HourRateDefault)
		}
		job.UpdatedAt = uc.now()
		return repos.Jobs.Update(ctx, job)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

// Get devuelve el trabajo con su factura y registros.
func (uc *JobUseCase) Get(ctx context.Context, id string) (*dto.JobDetailResponse, error) {
	var out dto.JobDetailResponse
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		job, err := loadJob(ctx, repos, id)
		if err != nil {
			return err
		}
		inv, err := repos.Invoices.GetByJob(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		entries, err := repos.Entries.ListByJob(ctx, id)
		if err != nil {
			return err
		}
		out.Job = dto.NewJobResponse(job)
		out.Invoice = dto.NewInvoiceResponse(inv)
		out.Entries = dto.NewEntryResponses(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List filtra por estado ("all" o vacío = todos) y por texto en título o nota,
// sin distinguir mayúsculas. Orden: última modificación primero.
func (uc *JobUseCase) List(ctx context.Context, status, q string) (*dto.JobListResponse, error) {
	filter := repository.JobFilter{}
	if status != "" && status != StatusAll {
		s := entity.JobStatus(status)
		if !s.Valid() {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
		}
		filter.Status = s
	}

	var jobs []*entity.Job
	invoices := make(map[string]*entity.Invoice)
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		jobs, err = repos.Jobs.List(ctx, filter)
		if err != nil {
			return err
		}
		all, err := repos.Invoices.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, inv := range all {
			invoices[inv.JobID] = inv
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q))
	items := make([]dto.JobListItem, 0, len(jobs))
	for _, job := range jobs {
		if needle != "" &&
			!strings.Contains(fold.String(job.Title), needle) &&
			!strings.Contains(fold.String(job.Note), needle) {
			continue
		}
		item := dto.JobListItem{JobResponse: dto.NewJobResponse(job), Total: decimal.Zero}
		if inv := invoices[job.ID]; inv != nil {
			item.InvoiceState = string(inv.State)
			item.InvoiceNumber = inv.NumberText
			item.Total = inv.Total
		}
		items = append(items, item)
	}
	return &dto.JobListResponse{Items: items}, nil
}

// ListEntries registros del trabajo, fecha más reciente primero.
func (uc *JobUseCase) ListEntries(ctx context.Context, jobID string) ([]dto.EntryResponse, error) {
	var entries []*entity.WorkEntry
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		if _, err := loadJob(ctx, repos, jobID); err != nil {
			return err
		}
		var err error
		entries, err = repos.Entries.ListByJob(ctx, jobID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dto.NewEntryResponses(entries), nil
}

// AddEntry crea un registro y recalcula la factura del trabajo.
// Tarifa: la del registro, si no la del trabajo, si no la de configuración.
func (uc *JobUseCase) AddEntry(ctx context.Context, jobID string, in dto.EntryRequest) (*dto.EntryResponse, error) {
	entry := &entity.WorkEntry{
		ID:           uuid.New().String(),
		JobID:        jobID,
		TimeFrom:     strings.TrimSpace(in.TimeFrom),
		TimeTo:       strings.TrimSpace(in.TimeTo),
		BreakMinutes: in.BreakMinutes,
		Activity:     strings.TrimSpace(in.Activity),
	}
	workDate, err := worktime.ParseDate(strings.TrimSpace(in.WorkDate))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	entry.WorkDate = workDate

	err = uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		job, err := loadJob(ctx, repos, jobID)
		if err != nil {
			return err
		}
		rate, err := resolveRate(ctx, repos, job, in.HourRate)
		if err != nil {
			return err
		}
		entry.HourRate = rate
		if err := derive(entry); err != nil {
			return err
		}
		now := uc.now()
		entry.CreatedAt = now
		entry.UpdatedAt = now
		if err := repos.Entries.Create(ctx, entry); err != nil {
			return err
		}
		return uc.afterEntryChange(ctx, repos, jobID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().Str("job_id", jobID).Str("entry_id", entry.ID).Int("minutes", entry.MinutesTotal).Msg("registro creado")
	resp := dto.NewEntryResponse(entry)
	return &resp, nil
}

// UpdateEntry aplica los campos presentes, recalcula minutos e importe y la factura.
func (uc *JobUseCase) UpdateEntry(ctx context.Context, entryID string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	var entry *entity.WorkEntry
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		entry, err = repos.Entries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if in.WorkDate != nil {
			d, err := worktime.ParseDate(strings.TrimSpace(*in.WorkDate))
			if err != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			entry.WorkDate = d
		}
		if in.TimeFrom != nil {
			entry.TimeFrom = strings.TrimSpace(*in.TimeFrom)
		}
		if in.TimeTo != nil {
			entry.TimeTo = strings.TrimSpace(*in.TimeTo)
		}
		if in.BreakMinutes != nil {
			entry.BreakMinutes = *in.BreakMinutes
		}
		if in.HourRate != nil {
			entry.HourRate = *in.HourRate
		}
		if in.Activity != nil {
			entry.Activity = strings.TrimSpace(*in.Activity)
		}
		if err := derive(entry); err != nil {
			return err
		}
		now := uc.now()
		entry.UpdatedAt = now
		if err := repos.Entries.Update(ctx, entry); err != nil {
			return err
		}
		return uc.afterEntryChange(ctx, repos, entry.JobID, now)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewEntryResponse(entry)
	return &resp, nil
}

// DeleteEntry borra el registro y recalcula la factura.
func (uc *JobUseCase) DeleteEntry(ctx context.Context, entryID string) error {
	return uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		entry, err := repos.Entries.GetByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if err := repos.Entries.Delete(ctx, entryID); err != nil {
			return err
		}
		return uc.afterEntryChange(ctx, repos, entry.JobID, uc.now())
	})
}

// afterEntryChange recalcula la factura y marca el trabajo como modificado.
func (uc *JobUseCase) afterEntryChange(ctx context.Context, repos ports.Repositories, jobID string, now time.Time) error {
	if _, err := uc.aggregator.Recompute(ctx, repos, jobID, now); err != nil {
		return err
	}
	return repos.Jobs.Touch(ctx, jobID, now)
}

// derive valida horas, pausa y tarifa y calcula minutos e importe.
func derive(e *entity.WorkEntry) error {
	if e.BreakMinutes < 0 {
		return fmt.Errorf("%w: la pausa no puede ser negativa", domain.ErrInvalidInput)
	}
	if e.HourRate.IsNegative() {
		return fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}
	minutes, err := worktime.WorkedMinutes(e.TimeFrom, e.TimeTo, e.BreakMinutes)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	e.MinutesTotal = minutes
	e.PriceTotal = worktime.Price(minutes, e.HourRate)
	return nil
}

func resolveRate(ctx context.Context, repos ports.Repositories, job *entity.Job, explicit *decimal.Decimal) (decimal.Decimal, error) {
	if explicit != nil {
		return *explicit, nil
	}
	if job.HourRateDefault.Valid {
		return job.HourRateDefault.Decimal, nil
	}
	settings, err := repos.Settings.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if settings == nil {
		return decimal.Zero, nil
	}
	return settings.DefaultHourRate, nil
}

func loadJob(ctx context.Context, repos ports.Repositories, id string) (*entity.Job, error) {
	job, err := repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}
