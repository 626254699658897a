package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/numbering"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// InvoiceUseCase máquina de estados de la factura: numeración por periodo,
// bloqueo por marcadores y cancelación con renumeración.
type InvoiceUseCase struct {
	txRunner ports.TxRunner
	settings SettingsProvider
	locks    *ScopeLocker
	log      *logger.Logger
	now      func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(txRunner ports.TxRunner, settings SettingsProvider, locks *ScopeLocker, log *logger.Logger) *InvoiceUseCase {
	if locks == nil {
		locks = NewScopeLocker()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner: txRunner,
		settings: settings,
		locks:    locks,
		log:      log.Component("billing"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve la factura del trabajo.
func (uc *InvoiceUseCase) Get(ctx context.Context, jobID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		inv, err = loadInvoice(ctx, repos, jobID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Prepare asigna el siguiente número del periodo de issueDate.
//
// Errores: ErrNotFound, ErrAlreadyIssued (emitida), ErrLocked (algún marcador),
// ErrAlreadyPrepared (ya tiene número). El total no se revalida aquí.
func (uc *InvoiceUseCase) Prepare(ctx context.Context, jobID string, issueDate time.Time) (*entity.Invoice, error) {
	dueDays, err := uc.settings.GetDefaultDueDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare: due days: %w", err)
	}
	format, err := uc.settings.NumberFormat(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare: number format: %w", err)
	}

	issueDate = time.Date(issueDate.Year(), issueDate.Month(), issueDate.Day(), 0, 0, 0, 0, time.UTC)
	scope := entity.ScopeOf(issueDate)
	unlock := uc.locks.Lock(scope)
	defer unlock()

	var inv *entity.Invoice
	err = uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		inv, err = loadInvoice(ctx, repos, jobID)
		if err != nil {
			return err
		}
		switch {
		case inv.State == entity.InvoiceStateIssued:
			return domain.ErrAlreadyIssued
		case inv.IsLocked():
			return domain.ErrLocked
		case inv.State == entity.InvoiceStatePrepared:
			return domain.ErrAlreadyPrepared
		}

		counter, err := loadCounter(ctx, repos, scope)
		if err != nil {
			return err
		}
		now := uc.now()
		seq := counter.Next()
		counter.UpdatedAt = now

		inv.State = entity.InvoiceStatePrepared
		inv.IssueDate = &issueDate
		inv.DueDays = dueDays
		inv.NumberYear = scope.Year
		inv.NumberMonth = scope.Month
		inv.NumberSeq = seq
		inv.NumberText = numbering.Format(format, scope.Year, scope.Month, seq)
		inv.PreparedAt = &now
		inv.UpdatedAt = now

		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		if err := repos.Sequences.Save(ctx, counter); err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		return projectJobStatus(ctx, repos.Jobs, jobID, StatusForState(inv.State), now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("job_id", jobID).
		Str("invoice_id", inv.ID).
		Str("number", inv.NumberText).
		Str("scope", scope.String()).
		Msg("factura preparada")
	return inv, nil
}

// CancelPrepared devuelve la factura a borrador y libera su número.
//
// Las facturas preparadas y no bloqueadas del mismo periodo con consecutivo mayor
// bajan una posición. Las bloqueadas conservan su número aunque quede un hueco:
// es una excepción intencionada a la numeración continua, y el hueco se entrega
// en el siguiente Prepare del periodo.
// Errores: ErrNotFound, ErrNotPrepared, ErrLocked.
func (uc *InvoiceUseCase) CancelPrepared(ctx context.Context, jobID, reason string) error {
	format, err := uc.settings.NumberFormat(ctx)
	if err != nil {
		return fmt.Errorf("cancel: number format: %w", err)
	}

	// El periodo se conoce leyendo la factura; se vuelve a validar dentro del bloqueo.
	current, err := uc.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if err := checkPreparedUnlocked(current); err != nil {
		return err
	}
	scope, _ := current.Scope()
	unlock := uc.locks.Lock(scope)
	defer unlock()

	var cancelledNumber string
	var shifted int
	err = uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		inv, err := loadInvoice(ctx, repos, jobID)
		if err != nil {
			return err
		}
		if err := checkPreparedUnlocked(inv); err != nil {
			return err
		}
		if s, _ := inv.Scope(); s != scope {
			return fmt.Errorf("cancel: el periodo de la factura cambió (%s -> %s)", scope, s)
		}

		active, err := repos.Invoices.ListByScope(ctx, scope)
		if err != nil {
			return fmt.Errorf("cancel: %w", err)
		}
		byID := make(map[string]*entity.Invoice, len(active))
		slots := make([]numbering.Slot, 0, len(active))
		for _, other := range active {
			if other.ID == inv.ID {
				continue
			}
			byID[other.ID] = other
			slots = append(slots, numbering.Slot{
				ID:     other.ID,
				Seq:    other.NumberSeq,
				Locked: other.IsLocked(),
				Issued: other.State == entity.InvoiceStateIssued,
			})
		}
		plan := numbering.PlanCancellation(slots, inv.NumberSeq)

		now := uc.now()
		cancelledNumber = inv.NumberText
		inv.State = entity.InvoiceStateDraft
		inv.ClearNumber()
		inv.CancelledAt = &now
		inv.CancelReason = reason
		inv.UpdatedAt = now
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("cancel: %w", err)
		}

		// Orden ascendente: cada destino ya quedó libre en el paso anterior.
		for _, mv := range plan.Moves {
			other := byID[mv.ID]
			other.NumberSeq = mv.To
			other.NumberText = numbering.Format(format, scope.Year, scope.Month, mv.To)
			other.UpdatedAt = now
			if err := repos.Invoices.Update(ctx, other); err != nil {
				return fmt.Errorf("cancel: renumber %s: %w", other.ID, err)
			}
		}
		shifted = len(plan.Moves)

		counter := &entity.NumberingScope{Scope: scope, LastSeq: plan.LastSeq, Gaps: plan.Gaps, UpdatedAt: now}
		if err := repos.Sequences.Save(ctx, counter); err != nil {
			return fmt.Errorf("cancel: %w", err)
		}
		return projectJobStatus(ctx, repos.Jobs, jobID, StatusForState(inv.State), now)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("job_id", jobID).
		Str("number", cancelledNumber).
		Str("scope", scope.String()).
		Int("shifted", shifted).
		Msg("factura preparada cancelada")
	return nil
}

func checkPreparedUnlocked(inv *entity.Invoice) error {
	if inv.State != entity.InvoiceStatePrepared {
		return domain.ErrNotPrepared
	}
	if inv.IsLocked() {
		return domain.ErrLocked
	}
	return nil
}

// Issue emite la factura preparada; IssuedAt es a su vez marcador de bloqueo.
// Errores: ErrNotFound, ErrNotPrepared (borrador o ya emitida), ErrLocked.
func (uc *InvoiceUseCase) Issue(ctx context.Context, jobID string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		inv, err = loadInvoice(ctx, repos, jobID)
		if err != nil {
			return err
		}
		if err := checkPreparedUnlocked(inv); err != nil {
			return err
		}
		now := uc.now()
		inv.State = entity.InvoiceStateIssued
		inv.IssuedAt = &now
		inv.UpdatedAt = now
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("issue: %w", err)
		}
		return projectJobStatus(ctx, repos.Jobs, jobID, StatusForState(inv.State), now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("job_id", jobID).Str("invoice_id", inv.ID).Str("number", inv.NumberText).Msg("factura emitida")
	return inv, nil
}

// MarkExported registra que la factura se exportó (vista previa / PDF). Idempotente:
// se conserva la primera marca.
func (uc *InvoiceUseCase) MarkExported(ctx context.Context, jobID string) (*entity.Invoice, error) {
	return uc.mark(ctx, jobID, "exportada", func(inv *entity.Invoice) **time.Time { return &inv.ExportedAt })
}

// MarkSent registra que la factura se envió. Idempotente.
func (uc *InvoiceUseCase) MarkSent(ctx context.Context, jobID string) (*entity.Invoice, error) {
	return uc.mark(ctx, jobID, "enviada", func(inv *entity.Invoice) **time.Time { return &inv.SentAt })
}

func (uc *InvoiceUseCase) mark(ctx context.Context, jobID, what string, field func(*entity.Invoice) **time.Time) (*entity.Invoice, error) {
	var inv *entity.Invoice
	var changed bool
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		inv, err = loadInvoice(ctx, repos, jobID)
		if err != nil {
			return err
		}
		marker := field(inv)
		if *marker != nil {
			return nil
		}
		now := uc.now()
		*marker = &now
		inv.UpdatedAt = now
		changed = true
		if err := repos.Invoices.Update(ctx, inv); err != nil {
			return fmt.Errorf("mark %s: %w", what, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if changed {
		uc.log.Info().Str("job_id", jobID).Str("invoice_id", inv.ID).Msg("factura " + what)
	}
	return inv, nil
}

// MarkPaid marca el trabajo como pagado sin condiciones sobre la factura
// (trabajos cobrados sin factura formal). La factura no se modifica.
func (uc *InvoiceUseCase) MarkPaid(ctx context.Context, jobID string) error {
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		return projectJobStatus(ctx, repos.Jobs, jobID, entity.JobStatusPaid, uc.now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("job_id", jobID).Msg("trabajo pagado")
	return nil
}

func loadInvoice(ctx context.Context, repos ports.Repositories, jobID string) (*entity.Invoice, error) {
	inv, err := repos.Invoices.GetByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// loadCounter lee el contador del periodo; si no existe lo reconstruye a partir de
// las facturas activas (bases anteriores al contador o restauradas).
func loadCounter(ctx context.Context, repos ports.Repositories, scope entity.Scope) (*entity.NumberingScope, error) {
	counter, err := repos.Sequences.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("get counter: %w", err)
	}
	if counter != nil {
		return counter, nil
	}
	return RebuildCounter(ctx, repos, scope)
}

// RebuildCounter recalcula el contador de un periodo desde sus facturas activas.
func RebuildCounter(ctx context.Context, repos ports.Repositories, scope entity.Scope) (*entity.NumberingScope, error) {
	active, err := repos.Invoices.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("rebuild counter: %w", err)
	}
	seqs := make([]int, 0, len(active))
	for _, inv := range active {
		seqs = append(seqs, inv.NumberSeq)
	}
	counter := entity.NewNumberingScope(scope)
	counter.LastSeq, counter.Gaps = numbering.Rebuild(seqs)
	return counter, nil
}
