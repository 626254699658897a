// Package backup exporta y restaura todas las colecciones (configuración, trabajos,
// registros y facturas) como un único documento JSON.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
	"github.com/jhoicas/jobledger/pkg/logger"
)

const (
	// AppTag etiqueta fija que identifica una copia de esta aplicación.
	AppTag = "jobledger"
	// SchemaVersion versión del formato de copia.
	SchemaVersion = 1
)

// UseCase exportación y restauración completa (wipe-and-restore).
type UseCase struct {
	txRunner ports.TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner ports.TxRunner, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		txRunner: txRunner,
		log:      log.Component("backup"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Export lee todas las colecciones en una sola transacción.
func (uc *UseCase) Export(ctx context.Context) (*dto.Backup, error) {
	out := &dto.Backup{
		App:           AppTag,
		SchemaVersion: SchemaVersion,
		ExportedAt:    uc.now(),
		Data: dto.BackupData{
			Jobs:     []dto.BackupJob{},
			Entries:  []dto.BackupEntry{},
			Invoices: []dto.BackupInvoice{},
		},
	}
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		settings, err := repos.Settings.Get(ctx)
		if err != nil {
			return err
		}
		out.Data.Settings = settingsToDTO(settings)

		jobs, err := repos.Jobs.List(ctx, repository.JobFilter{})
		if err != nil {
			return err
		}
		for _, j := range jobs {
			out.Data.Jobs = append(out.Data.Jobs, jobToDTO(j))
		}

		entries, err := repos.Entries.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			out.Data.Entries = append(out.Data.Entries, entryToDTO(e))
		}

		invoices, err := repos.Invoices.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			out.Data.Invoices = append(out.Data.Invoices, invoiceToDTO(inv))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export backup: %w", err)
	}
	return out, nil
}

// WriteJSON exporta y escribe el documento indentado en w.
func (uc *UseCase) WriteJSON(ctx context.Context, w io.Writer) error {
	b, err := uc.Export(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Decode lee un documento de copia y valida etiqueta y versión.
func Decode(r io.Reader) (*dto.Backup, error) {
	var b dto.Backup
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}
	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate comprueba la etiqueta de aplicación y la versión de esquema.
func Validate(b *dto.Backup) error {
	if b == nil || b.App != AppTag {
		return fmt.Errorf("%w: etiqueta de aplicación no reconocida", domain.ErrInvalidBackup)
	}
	if b.SchemaVersion != SchemaVersion {
		return fmt.Errorf("%w: versión de esquema %d no soportada", domain.ErrInvalidBackup, b.SchemaVersion)
	}
	return nil
}

// WipeAndRestore borra todas las colecciones y las reemplaza por el contenido de b,
// todo en una transacción. Los contadores de numeración se reconstruyen a partir
// de las facturas activas restauradas.
func (uc *UseCase) WipeAndRestore(ctx context.Context, b *dto.Backup) (*dto.RestoreResponse, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	// Convertir antes de abrir la transacción: un documento mal formado no toca la base.
	jobs := make([]*entity.Job, 0, len(b.Data.Jobs))
	for _, j := range b.Data.Jobs {
		job, err := jobFromDTO(j)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	entries := make([]*entity.WorkEntry, 0, len(b.Data.Entries))
	for _, e := range b.Data.Entries {
		entry, err := entryFromDTO(e)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	invoices := make([]*entity.Invoice, 0, len(b.Data.Invoices))
	scopes := make(map[entity.Scope]struct{})
	for _, i := range b.Data.Invoices {
		inv, err := invoiceFromDTO(i)
		if err != nil {
			return nil, err
		}
		if scope, ok := inv.Scope(); ok && inv.State.Active() {
			scopes[scope] = struct{}{}
		}
		invoices = append(invoices, inv)
	}

	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		if err := wipe(ctx, repos); err != nil {
			return err
		}
		if b.Data.Settings != nil {
			if err := repos.Settings.Save(ctx, settingsFromDTO(b.Data.Settings)); err != nil {
				return err
			}
		}
		for _, j := range jobs {
			if err := repos.Jobs.Create(ctx, j); err != nil {
				return err
			}
		}
		for _, e := range entries {
			if err := repos.Entries.Create(ctx, e); err != nil {
				return err
			}
		}
		for _, inv := range invoices {
			if err := repos.Invoices.Create(ctx, inv); err != nil {
				return err
			}
		}
		for scope := range scopes {
			counter, err := billing.RebuildCounter(ctx, repos, scope)
			if err != nil {
				return err
			}
			counter.UpdatedAt = uc.now()
			if err := repos.Sequences.Save(ctx, counter); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("restore backup: %w", err)
	}

	uc.log.Info().
		Int("jobs", len(jobs)).
		Int("entries", len(entries)).
		Int("invoices", len(invoices)).
		Msg("copia de seguridad restaurada")
	return &dto.RestoreResponse{Jobs: len(jobs), Entries: len(entries), Invoices: len(invoices)}, nil
}

// wipe borra en orden inverso a las claves foráneas.
func wipe(ctx context.Context, repos ports.Repositories) error {
	if err := repos.Entries.DeleteAll(ctx); err != nil {
		return err
	}
	if err := repos.Invoices.DeleteAll(ctx); err != nil {
		return err
	}
	if err := repos.Jobs.DeleteAll(ctx); err != nil {
		return err
	}
	if err := repos.Settings.DeleteAll(ctx); err != nil {
		return err
	}
	return repos.Sequences.DeleteAll(ctx)
}
