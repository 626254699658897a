package ports

import (
	"context"

	"github.com/jhoicas/jobledger/internal/domain/repository"
)

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Jobs      repository.JobRepository
	Entries   repository.WorkEntryRepository
	Invoices  repository.InvoiceRepository
	Settings  repository.SettingsRepository
	Sequences repository.SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción; si fn devuelve error se hace rollback.
// Implementado por infrastructure/sqlite y infrastructure/postgres.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(repos Repositories) error) error
}
