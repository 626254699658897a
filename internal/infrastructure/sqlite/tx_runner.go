package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/jobledger/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la base abierta por Open.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Repositories devuelve repos atados a la base (fuera de transacción), para lecturas.
func Repositories(q Querier) ports.Repositories {
	return ports.Repositories{
		Jobs:      NewJobRepository(q),
		Entries:   NewWorkEntryRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Settings:  NewSettingsRepository(q),
		Sequences: NewSequenceRepository(q),
	}
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(repos ports.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
