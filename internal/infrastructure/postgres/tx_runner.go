package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/jobledger/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Repositories devuelve los repos atados a q (pool o tx).
func Repositories(q Querier) ports.Repositories {
	return ports.Repositories{
		Jobs:      NewJobRepository(q),
		Entries:   NewWorkEntryRepository(q),
		Invoices:  NewInvoiceRepository(q),
		Settings:  NewSettingsRepository(q),
		Sequences: NewSequenceRepository(q),
	}
}

// RunInTx inicia una transacción serializable, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(repos ports.Repositories) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(Repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
