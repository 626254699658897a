package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/infrastructure/postgres"
	"github.com/jhoicas/jobledger/pkg/config"
)

// Necesita una base real: JOBLEDGER_TEST_DATABASE_URL=postgres://... go test ./...
func newRunner(t *testing.T) *postgres.TxRunner {
	t.Helper()
	url := os.Getenv("JOBLEDGER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("JOBLEDGER_TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	runner := postgres.NewTxRunner(pool)
	require.NoError(t, runner.RunInTx(ctx, func(repos ports.Repositories) error {
		if err := repos.Entries.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Invoices.DeleteAll(ctx); err != nil {
			return err
		}
		if err := repos.Jobs.DeleteAll(ctx); err != nil {
			return err
		}
		return repos.Sequences.DeleteAll(ctx)
	}))
	return runner
}

func TestStore_InvoiceLifecycle(t *testing.T) {
	runner := newRunner(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	issue := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	jobID := uuid.New().String()
	invID := uuid.New().String()
	require.NoError(t, runner.RunInTx(ctx, func(repos ports.Repositories) error {
		job := &entity.Job{
			ID: jobID, Title: "Oprava", Status: entity.JobStatusOpen,
			HourRateDefault: decimal.NewNullDecimal(decimal.NewFromInt(700)),
			CreatedAt:       now, UpdatedAt: now,
		}
		if err := repos.Jobs.Create(ctx, job); err != nil {
			return err
		}
		inv := entity.NewDraftInvoice(invID, jobID, now)
		inv.State = entity.InvoiceStatePrepared
		inv.IssueDate = &issue
		inv.NumberYear, inv.NumberMonth, inv.NumberSeq = 2025, 1, 1
		inv.NumberText = "0001/01,2025"
		inv.Total = decimal.RequireFromString("216.67")
		return repos.Invoices.Create(ctx, inv)
	}))

	var got *entity.Invoice
	require.NoError(t, runner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		got, err = repos.Invoices.GetByJob(ctx, jobID)
		return err
	}))
	require.NotNil(t, got)
	assert.Equal(t, "0001/01,2025", got.NumberText)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("216.67")))
	require.NotNil(t, got.IssueDate)
	assert.True(t, got.IssueDate.Equal(issue))
	assert.Nil(t, got.ExportedAt)

	err := runner.RunInTx(ctx, func(repos ports.Repositories) error {
		return repos.Invoices.Create(ctx, entity.NewDraftInvoice(uuid.New().String(), jobID, now))
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestStore_SequenceGaps(t *testing.T) {
	runner := newRunner(t)
	ctx := context.Background()
	scope := entity.Scope{Year: 2025, Month: 2}

	require.NoError(t, runner.RunInTx(ctx, func(repos ports.Repositories) error {
		n := entity.NewNumberingScope(scope)
		n.LastSeq = 5
		n.Gaps = []int{2, 4}
		n.UpdatedAt = time.Now().UTC()
		return repos.Sequences.Save(ctx, n)
	}))

	var got *entity.NumberingScope
	require.NoError(t, runner.RunInTx(ctx, func(repos ports.Repositories) error {
		var err error
		got, err = repos.Sequences.Get(ctx, scope)
		return err
	}))
	require.NotNil(t, got)
	assert.Equal(t, 5, got.LastSeq)
	assert.Equal(t, []int{2, 4}, got.Gaps)
}
