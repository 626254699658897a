package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 123000000, time.UTC)

func seedJob(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	ctx := context.Background()
	job := &entity.Job{ID: id, Title: "Job " + id, Status: entity.JobStatusOpen, CreatedAt: testNow, UpdatedAt: testNow}
	require.NoError(t, NewJobRepository(db).Create(ctx, job))
	require.NoError(t, NewInvoiceRepository(db).Create(ctx, entity.NewDraftInvoice("inv-"+id, id, testNow)))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	assert.Error(t, err)
}

func TestSettingsRepo_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	s := &entity.Settings{
		Language: "cs", CompanyName: "RAVITO", Currency: "Kč",
		DefaultHourRate: decimal.RequireFromString("650.50"), InvoiceDueDaysDefault: 14,
		InvoiceNumberFormat: "cccc/mm,rrrr", InvoiceAllowRedating: true, UpdatedAt: testNow,
	}
	require.NoError(t, repo.Save(ctx, s))
	s.InvoiceDueDaysDefault = 30
	require.NoError(t, repo.Save(ctx, s))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.SettingsID, got.ID)
	assert.Equal(t, 30, got.InvoiceDueDaysDefault)
	assert.True(t, got.DefaultHourRate.Equal(decimal.RequireFromString("650.5")))
	assert.True(t, got.InvoiceAllowRedating)
	assert.Equal(t, testNow, got.UpdatedAt)
}

func TestJobRepo_ListFilterAndOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewJobRepository(db)
	ctx := context.Background()

	older := &entity.Job{ID: "a", Title: "Older", Status: entity.JobStatusOpen, CreatedAt: testNow, UpdatedAt: testNow}
	newer := &entity.Job{ID: "b", Title: "Newer", Status: entity.JobStatusPaid, CreatedAt: testNow,
		UpdatedAt: testNow.Add(time.Hour), HourRateDefault: decimal.NewNullDecimal(decimal.NewFromInt(500))}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	all, err := repo.List(ctx, repository.JobFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.True(t, all[0].HourRateDefault.Valid)
	assert.False(t, all[1].HourRateDefault.Valid)

	paid, err := repo.List(ctx, repository.JobFilter{Status: entity.JobStatusPaid})
	require.NoError(t, err)
	require.Len(t, paid, 1)

	require.NoError(t, repo.Touch(ctx, "a", testNow.Add(2*time.Hour)))
	all, err = repo.List(ctx, repository.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, "a", all[0].ID)

	missing, err := repo.GetByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInvoiceRepo_OnePerJob(t *testing.T) {
	db := newTestDB(t)
	seedJob(t, db, "j1")

	err := NewInvoiceRepository(db).Create(context.Background(), entity.NewDraftInvoice("other", "j1", testNow))
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestInvoiceRepo_RoundTripAndScope(t *testing.T) {
	db := newTestDB(t)
	seedJob(t, db, "j1")
	seedJob(t, db, "j2")
	repo := NewInvoiceRepository(db)
	ctx := context.Background()

	inv, err := repo.GetByJob(ctx, "j1")
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, entity.InvoiceStateDraft, inv.State)

	issue := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	inv.State = entity.InvoiceStatePrepared
	inv.IssueDate = &issue
	inv.DueDays = 14
	inv.NumberYear, inv.NumberMonth, inv.NumberSeq, inv.NumberText = 2025, 1, 1, "0001/01,2025"
	inv.Subtotal = decimal.RequireFromString("1300.50")
	inv.Total = inv.Subtotal
	inv.PreparedAt = &testNow
	inv.UpdatedAt = testNow
	require.NoError(t, repo.Update(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.InvoiceStatePrepared, got.State)
	assert.Equal(t, "0001/01,2025", got.NumberText)
	assert.Equal(t, issue, *got.IssueDate)
	assert.Equal(t, testNow, *got.PreparedAt)
	assert.Nil(t, got.ExportedAt)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("1300.5")))
	assert.False(t, got.IsLocked())

	inScope, err := repo.ListByScope(ctx, entity.Scope{Year: 2025, Month: 1})
	require.NoError(t, err)
	require.Len(t, inScope, 1, "los borradores no pertenecen a ningún periodo")

	// Un segundo consecutivo 1 activo en el mismo periodo viola el índice único.
	other, err := repo.GetByJob(ctx, "j2")
	require.NoError(t, err)
	other.State = entity.InvoiceStatePrepared
	other.NumberYear, other.NumberMonth, other.NumberSeq = 2025, 1, 1
	assert.ErrorIs(t, repo.Update(ctx, other), domain.ErrDuplicate)
}

func TestSequenceRepo_SaveReplacesGaps(t *testing.T) {
	db := newTestDB(t)
	repo := NewSequenceRepository(db)
	ctx := context.Background()
	scope := entity.Scope{Year: 2025, Month: 2}

	got, err := repo.Get(ctx, scope)
	require.NoError(t, err)
	assert.Nil(t, got)

	n := &entity.NumberingScope{Scope: scope, LastSeq: 5, Gaps: []int{2, 4}, UpdatedAt: testNow}
	require.NoError(t, repo.Save(ctx, n))
	n.Gaps = []int{4}
	require.NoError(t, repo.Save(ctx, n))

	got, err = repo.Get(ctx, scope)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.LastSeq)
	assert.Equal(t, []int{4}, got.Gaps)
}

func TestTxRunner_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	runner := NewTxRunner(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := runner.RunInTx(ctx, func(repos ports.Repositories) error {
		job := &entity.Job{ID: "j1", Title: "x", Status: entity.JobStatusOpen, CreatedAt: testNow, UpdatedAt: testNow}
		require.NoError(t, repos.Jobs.Create(ctx, job))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	job, err := NewJobRepository(db).GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestWorkEntryRepo_ListByJobOrder(t *testing.T) {
	db := newTestDB(t)
	seedJob(t, db, "j1")
	repo := NewWorkEntryRepository(db)
	ctx := context.Background()

	mk := func(id, date, from string) *entity.WorkEntry {
		d, _ := time.Parse("2006-01-02", date)
		return &entity.WorkEntry{
			ID: id, JobID: "j1", WorkDate: d, TimeFrom: from, TimeTo: "18:00",
			HourRate: decimal.NewFromInt(650), MinutesTotal: 60, PriceTotal: decimal.NewFromInt(650),
			CreatedAt: testNow, UpdatedAt: testNow,
		}
	}
	require.NoError(t, repo.Create(ctx, mk("e1", "2025-01-10", "08:00")))
	require.NoError(t, repo.Create(ctx, mk("e2", "2025-01-12", "08:00")))
	require.NoError(t, repo.Create(ctx, mk("e3", "2025-01-12", "13:00")))

	list, err := repo.ListByJob(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"e3", "e2", "e1"}, []string{list[0].ID, list[1].ID, list[2].ID})

	require.NoError(t, repo.Delete(ctx, "e2"))
	list, err = repo.ListByJob(ctx, "j1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
