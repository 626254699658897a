package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

func entryOn(id, date, price string) *entity.WorkEntry {
	d, _ := time.Parse("2006-01-02", date)
	return &entity.WorkEntry{
		ID: id, JobID: "a", WorkDate: d, TimeFrom: "08:00", TimeTo: "09:00",
		HourRate: decimal.NewFromInt(100), MinutesTotal: 60, PriceTotal: decimal.RequireFromString(price),
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
}

func TestAggregator_Totals_RoundsOnce(t *testing.T) {
	agg := billing.NewAggregator()
	totals := agg.Totals([]*entity.WorkEntry{
		entryOn("1", "2025-01-12", "100.005"),
		entryOn("2", "2025-01-03", "100.005"),
		entryOn("3", "2025-01-20", "50"),
	})
	assert.Equal(t, "250.01", totals.Subtotal.StringFixed(2))
	require.NotNil(t, totals.PeriodFrom)
	require.NotNil(t, totals.PeriodTo)
	assert.Equal(t, "2025-01-03", totals.PeriodFrom.Format("2006-01-02"))
	assert.Equal(t, "2025-01-20", totals.PeriodTo.Format("2006-01-02"))
}

func TestAggregator_Totals_NoEntries(t *testing.T) {
	totals := billing.NewAggregator().Totals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.Nil(t, totals.PeriodFrom)
	assert.Nil(t, totals.PeriodTo)
}

func TestAggregator_Recompute_OverwritesInvoice(t *testing.T) {
	e := newEnv(t)
	e.createJob(t, "a")
	ctx := context.Background()
	agg := billing.NewAggregator()

	err := e.runner.RunInTx(ctx, func(repos ports.Repositories) error {
		for _, en := range []*entity.WorkEntry{
			entryOn("1", "2025-01-12", "100.005"),
			entryOn("2", "2025-01-03", "100.005"),
			entryOn("3", "2025-01-20", "50"),
		} {
			if err := repos.Entries.Create(ctx, en); err != nil {
				return err
			}
		}
		_, err := agg.Recompute(ctx, repos, "a", time.Now().UTC())
		return err
	})
	require.NoError(t, err)

	inv := e.invoice(t, "a")
	assert.Equal(t, "250.01", inv.Subtotal.StringFixed(2))
	assert.True(t, inv.Total.Equal(inv.Subtotal))
	assert.Equal(t, "2025-01-03", inv.PeriodFrom.Format("2006-01-02"))

	// Borrar todo vuelve a cero y periodo nulo.
	err = e.runner.RunInTx(ctx, func(repos ports.Repositories) error {
		for _, id := range []string{"1", "2", "3"} {
			if err := repos.Entries.Delete(ctx, id); err != nil {
				return err
			}
		}
		_, err := agg.Recompute(ctx, repos, "a", time.Now().UTC())
		return err
	})
	require.NoError(t, err)
	inv = e.invoice(t, "a")
	assert.True(t, inv.Total.IsZero())
	assert.Nil(t, inv.PeriodFrom)
}

func TestAggregator_Recompute_MissingInvoice(t *testing.T) {
	e := newEnv(t)
	err := e.runner.RunInTx(context.Background(), func(repos ports.Repositories) error {
		_, err := billing.NewAggregator().Recompute(context.Background(), repos, "missing", time.Now())
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
