package bootstrap

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/jobledger/pkg/config"
	"github.com/jhoicas/jobledger/pkg/logger"
)

func TestOpenStore_SQLiteAndWire(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, config.DBConfig{Driver: config.DriverSQLite, Path: sqlite.MemoryPath}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(store.Close)

	ucs, err := Wire(ctx, store, config.SettingsDefaults{
		Language: "cs", Currency: "Kč", DefaultHourRate: decimal.NewFromInt(500), DueDays: 10, NumberFormat: "cccc/mm,rrrr",
	}, logger.Nop())
	require.NoError(t, err)

	s, err := ucs.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Kč", s.Currency)
	assert.Equal(t, 10, s.InvoiceDueDaysDefault)
	assert.Equal(t, "cccc/mm,rrrr", s.InvoiceNumberFormat)

	job, err := ucs.Jobs.Create(ctx, dto.CreateJobRequest{Title: "Test"})
	require.NoError(t, err)
	entry, err := ucs.Jobs.AddEntry(ctx, job.ID, dto.EntryRequest{WorkDate: "2025-03-01", TimeFrom: "09:00", TimeTo: "10:30"})
	require.NoError(t, err)
	assert.Equal(t, "750", entry.PriceTotal.String())
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), config.DBConfig{Driver: "mysql"}, logger.Nop())
	assert.Error(t, err)
}

func TestSettingsDefaults(t *testing.T) {
	s := SettingsDefaults(config.SettingsDefaults{CompanyName: "RAVITO", DueDays: 30, NumberFormat: "rrrr/cccc"})
	assert.Equal(t, "RAVITO", s.CompanyName)
	assert.Equal(t, 30, s.InvoiceDueDaysDefault)
	assert.Equal(t, "rrrr/cccc", s.InvoiceNumberFormat)
	assert.True(t, s.InvoiceAllowRedating)
}
