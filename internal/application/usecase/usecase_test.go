package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/usecase"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/jobledger/pkg/logger"
)

func testDefaults() entity.Settings {
	return entity.Settings{
		Language:              "cs",
		CompanyName:           "RAVITO",
		Currency:              "Kč",
		DefaultHourRate:       decimal.NewFromInt(650),
		InvoiceDueDaysDefault: 14,
		InvoiceNumberFormat:   "cccc/mm,rrrr",
		InvoiceAllowRedating:  true,
	}
}

func newUseCases(t *testing.T) (*usecase.JobUseCase, *usecase.SettingsUseCase) {
	t.Helper()
	db, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	runner := sqlite.NewTxRunner(db)
	settings := usecase.NewSettingsUseCase(runner, testDefaults())
	_, err = settings.EnsureDefaults(context.Background())
	require.NoError(t, err)
	return usecase.NewJobUseCase(runner, nil, logger.Nop()), settings
}
