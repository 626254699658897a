package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/application/analytics"
	"github.com/jhoicas/jobledger/internal/application/backup"
	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/usecase"
	"github.com/jhoicas/jobledger/internal/infrastructure/pdf"
	"github.com/jhoicas/jobledger/internal/infrastructure/preview"
	"github.com/jhoicas/jobledger/pkg/config"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// UseCases casos de uso armados sobre un Store.
type UseCases struct {
	Jobs      *usecase.JobUseCase
	Settings  *usecase.SettingsUseCase
	Invoices  *billing.InvoiceUseCase
	Documents *billing.DocumentUseCase
	Overview  *analytics.OverviewUseCase
	Backup    *backup.UseCase
}

// Wire construye los casos de uso y garantiza la fila de configuración.
func Wire(ctx context.Context, store *Store, defaults config.SettingsDefaults, log *logger.Logger) (*UseCases, error) {
	settingsUC := usecase.NewSettingsUseCase(store.TxRunner, SettingsDefaults(defaults))
	if _, err := settingsUC.EnsureDefaults(ctx); err != nil {
		return nil, err
	}

	renderer, err := preview.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	invoiceUC := billing.NewInvoiceUseCase(store.TxRunner, settingsUC, billing.NewScopeLocker(), log)

	return &UseCases{
		Jobs:      usecase.NewJobUseCase(store.TxRunner, billing.NewAggregator(), log),
		Settings:  settingsUC,
		Invoices:  invoiceUC,
		Documents: billing.NewDocumentUseCase(store.TxRunner, invoiceUC, pdf.NewMarotoPDFGenerator(), renderer),
		Overview:  analytics.NewOverviewUseCase(store.TxRunner),
		Backup:    backup.NewUseCase(store.TxRunner, log),
	}, nil
}
