// Package bootstrap abre el almacenamiento configurado y arma los casos de uso
// compartidos por el servidor y la herramienta de copias.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/infrastructure/postgres"
	"github.com/jhoicas/jobledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/jobledger/pkg/config"
	"github.com/jhoicas/jobledger/pkg/logger"
)

// Store almacenamiento abierto: runner transaccional y cierre.
type Store struct {
	TxRunner ports.TxRunner
	Close    func()
}

// OpenStore abre SQLite (por defecto) o PostgreSQL según cfg.Driver.
func OpenStore(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info().Str("driver", config.DriverSQLite).Str("path", cfg.Path).Msg("almacenamiento abierto")
		return &Store{
			TxRunner: sqlite.NewTxRunner(db),
			Close:    func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		log.Info().Str("driver", config.DriverPostgres).Msg("almacenamiento abierto")
		return &Store{
			TxRunner: postgres.NewTxRunner(pool),
			Close:    pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
	}
}

// SettingsDefaults convierte los valores de primer arranque de la configuración.
func SettingsDefaults(s config.SettingsDefaults) entity.Settings {
	return entity.Settings{
		ID:                    entity.SettingsID,
		Language:              s.Language,
		CompanyName:           s.CompanyName,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Currency:              s.Currency,
		DefaultHourRate:       s.DefaultHourRate,
		InvoiceDueDaysDefault: s.DueDays,
		InvoiceNumberFormat:   s.NumberFormat,
		InvoiceAllowRedating:  true,
	}
}
