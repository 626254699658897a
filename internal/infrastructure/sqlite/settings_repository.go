package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository (usable con db o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	const query = `
		SELECT id, language, company_name, phone, email, currency, default_hour_rate,
		       invoice_due_days_default, invoice_number_format, invoice_allow_redating, updated_at
		FROM settings WHERE id = ?`
	var s entity.Settings
	var updatedAt string
	err := r.q.QueryRowContext(ctx, query, entity.SettingsID).Scan(
		&s.ID, &s.Language, &s.CompanyName, &s.Phone, &s.Email, &s.Currency, &s.DefaultHourRate,
		&s.InvoiceDueDaysDefault, &s.InvoiceNumberFormat, &s.InvoiceAllowRedating, &updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	s.ID = entity.SettingsID
	const query = `
		INSERT INTO settings (id, language, company_name, phone, email, currency, default_hour_rate,
		                      invoice_due_days_default, invoice_number_format, invoice_allow_redating, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
		    language                 = excluded.language,
		    company_name             = excluded.company_name,
		    phone                    = excluded.phone,
		    email                    = excluded.email,
		    currency                 = excluded.currency,
		    default_hour_rate        = excluded.default_hour_rate,
		    invoice_due_days_default = excluded.invoice_due_days_default,
		    invoice_number_format    = excluded.invoice_number_format,
		    invoice_allow_redating   = excluded.invoice_allow_redating,
		    updated_at               = excluded.updated_at`
	_, err := r.q.ExecContext(ctx, query,
		s.ID, s.Language, s.CompanyName, s.Phone, s.Email, s.Currency, s.DefaultHourRate.String(),
		s.InvoiceDueDaysDefault, s.InvoiceNumberFormat, s.InvoiceAllowRedating, formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// scanner abstrae *sql.Row y *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var _ scanner = (*sql.Row)(nil)
