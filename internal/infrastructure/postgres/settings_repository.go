package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository (usable con pool o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get obtiene la fila única; (nil, nil) si todavía no existe.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.Settings, error) {
	query := `
		SELECT id, language, company_name, phone, email, currency, default_hour_rate,
		       invoice_due_days_default, invoice_number_format, invoice_allow_redating, updated_at
		FROM settings WHERE id = $1`
	var s entity.Settings
	err := r.q.QueryRow(ctx, query, entity.SettingsID).Scan(
		&s.ID, &s.Language, &s.CompanyName, &s.Phone, &s.Email, &s.Currency, &s.DefaultHourRate,
		&s.InvoiceDueDaysDefault, &s.InvoiceNumberFormat, &s.InvoiceAllowRedating, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

// Save inserta o reemplaza la fila única.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	s.ID = entity.SettingsID
	query := `
		INSERT INTO settings (id, language, company_name, phone, email, currency, default_hour_rate,
		                      invoice_due_days_default, invoice_number_format, invoice_allow_redating, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
		    language                 = EXCLUDED.language,
		    company_name             = EXCLUDED.company_name,
		    phone                    = EXCLUDED.phone,
		    email                    = EXCLUDED.email,
		    currency                 = EXCLUDED.currency,
		    default_hour_rate        = EXCLUDED.default_hour_rate,
		    invoice_due_days_default = EXCLUDED.invoice_due_days_default,
		    invoice_number_format    = EXCLUDED.invoice_number_format,
		    invoice_allow_redating   = EXCLUDED.invoice_allow_redating,
		    updated_at               = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Language, s.CompanyName, s.Phone, s.Email, s.Currency, s.DefaultHourRate,
		s.InvoiceDueDaysDefault, s.InvoiceNumberFormat, s.InvoiceAllowRedating, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

func (r *SettingsRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}
