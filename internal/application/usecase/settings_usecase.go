package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/jobledger/internal/application/billing"
	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/application/ports"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/numbering"
)

var _ billing.SettingsProvider = (*SettingsUseCase)(nil)

// SettingsUseCase lectura y guardado de la configuración global (fila única).
type SettingsUseCase struct {
	txRunner ports.TxRunner
	defaults entity.Settings
	now      func() time.Time
}

// NewSettingsUseCase construye el caso de uso. defaults se persiste en el primer arranque.
func NewSettingsUseCase(txRunner ports.TxRunner, defaults entity.Settings) *SettingsUseCase {
	defaults.ID = entity.SettingsID
	if defaults.InvoiceNumberFormat == "" {
		defaults.InvoiceNumberFormat = numbering.DefaultFormat
	}
	return &SettingsUseCase{
		txRunner: txRunner,
		defaults: defaults,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// EnsureDefaults crea la fila de configuración si todavía no existe.
func (uc *SettingsUseCase) EnsureDefaults(ctx context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		s, err := repos.Settings.Get(ctx)
		if err != nil {
			return err
		}
		if s != nil {
			out = s
			return nil
		}
		s = uc.defaultsCopy()
		s.UpdatedAt = uc.now()
		if err := repos.Settings.Save(ctx, s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ensure settings: %w", err)
	}
	return out, nil
}

// Get devuelve la configuración actual.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSettingsResponse(s)
	return &resp, nil
}

// Save aplica los campos presentes en in y persiste.
func (uc *SettingsUseCase) Save(ctx context.Context, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	if in.InvoiceDueDaysDefault != nil && *in.InvoiceDueDaysDefault < 0 {
		return nil, fmt.Errorf("%w: los días de vencimiento no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.DefaultHourRate != nil && in.DefaultHourRate.IsNegative() {
		return nil, fmt.Errorf("%w: la tarifa no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.InvoiceNumberFormat != nil {
		if err := numbering.Validate(strings.TrimSpace(*in.InvoiceNumberFormat)); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
	}

	var out *entity.Settings
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		s, err := repos.Settings.Get(ctx)
		if err != nil {
			return err
		}
		if s == nil {
			s = uc.defaultsCopy()
		}
		if in.Language != nil {
			s.Language = *in.Language
		}
		if in.CompanyName != nil {
			s.CompanyName = *in.CompanyName
		}
		if in.Phone != nil {
			s.Phone = *in.Phone
		}
		if in.Email != nil {
			s.Email = *in.Email
		}
		if in.Currency != nil {
			s.Currency = *in.Currency
		}
		if in.DefaultHourRate != nil {
			s.DefaultHourRate = *in.DefaultHourRate
		}
		if in.InvoiceDueDaysDefault != nil {
			s.InvoiceDueDaysDefault = *in.InvoiceDueDaysDefault
		}
		if in.InvoiceNumberFormat != nil {
			s.InvoiceNumberFormat = strings.TrimSpace(*in.InvoiceNumberFormat)
		}
		if in.InvoiceAllowRedating != nil {
			s.InvoiceAllowRedating = *in.InvoiceAllowRedating
		}
		s.UpdatedAt = uc.now()
		out = s
		return repos.Settings.Save(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewSettingsResponse(out)
	return &resp, nil
}

// GetDefaultDueDays implementa billing.SettingsProvider.
func (uc *SettingsUseCase) GetDefaultDueDays(ctx context.Context) (int, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return 0, err
	}
	return s.InvoiceDueDaysDefault, nil
}

// NumberFormat implementa billing.SettingsProvider.
func (uc *SettingsUseCase) NumberFormat(ctx context.Context) (string, error) {
	s, err := uc.load(ctx)
	if err != nil {
		return "", err
	}
	return s.InvoiceNumberFormat, nil
}

// load devuelve la fila guardada o, si no existe, los valores por defecto (sin persistir).
func (uc *SettingsUseCase) load(ctx context.Context) (*entity.Settings, error) {
	var out *entity.Settings
	err := uc.txRunner.RunInTx(ctx, func(repos ports.Repositories) error {
		s, err := repos.Settings.Get(ctx)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if out == nil {
		out = uc.defaultsCopy()
	}
	return out, nil
}

func (uc *SettingsUseCase) defaultsCopy() *entity.Settings {
	s := uc.defaults
	return &s
}
