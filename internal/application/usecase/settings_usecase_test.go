package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/domain"
)

func TestSettingsUseCase_DefaultsAndSave(t *testing.T) {
	_, settings := newUseCases(t)
	ctx := context.Background()

	got, err := settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RAVITO", got.CompanyName)
	assert.Equal(t, 14, got.InvoiceDueDaysDefault)

	saved, err := settings.Save(ctx, dto.UpdateSettingsRequest{
		InvoiceDueDaysDefault: ptr(30),
		DefaultHourRate:       ptr(decimal.NewFromInt(700)),
		InvoiceNumberFormat:   ptr(" rrrr-cccc "),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, saved.InvoiceDueDaysDefault)
	assert.Equal(t, "rrrr-cccc", saved.InvoiceNumberFormat)
	assert.Equal(t, "RAVITO", saved.CompanyName, "los campos ausentes no cambian")

	days, err := settings.GetDefaultDueDays(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, days)
	format, err := settings.NumberFormat(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rrrr-cccc", format)
}

func TestSettingsUseCase_EnsureDefaultsKeepsExisting(t *testing.T) {
	_, settings := newUseCases(t)
	ctx := context.Background()

	_, err := settings.Save(ctx, dto.UpdateSettingsRequest{CompanyName: ptr("Jiná firma")})
	require.NoError(t, err)

	s, err := settings.EnsureDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jiná firma", s.CompanyName)
}

func TestSettingsUseCase_Validation(t *testing.T) {
	_, settings := newUseCases(t)
	ctx := context.Background()

	_, err := settings.Save(ctx, dto.UpdateSettingsRequest{InvoiceDueDaysDefault: ptr(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = settings.Save(ctx, dto.UpdateSettingsRequest{InvoiceNumberFormat: ptr("mm/rrrr")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = settings.Save(ctx, dto.UpdateSettingsRequest{DefaultHourRate: ptr(decimal.NewFromInt(-1))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
