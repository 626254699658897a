package backup

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/jobledger/internal/application/dto"
	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
)

func settingsToDTO(s *entity.Settings) *dto.BackupSettings {
	if s == nil {
		return nil
	}
	return &dto.BackupSettings{
		Language:              s.Language,
		CompanyName:           s.CompanyName,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Currency:              s.Currency,
		DefaultHourRate:       s.DefaultHourRate,
		InvoiceDueDaysDefault: s.InvoiceDueDaysDefault,
		InvoiceNumberFormat:   s.InvoiceNumberFormat,
		InvoiceAllowRedating:  s.InvoiceAllowRedating,
		UpdatedAt:             s.UpdatedAt,
	}
}

func settingsFromDTO(s *dto.BackupSettings) *entity.Settings {
	return &entity.Settings{
		ID:                    entity.SettingsID,
		Language:              s.Language,
		CompanyName:           s.CompanyName,
		Phone:                 s.Phone,
		Email:                 s.Email,
		Currency:              s.Currency,
		DefaultHourRate:       s.DefaultHourRate,
		InvoiceDueDaysDefault: s.InvoiceDueDaysDefault,
		InvoiceNumberFormat:   s.InvoiceNumberFormat,
		InvoiceAllowRedating:  s.InvoiceAllowRedating,
		UpdatedAt:             s.UpdatedAt,
	}
}

func jobToDTO(j *entity.Job) dto.BackupJob {
	out := dto.BackupJob{
		ID:        j.ID,
		Title:     j.Title,
		Note:      j.Note,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.HourRateDefault.Valid {
		rate := j.HourRateDefault.Decimal
		out.HourRateDefault = &rate
	}
	return out
}

func jobFromDTO(j dto.BackupJob) (*entity.Job, error) {
	status := entity.JobStatus(j.Status)
	if j.ID == "" || !status.Valid() {
		return nil, fmt.Errorf("%w: trabajo %q con estado %q", domain.ErrInvalidBackup, j.ID, j.Status)
	}
	out := &entity.Job{
		ID:        j.ID,
		Title:     j.Title,
		Note:      j.Note,
		Status:    status,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
	if j.HourRateDefault != nil {
		out.HourRateDefault = decimal.NewNullDecimal(*j.HourRateDefault)
	}
	return out, nil
}

func entryToDTO(e *entity.WorkEntry) dto.BackupEntry {
	return dto.BackupEntry{
		ID:           e.ID,
		JobID:        e.JobID,
		WorkDate:     e.WorkDate.Format(dto.DateLayout),
		TimeFrom:     e.TimeFrom,
		TimeTo:       e.TimeTo,
		BreakMinutes: e.BreakMinutes,
		HourRate:     e.HourRate,
		Activity:     e.Activity,
		MinutesTotal: e.MinutesTotal,
		PriceTotal:   e.PriceTotal,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func entryFromDTO(e dto.BackupEntry) (*entity.WorkEntry, error) {
	workDate, err := time.Parse(dto.DateLayout, e.WorkDate)
	if err != nil {
		return nil, fmt.Errorf("%w: registro %q: fecha %q", domain.ErrInvalidBackup, e.ID, e.WorkDate)
	}
	return &entity.WorkEntry{
		ID:           e.ID,
		JobID:        e.JobID,
		WorkDate:     workDate,
		TimeFrom:     e.TimeFrom,
		TimeTo:       e.TimeTo,
		BreakMinutes: e.BreakMinutes,
		HourRate:     e.HourRate,
		Activity:     e.Activity,
		MinutesTotal: e.MinutesTotal,
		PriceTotal:   e.PriceTotal,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}, nil
}

func invoiceToDTO(inv *entity.Invoice) dto.BackupInvoice {
	return dto.BackupInvoice{
		ID:           inv.ID,
		JobID:        inv.JobID,
		State:        string(inv.State),
		IssueDate:    dateString(inv.IssueDate),
		DueDays:      inv.DueDays,
		NumberYear:   inv.NumberYear,
		NumberMonth:  inv.NumberMonth,
		NumberSeq:    inv.NumberSeq,
		NumberText:   inv.NumberText,
		Subtotal:     inv.Subtotal,
		Total:        inv.Total,
		PeriodFrom:   dateString(inv.PeriodFrom),
		PeriodTo:     dateString(inv.PeriodTo),
		PreparedAt:   inv.PreparedAt,
		ExportedAt:   inv.ExportedAt,
		SentAt:       inv.SentAt,
		IssuedAt:     inv.IssuedAt,
		CancelledAt:  inv.CancelledAt,
		CancelReason: inv.CancelReason,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

func invoiceFromDTO(inv dto.BackupInvoice) (*entity.Invoice, error) {
	state := entity.InvoiceState(inv.State)
	switch state {
	case entity.InvoiceStateDraft, entity.InvoiceStatePrepared, entity.InvoiceStateIssued:
	default:
		return nil, fmt.Errorf("%w: factura %q con estado %q", domain.ErrInvalidBackup, inv.ID, inv.State)
	}
	out := &entity.Invoice{
		ID:           inv.ID,
		JobID:        inv.JobID,
		State:        state,
		DueDays:      inv.DueDays,
		NumberYear:   inv.NumberYear,
		NumberMonth:  inv.NumberMonth,
		NumberSeq:    inv.NumberSeq,
		NumberText:   inv.NumberText,
		Subtotal:     inv.Subtotal,
		Total:        inv.Total,
		PreparedAt:   inv.PreparedAt,
		ExportedAt:   inv.ExportedAt,
		SentAt:       inv.SentAt,
		IssuedAt:     inv.IssuedAt,
		CancelledAt:  inv.CancelledAt,
		CancelReason: inv.CancelReason,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	var err error
	if out.IssueDate, err = parseDate(inv.IssueDate); err != nil {
		return nil, fmt.Errorf("%w: factura %q: %v", domain.ErrInvalidBackup, inv.ID, err)
	}
	if out.PeriodFrom, err = parseDate(inv.PeriodFrom); err != nil {
		return nil, fmt.Errorf("%w: factura %q: %v", domain.ErrInvalidBackup, inv.ID, err)
	}
	if out.PeriodTo, err = parseDate(inv.PeriodTo); err != nil {
		return nil, fmt.Errorf("%w: factura %q: %v", domain.ErrInvalidBackup, inv.ID, err)
	}
	return out, nil
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
