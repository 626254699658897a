package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con db o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar db o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, job_id, state, issue_date, due_days, number_year, number_month, number_seq, number_text,
	subtotal, total, period_from, period_to, prepared_at, exported_at, sent_at, issued_at,
	cancelled_at, cancel_reason, created_at, updated_at`

// Create persiste la factura. job_id es UNIQUE: una segunda factura por trabajo es ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		inv.ID, inv.JobID, string(inv.State), nullDate(inv.IssueDate), inv.DueDays,
		inv.NumberYear, inv.NumberMonth, inv.NumberSeq, inv.NumberText,
		inv.Subtotal.String(), inv.Total.String(), nullDate(inv.PeriodFrom), nullDate(inv.PeriodTo),
		nullTime(inv.PreparedAt), nullTime(inv.ExportedAt), nullTime(inv.SentAt), nullTime(inv.IssuedAt),
		nullTime(inv.CancelledAt), inv.CancelReason, formatTime(inv.CreatedAt), formatTime(inv.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert invoice: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update reescribe estado, numeración, totales y marcadores.
func (r *InvoiceRepo) Update(ctx context.Context, inv *entity.Invoice) error {
	const query = `
		UPDATE invoices
		SET state = ?, issue_date = ?, due_days = ?,
		    number_year = ?, number_month = ?, number_seq = ?, number_text = ?,
		    subtotal = ?, total = ?, period_from = ?, period_to = ?,
		    prepared_at = ?, exported_at = ?, sent_at = ?, issued_at = ?,
		    cancelled_at = ?, cancel_reason = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.q.ExecContext(ctx, query,
		string(inv.State), nullDate(inv.IssueDate), inv.DueDays,
		inv.NumberYear, inv.NumberMonth, inv.NumberSeq, inv.NumberText,
		inv.Subtotal.String(), inv.Total.String(), nullDate(inv.PeriodFrom), nullDate(inv.PeriodTo),
		nullTime(inv.PreparedAt), nullTime(inv.ExportedAt), nullTime(inv.SentAt), nullTime(inv.IssuedAt),
		nullTime(inv.CancelledAt), inv.CancelReason, formatTime(inv.UpdatedAt),
		inv.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update invoice %s: %w", inv.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
}

func (r *InvoiceRepo) GetByJob(ctx context.Context, jobID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE job_id = ?`, jobID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, arg string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRowContext(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepo) ListByScope(ctx context.Context, scope entity.Scope) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE number_year = ? AND number_month = ? AND state IN ('prepared', 'issued')
		ORDER BY number_seq`
	return r.list(ctx, query, scope.Year, scope.Month)
}

func (r *InvoiceRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at, id`)
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("delete invoices: %w", err)
	}
	return nil
}

func scanInvoice(s scanner) (*entity.Invoice, error) {
	var inv entity.Invoice
	var state, createdAt, updatedAt string
	var issueDate, periodFrom, periodTo sql.NullString
	var preparedAt, exportedAt, sentAt, issuedAt, cancelledAt sql.NullString
	err := s.Scan(
		&inv.ID, &inv.JobID, &state, &issueDate, &inv.DueDays,
		&inv.NumberYear, &inv.NumberMonth, &inv.NumberSeq, &inv.NumberText,
		&inv.Subtotal, &inv.Total, &periodFrom, &periodTo,
		&preparedAt, &exportedAt, &sentAt, &issuedAt,
		&cancelledAt, &inv.CancelReason, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.State = entity.InvoiceState(state)

	for _, d := range []struct {
		dst **time.Time
		src sql.NullString
	}{{&inv.IssueDate, issueDate}, {&inv.PeriodFrom, periodFrom}, {&inv.PeriodTo, periodTo}} {
		if *d.dst, err = parseNullDate(d.src); err != nil {
			return nil, err
		}
	}
	for _, ts := range []struct {
		dst **time.Time
		src sql.NullString
	}{
		{&inv.PreparedAt, preparedAt}, {&inv.ExportedAt, exportedAt}, {&inv.SentAt, sentAt},
		{&inv.IssuedAt, issuedAt}, {&inv.CancelledAt, cancelledAt},
	} {
		if *ts.dst, err = parseNullTime(ts.src); err != nil {
			return nil, err
		}
	}
	if inv.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if inv.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
