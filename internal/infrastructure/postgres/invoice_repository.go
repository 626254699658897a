package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, job_id, state, issue_date, due_days, number_year, number_month, number_seq, number_text,
	subtotal, total, period_from, period_to, prepared_at, exported_at, sent_at, issued_at,
	cancelled_at, cancel_reason, created_at, updated_at`

// Create persiste la factura. job_id es UNIQUE: una segunda factura por trabajo es ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.JobID, string(inv.State), inv.IssueDate, inv.DueDays,
		inv.NumberYear, inv.NumberMonth, inv.NumberSeq, inv.NumberText,
		inv.Subtotal, inv.Total, inv.PeriodFrom, inv.PeriodTo,
		inv.PreparedAt, inv.ExportedAt, inv.SentAt, inv.IssuedAt,
		inv.CancelledAt, inv.CancelReason, inv.CreatedAt, inv.UpdatedAt,
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
	query := `
		UPDATE invoices
		SET state = $1, issue_date = $2, due_days = $3,
		    number_year = $4, number_month = $5, number_seq = $6, number_text = $7,
		    subtotal = $8, total = $9, period_from = $10, period_to = $11,
		    prepared_at = $12, exported_at = $13, sent_at = $14, issued_at = $15,
		    cancelled_at = $16, cancel_reason = $17, updated_at = $18
		WHERE id = $19`
	_, err := r.q.Exec(ctx, query,
		string(inv.State), inv.IssueDate, inv.DueDays,
		inv.NumberYear, inv.NumberMonth, inv.NumberSeq, inv.NumberText,
		inv.Subtotal, inv.Total, inv.PeriodFrom, inv.PeriodTo,
		inv.PreparedAt, inv.ExportedAt, inv.SentAt, inv.IssuedAt,
		inv.CancelledAt, inv.CancelReason, inv.UpdatedAt,
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
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (r *InvoiceRepo) GetByJob(ctx context.Context, jobID string) (*entity.Invoice, error) {
	return r.getOne(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE job_id = $1`, jobID)
}

func (r *InvoiceRepo) getOne(ctx context.Context, query string, arg string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// ListByScope facturas activas (prepared/issued) del periodo, por consecutivo.
func (r *InvoiceRepo) ListByScope(ctx context.Context, scope entity.Scope) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE number_year = $1 AND number_month = $2 AND state IN ('prepared', 'issued')
		ORDER BY number_seq`
	return r.list(ctx, query, scope.Year, scope.Month)
}

func (r *InvoiceRepo) ListAll(ctx context.Context) ([]*entity.Invoice, error) {
	return r.list(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at, id`)
}

func (r *InvoiceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, query, args...)
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
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices`); err != nil {
		return fmt.Errorf("delete invoices: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var state string
	err := row.Scan(
		&inv.ID, &inv.JobID, &state, &inv.IssueDate, &inv.DueDays,
		&inv.NumberYear, &inv.NumberMonth, &inv.NumberSeq, &inv.NumberText,
		&inv.Subtotal, &inv.Total, &inv.PeriodFrom, &inv.PeriodTo,
		&inv.PreparedAt, &inv.ExportedAt, &inv.SentAt, &inv.IssuedAt,
		&inv.CancelledAt, &inv.CancelReason, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.State = entity.InvoiceState(state)
	for _, ts := range []**time.Time{&inv.PreparedAt, &inv.ExportedAt, &inv.SentAt, &inv.IssuedAt, &inv.CancelledAt} {
		if *ts != nil {
			u := (*ts).UTC()
			*ts = &u
		}
	}
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return &inv, nil
}
