package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.WorkEntryRepository = (*WorkEntryRepo)(nil)

// WorkEntryRepo implementación de WorkEntryRepository (usable con pool o tx).
type WorkEntryRepo struct {
	q Querier
}

// NewWorkEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkEntryRepository(q Querier) *WorkEntryRepo {
	return &WorkEntryRepo{q: q}
}

const entryColumns = `id, job_id, work_date, time_from, time_to, break_minutes, hour_rate, activity,
	minutes_total, price_total, created_at, updated_at`

// Create persiste un registro de trabajo.
func (r *WorkEntryRepo) Create(ctx context.Context, e *entity.WorkEntry) error {
	query := `INSERT INTO work_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.JobID, e.WorkDate, e.TimeFrom, e.TimeTo, e.BreakMinutes, e.HourRate, e.Activity,
		e.MinutesTotal, e.PriceTotal, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert work entry: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert work entry: %w", err)
	}
	return nil
}

// Update reescribe el registro completo (valores derivados incluidos).
func (r *WorkEntryRepo) Update(ctx context.Context, e *entity.WorkEntry) error {
	query := `
		UPDATE work_entries
		SET work_date = $1, time_from = $2, time_to = $3, break_minutes = $4, hour_rate = $5,
		    activity = $6, minutes_total = $7, price_total = $8, updated_at = $9
		WHERE id = $10`
	_, err := r.q.Exec(ctx, query,
		e.WorkDate, e.TimeFrom, e.TimeTo, e.BreakMinutes, e.HourRate,
		e.Activity, e.MinutesTotal, e.PriceTotal, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update work entry: %w", err)
	}
	return nil
}

func (r *WorkEntryRepo) GetByID(ctx context.Context, id string) (*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries WHERE id = $1`
	e, err := scanEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work entry: %w", err)
	}
	return e, nil
}

// ListByJob registros del trabajo: fecha más reciente primero, luego hora de inicio más tardía.
func (r *WorkEntryRepo) ListByJob(ctx context.Context, jobID string) ([]*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries WHERE job_id = $1
		ORDER BY work_date DESC, time_from DESC, created_at DESC`
	return r.list(ctx, query, jobID)
}

func (r *WorkEntryRepo) ListAll(ctx context.Context) ([]*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries ORDER BY job_id, work_date, time_from, id`
	return r.list(ctx, query)
}

func (r *WorkEntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.WorkEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list work entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan work entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *WorkEntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM work_entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	return nil
}

func (r *WorkEntryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM work_entries`); err != nil {
		return fmt.Errorf("delete work entries: %w", err)
	}
	return nil
}

func scanEntry(row pgx.Row) (*entity.WorkEntry, error) {
	var e entity.WorkEntry
	err := row.Scan(&e.ID, &e.JobID, &e.WorkDate, &e.TimeFrom, &e.TimeTo, &e.BreakMinutes, &e.HourRate, &e.Activity,
		&e.MinutesTotal, &e.PriceTotal, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}
