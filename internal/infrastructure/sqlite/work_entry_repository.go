package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/domain"
	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.WorkEntryRepository = (*WorkEntryRepo)(nil)

// WorkEntryRepo implementación de WorkEntryRepository (usable con db o tx).
type WorkEntryRepo struct {
	q Querier
}

// NewWorkEntryRepository construye el adaptador.
func NewWorkEntryRepository(q Querier) *WorkEntryRepo {
	return &WorkEntryRepo{q: q}
}

const entryColumns = `id, job_id, work_date, time_from, time_to, break_minutes, hour_rate, activity,
	minutes_total, price_total, created_at, updated_at`

func (r *WorkEntryRepo) Create(ctx context.Context, e *entity.WorkEntry) error {
	query := `INSERT INTO work_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		e.ID, e.JobID, formatDate(e.WorkDate), e.TimeFrom, e.TimeTo, e.BreakMinutes, e.HourRate.String(), e.Activity,
		e.MinutesTotal, e.PriceTotal.String(), formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert work entry: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert work entry: %w", err)
	}
	return nil
}

func (r *WorkEntryRepo) Update(ctx context.Context, e *entity.WorkEntry) error {
	const query = `
		UPDATE work_entries
		SET work_date = ?, time_from = ?, time_to = ?, break_minutes = ?, hour_rate = ?, activity = ?,
		    minutes_total = ?, price_total = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.q.ExecContext(ctx, query,
		formatDate(e.WorkDate), e.TimeFrom, e.TimeTo, e.BreakMinutes, e.HourRate.String(), e.Activity,
		e.MinutesTotal, e.PriceTotal.String(), formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("update work entry: %w", err)
	}
	return nil
}

func (r *WorkEntryRepo) GetByID(ctx context.Context, id string) (*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries WHERE id = ?`
	e, err := scanEntry(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work entry: %w", err)
	}
	return e, nil
}

func (r *WorkEntryRepo) ListByJob(ctx context.Context, jobID string) ([]*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries WHERE job_id = ?
		ORDER BY work_date DESC, time_from DESC, created_at DESC`
	return r.list(ctx, query, jobID)
}

func (r *WorkEntryRepo) ListAll(ctx context.Context) ([]*entity.WorkEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM work_entries ORDER BY job_id, work_date, time_from, id`
	return r.list(ctx, query)
}

func (r *WorkEntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.WorkEntry, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
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
	if _, err := r.q.ExecContext(ctx, `DELETE FROM work_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete work entry: %w", err)
	}
	return nil
}

func (r *WorkEntryRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM work_entries`); err != nil {
		return fmt.Errorf("delete work entries: %w", err)
	}
	return nil
}

func scanEntry(s scanner) (*entity.WorkEntry, error) {
	var e entity.WorkEntry
	var workDate, createdAt, updatedAt string
	err := s.Scan(&e.ID, &e.JobID, &workDate, &e.TimeFrom, &e.TimeTo, &e.BreakMinutes, &e.HourRate, &e.Activity,
		&e.MinutesTotal, &e.PriceTotal, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if e.WorkDate, err = parseDate(workDate); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
