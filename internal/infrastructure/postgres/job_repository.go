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

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo implementación de JobRepository (usable con pool o tx).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador. Pasar pool o tx (Querier).
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, title, note, hour_rate_default, status, created_at, updated_at`

// Create persiste un nuevo trabajo.
func (r *JobRepo) Create(ctx context.Context, job *entity.Job) error {
	query := `INSERT INTO jobs (` + jobColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		job.ID, job.Title, job.Note, job.HourRateDefault, string(job.Status), job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert job: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Update actualiza título, nota, tarifa y estado.
func (r *JobRepo) Update(ctx context.Context, job *entity.Job) error {
	query := `
		UPDATE jobs
		SET title = $1, note = $2, hour_rate_default = $3, status = $4, updated_at = $5
		WHERE id = $6`
	_, err := r.q.Exec(ctx, query,
		job.Title, job.Note, job.HourRateDefault, string(job.Status), job.UpdatedAt, job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

func (r *JobRepo) Touch(ctx context.Context, id string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE jobs SET updated_at = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("touch job: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajo por ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	job, err := scanJob(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List lista trabajos, los más recientes primero.
func (r *JobRepo) List(ctx context.Context, filter repository.JobFilter) ([]*entity.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY updated_at DESC, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var list []*entity.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		list = append(list, job)
	}
	return list, rows.Err()
}

func (r *JobRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("delete jobs: %w", err)
	}
	return nil
}

func scanJob(row pgx.Row) (*entity.Job, error) {
	var job entity.Job
	var status string
	if err := row.Scan(&job.ID, &job.Title, &job.Note, &job.HourRateDefault, &status, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	job.Status = entity.JobStatus(status)
	job.CreatedAt = job.CreatedAt.UTC()
	job.UpdatedAt = job.UpdatedAt.UTC()
	return &job, nil
}
