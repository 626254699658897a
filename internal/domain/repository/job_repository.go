package repository

import (
	"context"
	"time"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// JobFilter criterios de listado de trabajos.
type JobFilter struct {
	Status entity.JobStatus // vacío = todos
}

// JobRepository define el puerto de persistencia para Job (DIP).
// Los trabajos nunca se borran salvo por una restauración completa.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	Update(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// List ordena por updated_at descendente.
	List(ctx context.Context, filter JobFilter) ([]*entity.Job, error)
	// Touch actualiza solo updated_at.
	Touch(ctx context.Context, id string, at time.Time) error
	DeleteAll(ctx context.Context) error
}
