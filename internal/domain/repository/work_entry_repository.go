package repository

import (
	"context"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// WorkEntryRepository define el puerto de persistencia para WorkEntry.
type WorkEntryRepository interface {
	Create(ctx context.Context, entry *entity.WorkEntry) error
	Update(ctx context.Context, entry *entity.WorkEntry) error
	GetByID(ctx context.Context, id string) (*entity.WorkEntry, error)
	// ListByJob ordena por work_date descendente y luego time_from descendente.
	ListByJob(ctx context.Context, jobID string) ([]*entity.WorkEntry, error)
	ListAll(ctx context.Context) ([]*entity.WorkEntry, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
