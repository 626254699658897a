package repository

import (
	"context"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// SequenceRepository persiste los contadores de numeración por periodo.
type SequenceRepository interface {
	// Get devuelve (nil, nil) si el periodo aún no tiene contador.
	Get(ctx context.Context, scope entity.Scope) (*entity.NumberingScope, error)
	// Save hace upsert del contador y reemplaza su lista de huecos.
	Save(ctx context.Context, n *entity.NumberingScope) error
	DeleteAll(ctx context.Context) error
}
