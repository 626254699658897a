package repository

import (
	"context"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// SettingsRepository persiste la fila única de configuración.
type SettingsRepository interface {
	// Get devuelve (nil, nil) antes del primer arranque.
	Get(ctx context.Context) (*entity.Settings, error)
	// Save hace upsert de la fila con id = entity.SettingsID.
	Save(ctx context.Context, s *entity.Settings) error
	DeleteAll(ctx context.Context) error
}
