package repository

import (
	"context"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice (una por Job).
// Los Get devuelven (nil, nil) cuando no existe la fila.
type InvoiceRepository interface {
	// Create persiste la factura; un segundo registro para el mismo job devuelve domain.ErrDuplicate.
	Create(ctx context.Context, invoice *entity.Invoice) error
	// Update reescribe todos los campos mutables (estado, numeración, totales, marcadores).
	Update(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByJob(ctx context.Context, jobID string) (*entity.Invoice, error)

	// ListByScope devuelve las facturas activas (prepared|issued) del periodo, ordenadas por consecutivo.
	ListByScope(ctx context.Context, scope entity.Scope) ([]*entity.Invoice, error)
	ListAll(ctx context.Context) ([]*entity.Invoice, error)
	DeleteAll(ctx context.Context) error
}
