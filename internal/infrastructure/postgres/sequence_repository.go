package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo persiste los contadores por periodo; los huecos viven en una columna INTEGER[].
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Get(ctx context.Context, scope entity.Scope) (*entity.NumberingScope, error) {
	n := entity.NewNumberingScope(scope)
	var gaps []int32
	err := r.q.QueryRow(ctx,
		`SELECT last_seq, gaps, updated_at FROM numbering_scopes WHERE year = $1 AND month = $2 FOR UPDATE`,
		scope.Year, scope.Month,
	).Scan(&n.LastSeq, &gaps, &n.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get numbering scope: %w", err)
	}
	for _, g := range gaps {
		n.Gaps = append(n.Gaps, int(g))
	}
	n.UpdatedAt = n.UpdatedAt.UTC()
	return n, nil
}

func (r *SequenceRepo) Save(ctx context.Context, n *entity.NumberingScope) error {
	gaps := make([]int32, 0, len(n.Gaps))
	for _, g := range n.Gaps {
		gaps = append(gaps, int32(g))
	}
	query := `
		INSERT INTO numbering_scopes (year, month, last_seq, gaps, updated_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (year, month) DO UPDATE SET
		    last_seq = EXCLUDED.last_seq, gaps = EXCLUDED.gaps, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query, n.Year, n.Month, n.LastSeq, gaps, n.UpdatedAt); err != nil {
		return fmt.Errorf("save numbering scope: %w", err)
	}
	return nil
}

func (r *SequenceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM numbering_scopes`); err != nil {
		return fmt.Errorf("delete numbering scopes: %w", err)
	}
	return nil
}
