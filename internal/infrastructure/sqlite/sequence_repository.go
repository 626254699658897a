package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/jobledger/internal/domain/entity"
	"github.com/jhoicas/jobledger/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo persiste los contadores por periodo y su lista de huecos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) Get(ctx context.Context, scope entity.Scope) (*entity.NumberingScope, error) {
	n := entity.NewNumberingScope(scope)
	var updatedAt string
	err := r.q.QueryRowContext(ctx,
		`SELECT last_seq, updated_at FROM numbering_scopes WHERE year = ? AND month = ?`,
		scope.Year, scope.Month,
	).Scan(&n.LastSeq, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get numbering scope: %w", err)
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("get numbering scope: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT seq FROM numbering_gaps WHERE year = ? AND month = ? ORDER BY seq`,
		scope.Year, scope.Month,
	)
	if err != nil {
		return nil, fmt.Errorf("list numbering gaps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var seq int
		if err := rows.Scan(&seq); err != nil {
			return nil, fmt.Errorf("scan numbering gap: %w", err)
		}
		n.Gaps = append(n.Gaps, seq)
	}
	return n, rows.Err()
}

func (r *SequenceRepo) Save(ctx context.Context, n *entity.NumberingScope) error {
	const upsert = `
		INSERT INTO numbering_scopes (year, month, last_seq, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (year, month) DO UPDATE SET last_seq = excluded.last_seq, updated_at = excluded.updated_at`
	if _, err := r.q.ExecContext(ctx, upsert, n.Year, n.Month, n.LastSeq, formatTime(n.UpdatedAt)); err != nil {
		return fmt.Errorf("save numbering scope: %w", err)
	}
	if _, err := r.q.ExecContext(ctx,
		`DELETE FROM numbering_gaps WHERE year = ? AND month = ?`, n.Year, n.Month,
	); err != nil {
		return fmt.Errorf("clear numbering gaps: %w", err)
	}
	for _, seq := range n.Gaps {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO numbering_gaps (year, month, seq) VALUES (?, ?, ?)`, n.Year, n.Month, seq,
		); err != nil {
			return fmt.Errorf("insert numbering gap: %w", err)
		}
	}
	return nil
}

func (r *SequenceRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM numbering_gaps`); err != nil {
		return fmt.Errorf("delete numbering gaps: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, `DELETE FROM numbering_scopes`); err != nil {
		return fmt.Errorf("delete numbering scopes: %w", err)
	}
	return nil
}
