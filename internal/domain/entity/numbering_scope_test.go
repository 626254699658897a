package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

func TestNumberingScope_Next(t *testing.T) {
	n := entity.NewNumberingScope(entity.Scope{Year: 2025, Month: 1})
	assert.Equal(t, 1, n.Next())
	assert.Equal(t, 2, n.Next())

	n.Gaps = []int{1}
	assert.Equal(t, 1, n.Next(), "primero se reutilizan los huecos")
	assert.Equal(t, 3, n.Next())
	assert.Equal(t, 3, n.LastSeq)
}

func TestScopeOf(t *testing.T) {
	s := entity.ScopeOf(time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, entity.Scope{Year: 2025, Month: 3}, s)
	assert.Equal(t, "2025-03", s.String())
}

func TestInvoice_IsLocked(t *testing.T) {
	inv := entity.NewDraftInvoice("i1", "j1", time.Now())
	assert.False(t, inv.IsLocked())

	now := time.Now()
	inv.SentAt = &now
	assert.True(t, inv.IsLocked())
}

func TestInvoice_DueDate(t *testing.T) {
	inv := entity.NewDraftInvoice("i1", "j1", time.Now())
	assert.Nil(t, inv.DueDate())

	issue := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	inv.IssueDate = &issue
	inv.DueDays = 14
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), *inv.DueDate())
}
