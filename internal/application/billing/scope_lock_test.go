package billing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

func TestScopeLocker_SerializesSameScope(t *testing.T) {
	l := NewScopeLocker()
	scope := entity.Scope{Year: 2025, Month: 1}

	unlock := l.Lock(scope)
	acquired := make(chan struct{})
	go func() {
		u := l.Lock(scope)
		close(acquired)
		u()
	}()

	select {
	case <-acquired:
		t.Fatal("el mismo periodo no debe poder bloquearse dos veces")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	<-acquired
}

func TestScopeLocker_IndependentScopes(t *testing.T) {
	l := NewScopeLocker()
	unlock := l.Lock(entity.Scope{Year: 2025, Month: 1})
	defer unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.Lock(entity.Scope{Year: 2025, Month: 2})()
	}()
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("otro periodo no debe esperar")
	}
	assert.Len(t, l.locks, 2)
}

func TestStatusForState(t *testing.T) {
	assert.Equal(t, entity.JobStatusOpen, StatusForState(entity.InvoiceStateDraft))
	assert.Equal(t, entity.JobStatusReadyToInvoice, StatusForState(entity.InvoiceStatePrepared))
	assert.Equal(t, entity.JobStatusAwaitingPayment, StatusForState(entity.InvoiceStateIssued))
}
