package billing

import (
	"sync"

	"github.com/jhoicas/jobledger/internal/domain/entity"
)

// ScopeLocker serializa Prepare y CancelPrepared por periodo (año, mes).
// Lectura del contador, reparto o desplazamiento de números y escritura forman
// una sección crítica por periodo; periodos distintos no se bloquean entre sí.
type ScopeLocker struct {
	mu    sync.Mutex
	locks map[entity.Scope]*sync.Mutex
}

// NewScopeLocker construye el locker.
func NewScopeLocker() *ScopeLocker {
	return &ScopeLocker{locks: make(map[entity.Scope]*sync.Mutex)}
}

// Lock bloquea el periodo y devuelve la función que lo libera.
func (l *ScopeLocker) Lock(scope entity.Scope) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[scope]
	if !ok {
		m = &sync.Mutex{}
		l.locks[scope] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
