package budget

import (
	"context"
	"sync"

	"budget/internal/rowstore"
)

// State holds the current domain snapshot for the process. It replaces the
// implicit rebuild-on-every-interaction of a script runtime with an explicit
// invalidate-then-reload cycle: mutations call Invalidate, the next Current
// reloads from the row store.
type State struct {
	mu   sync.Mutex
	cats rowstore.Table
	exps rowstore.Table
	snap *Snapshot
}

func NewState(cats, exps rowstore.Table) *State {
	return &State{cats: cats, exps: exps}
}

// Current returns the cached snapshot, loading it from the row store when
// none is cached yet.
func (s *State) Current(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		s.snap = Load(ctx, s.cats, s.exps)
	}
	return s.snap
}

// Reload discards any cached snapshot and loads a fresh one.
func (s *State) Reload(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Load(ctx, s.cats, s.exps)
	return s.snap
}

// Invalidate drops the cached snapshot so the next Current reloads.
func (s *State) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
}
