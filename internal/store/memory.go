package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/atmx/qumo-settle/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for testing
// and development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu     sync.RWMutex
	runs   map[string]*model.Run
	events map[string][]model.RunEvent // runID -> events, in append order
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		runs:   make(map[string]*model.Run),
		events: make(map[string][]model.RunEvent),
	}
}

func (s *MemoryStore) CreateRun(_ context.Context, r *model.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[r.ID]; exists {
		return fmt.Errorf("run %s already exists", r.ID)
	}

	copy := *r
	s.runs[r.ID] = &copy
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (*model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s not found", id)
	}
	copy := *r
	return &copy, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].CreatedAt.After(runs[j].CreatedAt) })
	return runs, nil
}

func (s *MemoryStore) UpdateRunStatus(_ context.Context, id string, status model.RunStatus, result, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[id]
	if !ok {
		return fmt.Errorf("run %s not found", id)
	}
	r.Status = status
	r.Result = result
	r.Error = errMsg
	if status == model.RunSucceeded || status == model.RunFailed {
		r.CompletedAt = time.Now()
	}
	return nil
}

func (s *MemoryStore) InsertRunEvent(_ context.Context, e *model.RunEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[e.RunID] = append(s.events[e.RunID], *e)
	return nil
}

func (s *MemoryStore) GetRunEvents(_ context.Context, runID string) ([]model.RunEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[runID]
	out := make([]model.RunEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
