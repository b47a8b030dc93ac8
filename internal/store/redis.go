package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atmx/qumo-settle/internal/model"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis read-through
// cache. Writes go to the primary store; CreateRun then caches the new
// run, while the other writes invalidate the cached entry. Reads check
// Redis first then fall back to the primary.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// --- Writes (write to primary, then cache or invalidate) ---

func (s *CachedStore) CreateRun(ctx context.Context, r *model.Run) error {
	if err := s.primary.CreateRun(ctx, r); err != nil {
		return err
	}
	s.cacheRun(ctx, r)
	return nil
}

func (s *CachedStore) UpdateRunStatus(ctx context.Context, id string, status model.RunStatus, result, errMsg string) error {
	if err := s.primary.UpdateRunStatus(ctx, id, status, result, errMsg); err != nil {
		return err
	}
	// Invalidate cache; next read will re-populate.
	s.rdb.Del(ctx, runKey(id))
	return nil
}

func (s *CachedStore) InsertRunEvent(ctx context.Context, e *model.RunEvent) error {
	if err := s.primary.InsertRunEvent(ctx, e); err != nil {
		return err
	}
	// Invalidate the cached event log for this run.
	s.rdb.Del(ctx, eventsKey(e.RunID))
	return nil
}

// --- Read-through (check cache first) ---

func (s *CachedStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	data, err := s.rdb.Get(ctx, runKey(id)).Bytes()
	if err == nil {
		var r model.Run
		if json.Unmarshal(data, &r) == nil {
			return &r, nil
		}
	}

	r, err := s.primary.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cacheRun(ctx, r)
	return r, nil
}

func (s *CachedStore) GetRunEvents(ctx context.Context, runID string) ([]model.RunEvent, error) {
	data, err := s.rdb.Get(ctx, eventsKey(runID)).Bytes()
	if err == nil {
		var events []model.RunEvent
		if json.Unmarshal(data, &events) == nil {
			return events, nil
		}
	}

	events, err := s.primary.GetRunEvents(ctx, runID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(events); err == nil {
		s.rdb.Set(ctx, eventsKey(runID), data, s.ttl)
	}
	return events, nil
}

// --- Passthrough (not cached) ---

func (s *CachedStore) ListRuns(ctx context.Context) ([]model.Run, error) {
	return s.primary.ListRuns(ctx)
}

// --- Cache helpers ---

func (s *CachedStore) cacheRun(ctx context.Context, r *model.Run) {
	if data, err := json.Marshal(r); err == nil {
		s.rdb.Set(ctx, runKey(r.ID), data, s.ttl)
	}
}

func runKey(id string) string      { return fmt.Sprintf("run:%s", id) }
func eventsKey(runID string) string { return fmt.Sprintf("run_events:%s", runID) }
