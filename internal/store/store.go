// Package store defines the persistence interface for Run headers and
// their immutable event logs. Implementations include PostgreSQL
// (source of truth), Redis (read-through cache), and in-memory (for
// testing).
package store

import (
	"context"

	"github.com/atmx/qumo-settle/internal/model"
)

// Store is the persistence interface. PostgreSQL is the source of
// truth; Redis provides a read-through cache layer.
type Store interface {
	// --- Run operations ---

	// CreateRun persists a new run header.
	CreateRun(ctx context.Context, run *model.Run) error

	// GetRun retrieves a run by its ID.
	GetRun(ctx context.Context, id string) (*model.Run, error)

	// ListRuns returns every run, most recently created first.
	ListRuns(ctx context.Context) ([]model.Run, error)

	// UpdateRunStatus transitions a run to a terminal or intermediate
	// status, recording its result/error payload and, for terminal
	// statuses, its completion time.
	UpdateRunStatus(ctx context.Context, id string, status model.RunStatus, result, errMsg string) error

	// --- Immutable event log ---

	// InsertRunEvent appends an immutable stage event.
	InsertRunEvent(ctx context.Context, event *model.RunEvent) error

	// GetRunEvents returns every event for a run, in Seq order.
	GetRunEvents(ctx context.Context, runID string) ([]model.RunEvent, error)
}
