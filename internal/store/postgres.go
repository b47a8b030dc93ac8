package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atmx/qumo-settle/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateRun(ctx context.Context, r *model.Run) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, kind, status, label, result, error, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.Kind, r.Status, r.Label, r.Result, r.Error, r.CreatedAt, r.CompletedAt,
	)
	return err
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	var r model.Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, kind, status, label, result, error, created_at, completed_at
		 FROM runs WHERE id = $1`, id).
		Scan(&r.ID, &r.Kind, &r.Status, &r.Label, &r.Result, &r.Error, &r.CreatedAt, &r.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &r, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context) ([]model.Run, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, status, label, result, error, created_at, completed_at
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var r model.Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Status, &r.Label, &r.Result, &r.Error, &r.CreatedAt, &r.CompletedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) UpdateRunStatus(ctx context.Context, id string, status model.RunStatus, result, errMsg string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE runs
		 SET status = $2, result = $3, error = $4,
		     completed_at = CASE WHEN $2 IN ('succeeded', 'failed') THEN now() ELSE completed_at END
		 WHERE id = $1`,
		id, status, result, errMsg,
	)
	return err
}

func (s *PostgresStore) InsertRunEvent(ctx context.Context, e *model.RunEvent) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO run_events (id, run_id, seq, stage, message, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.RunID, e.Seq, e.Stage, e.Message, e.Timestamp,
	)
	return err
}

func (s *PostgresStore) GetRunEvents(ctx context.Context, runID string) ([]model.RunEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, run_id, seq, stage, message, timestamp
		 FROM run_events WHERE run_id = $1 ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.RunEvent
	for rows.Next() {
		var e model.RunEvent
		if err := rows.Scan(&e.ID, &e.RunID, &e.Seq, &e.Stage, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
