package store

import (
	"context"
	"testing"
	"time"

	"github.com/atmx/qumo-settle/internal/model"
)

func TestMemoryStore_CreateAndGetRun(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	run := &model.Run{ID: "run-1", Kind: model.RunKindReduce, Status: model.RunRunning, Label: "test"}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Label != "test" || got.Status != model.RunRunning {
		t.Errorf("GetRun = %+v, want label=test status=running", got)
	}

	// GetRun returns a copy; mutating it must not affect the store.
	got.Label = "mutated"
	again, _ := s.GetRun(ctx, "run-1")
	if again.Label != "test" {
		t.Errorf("GetRun returned a shared pointer: second read saw %q", again.Label)
	}
}

func TestMemoryStore_CreateRunDuplicateIDFails(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	run := &model.Run{ID: "run-1"}

	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("first CreateRun: %v", err)
	}
	if err := s.CreateRun(ctx, run); err == nil {
		t.Fatalf("second CreateRun with same ID succeeded, want error")
	}
}

func TestMemoryStore_UpdateRunStatusSetsCompletedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	run := &model.Run{ID: "run-1", Status: model.RunRunning}
	if err := s.CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun: %v", err)
	}

	if err := s.UpdateRunStatus(ctx, "run-1", model.RunSucceeded, `{"ok":true}`, ""); err != nil {
		t.Fatalf("UpdateRunStatus: %v", err)
	}

	got, err := s.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != model.RunSucceeded {
		t.Errorf("Status = %s, want succeeded", got.Status)
	}
	if got.Result != `{"ok":true}` {
		t.Errorf("Result = %q, want the encoded payload", got.Result)
	}
	if got.CompletedAt.IsZero() {
		t.Errorf("CompletedAt was not set on a terminal status transition")
	}
}

func TestMemoryStore_RunEventsOrderedBySeq(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	stages := []string{"boxify", "to_equations", "to_penalties", "extract"}
	for i, stage := range stages {
		evt := &model.RunEvent{ID: stage, RunID: "run-1", Seq: i, Stage: stage}
		if err := s.InsertRunEvent(ctx, evt); err != nil {
			t.Fatalf("InsertRunEvent(%s): %v", stage, err)
		}
	}

	events, err := s.GetRunEvents(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRunEvents: %v", err)
	}
	if len(events) != len(stages) {
		t.Fatalf("got %d events, want %d", len(events), len(stages))
	}
	for i, stage := range stages {
		if events[i].Stage != stage {
			t.Errorf("events[%d].Stage = %q, want %q", i, events[i].Stage, stage)
		}
	}
}

func TestMemoryStore_ListRunsMostRecentFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	older := &model.Run{ID: "run-older", CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &model.Run{ID: "run-newer", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	if err := s.CreateRun(ctx, older); err != nil {
		t.Fatalf("CreateRun(older): %v", err)
	}
	if err := s.CreateRun(ctx, newer); err != nil {
		t.Fatalf("CreateRun(newer): %v", err)
	}

	runs, err := s.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != "run-newer" {
		t.Errorf("runs[0].ID = %q, want run-newer (most recent first)", runs[0].ID)
	}
}
