// Package api provides the HTTP handlers wiring Core A (reduction)
// and Core B (settlement) to persistent Run storage and a
// run-progress WebSocket hub.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/atmx/qumo-settle/internal/market"
	"github.com/atmx/qumo-settle/internal/model"
	"github.com/atmx/qumo-settle/internal/qumo"
	"github.com/atmx/qumo-settle/internal/runhub"
	"github.com/atmx/qumo-settle/internal/scenarioio"
	"github.com/atmx/qumo-settle/internal/settlement"
	"github.com/atmx/qumo-settle/internal/solverbackend"
	"github.com/atmx/qumo-settle/internal/store"
)

// Service holds the dependencies every handler needs: persistence, the
// run-progress hub, and a solver backend factory (a factory, not a
// shared instance, since HiGHSBackend holds per-solve state).
type Service struct {
	store      store.Store
	hub        *runhub.Hub
	newBackend func() solverbackend.Backend
}

// NewService creates a new API service. Pass nil for hub if
// WebSocket broadcasting is not needed.
func NewService(st store.Store, hub *runhub.Hub, newBackend func() solverbackend.Backend) *Service {
	return &Service{store: st, hub: hub, newBackend: newBackend}
}

// --- Core A: reductions ---

// CreateReduction handles POST /api/v1/reductions. The request body is
// a ModelRequest; the run executes synchronously and the response is
// the created Run.
func (s *Service) CreateReduction(w http.ResponseWriter, r *http.Request) {
	var req ModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	m, err := buildModel(req)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	run := s.startRun(ctx, model.RunKindReduce, req.Label)

	lambda := req.Lambda
	inst, warning, err := qumo.Reduce(m, lambda)
	if err != nil {
		s.failRun(ctx, run, err)
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if warning != nil {
		s.emitEvent(ctx, run.ID, "to_penalties", warning.String())
	}

	payload, _ := json.Marshal(toInstanceResponse(inst))
	s.succeedRun(ctx, run, string(payload))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// --- Core B: settlements ---

// CreateSettlement handles POST /api/v1/settlements. The request body
// is a market.Scenario as JSON, or (with ?format=csv) the CSV-like
// text format scenarioio.Parse reads.
func (s *Service) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	var scenario market.Scenario
	if r.URL.Query().Get("format") == "csv" {
		parsed, err := scenarioio.Parse(r.Body)
		if err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		scenario = parsed
	} else if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mkt, err := market.Assemble(scenario)
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	run := s.startRun(ctx, model.RunKindSettle, r.URL.Query().Get("label"))

	s.emitEvent(ctx, run.ID, "assemble", fmt.Sprintf("%d parties, %d transactions", mkt.NumParties, mkt.NumTransactions))

	solved, err := settlement.Solve(s.newBackend(), mkt)
	if err != nil {
		s.failRun(ctx, run, err)
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.emitEvent(ctx, run.ID, "solve", fmt.Sprintf("selected %d of %d transactions", len(solved.Transactions), mkt.NumTransactions))

	if err := settlement.CheckMaximality(mkt, solved.Transactions); err != nil {
		slog.Warn("settlement solution is not maximal", "run_id", run.ID, "err", err)
	}

	payload, _ := json.Marshal(solved)
	s.succeedRun(ctx, run, string(payload))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// --- Run queries ---

// ListRuns handles GET /api/v1/runs.
func (s *Service) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context())
	if err != nil {
		writeError(w, "failed to list runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun handles GET /api/v1/runs/{runID}.
func (s *Service) GetRun(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run, err := s.store.GetRun(r.Context(), runID)
	if err != nil {
		writeError(w, "run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunEvents handles GET /api/v1/runs/{runID}/events.
func (s *Service) GetRunEvents(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	events, err := s.store.GetRunEvents(r.Context(), runID)
	if err != nil {
		writeError(w, "failed to get run events", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []model.RunEvent{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// --- Run bookkeeping shared by both cores ---

func (s *Service) startRun(ctx context.Context, kind model.RunKind, label string) *model.Run {
	run := &model.Run{
		ID:        uuid.New().String(),
		Kind:      kind,
		Status:    model.RunRunning,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		slog.Error("failed to persist run", "err", err)
	}
	return run
}

func (s *Service) emitEvent(ctx context.Context, runID, stage, message string) {
	evt := &model.RunEvent{
		ID:        uuid.New().String(),
		RunID:     runID,
		Stage:     stage,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.InsertRunEvent(ctx, evt); err != nil {
		slog.Error("failed to persist run event", "err", err)
	}
	if s.hub != nil {
		s.hub.Broadcast(runhub.Event{Type: "stage", RunID: runID, Stage: stage, Message: message})
	}
}

func (s *Service) succeedRun(ctx context.Context, run *model.Run, result string) {
	run.Status = model.RunSucceeded
	run.Result = result
	run.CompletedAt = time.Now().UTC()
	if err := s.store.UpdateRunStatus(ctx, run.ID, run.Status, run.Result, ""); err != nil {
		slog.Error("failed to persist run status", "err", err)
	}
	if s.hub != nil {
		s.hub.Broadcast(runhub.Event{Type: "completed", RunID: run.ID, Kind: string(run.Kind), Status: string(run.Status)})
	}
}

func (s *Service) failRun(ctx context.Context, run *model.Run, err error) {
	run.Status = model.RunFailed
	run.Error = err.Error()
	run.CompletedAt = time.Now().UTC()
	if dbErr := s.store.UpdateRunStatus(ctx, run.ID, run.Status, "", run.Error); dbErr != nil {
		slog.Error("failed to persist run status", "err", dbErr)
	}
	if s.hub != nil {
		s.hub.Broadcast(runhub.Event{Type: "completed", RunID: run.ID, Kind: string(run.Kind), Status: string(run.Status), Message: run.Error})
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
