// Package solverbackend wraps the HiGHS solver behind the capability
// abstraction the spec names: set_optimizer, set_silent, optimize,
// termination_status, value. Gurobi is named in the spec as an
// alternative backend but, per spec §6, only HiGHS is required — no
// Gurobi implementation is provided.
package solverbackend

import (
	"errors"
	"fmt"
	"math"
	"sort"

	highs "github.com/bartolsthoorn/gohighs/highs"
)

// ErrUnsupportedOptimizer is returned by SetOptimizer for any name
// other than "highs".
var ErrUnsupportedOptimizer = errors.New("solverbackend: unsupported optimizer")

// ErrSolverFailure is returned by Solve when the backend terminates
// with any status other than optimal.
var ErrSolverFailure = errors.New("solverbackend: non-optimal termination")

// Status mirrors the handful of HiGHS termination outcomes the spec's
// error taxonomy distinguishes.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "other"
	}
}

func fromHighsStatus(s highs.ModelStatus) Status {
	switch s {
	case highs.ModelStatusOptimal:
		return StatusOptimal
	case highs.ModelStatusInfeasible, highs.ModelStatusUnboundedOrInfeasible:
		return StatusInfeasible
	case highs.ModelStatusUnbounded:
		return StatusUnbounded
	default:
		return StatusOther
	}
}

// Problem is a solver-ready model: the underlying HiGHS model plus the
// per-column metadata (display name, binary flag) the solve() return
// contract needs.
type Problem struct {
	Model  *highs.Model
	Names  []string
	Binary []bool
}

// Backend is the solver capability abstraction from spec §6.
type Backend interface {
	SetOptimizer(name string) error
	SetSilent(silent bool)
	Optimize(p *Problem) error
	TerminationStatus() Status
	Value(col int) float64
}

// HiGHSBackend implements Backend over github.com/bartolsthoorn/gohighs.
type HiGHSBackend struct {
	silent   bool
	solution *highs.Solution
}

// NewHiGHSBackend returns a fresh, unsolved HiGHS backend.
func NewHiGHSBackend() *HiGHSBackend { return &HiGHSBackend{} }

var _ Backend = (*HiGHSBackend)(nil)

// SetOptimizer accepts only "highs" — any other name is rejected, since
// this backend has no other implementation to dispatch to.
func (b *HiGHSBackend) SetOptimizer(name string) error {
	if name != "highs" {
		return fmt.Errorf("%w: %s", ErrUnsupportedOptimizer, name)
	}
	return nil
}

// SetSilent toggles solver log output.
func (b *HiGHSBackend) SetSilent(silent bool) { b.silent = silent }

// Optimize solves p and stores the resulting solution for subsequent
// TerminationStatus/Value calls.
func (b *HiGHSBackend) Optimize(p *Problem) error {
	sol, err := p.Model.Solve(highs.WithOutput(!b.silent))
	if err != nil {
		return err
	}
	b.solution = sol
	return nil
}

// TerminationStatus reports the outcome of the last Optimize call.
func (b *HiGHSBackend) TerminationStatus() Status {
	if b.solution == nil {
		return StatusOther
	}
	return fromHighsStatus(b.solution.Status)
}

// Value returns the optimal value of column col from the last solve.
func (b *HiGHSBackend) Value(col int) float64 {
	if b.solution == nil {
		return 0
	}
	return b.solution.Value(col)
}

// Result is the return contract from spec §6: if every variable in
// the problem is binary, Continuous is nil and Binaries holds the
// sorted 1-based indices of variables pinned to 1; otherwise
// Continuous additionally maps every non-binary variable's name to its
// continuous optimal value.
type Result struct {
	Binaries   []int
	Continuous map[string]float64
}

const binaryTolerance = 1e-6

// Solve drives a Backend through set_optimizer("highs") ->
// set_silent(true) -> optimize -> termination_status, and shapes the
// result per the spec's solve() contract. A non-optimal termination
// status is fatal: ErrSolverFailure wraps the status.
func Solve(b Backend, p *Problem) (*Result, error) {
	if err := b.SetOptimizer("highs"); err != nil {
		return nil, err
	}
	b.SetSilent(true)
	if err := b.Optimize(p); err != nil {
		return nil, err
	}

	status := b.TerminationStatus()
	if status != StatusOptimal {
		return nil, fmt.Errorf("%w: %s", ErrSolverFailure, status)
	}

	allBinary := true
	var selected []int
	for i, isBinary := range p.Binary {
		if !isBinary {
			allBinary = false
			continue
		}
		if math.Abs(b.Value(i)-1) < binaryTolerance {
			selected = append(selected, i+1)
		}
	}
	sort.Ints(selected)

	if allBinary {
		return &Result{Binaries: selected}, nil
	}

	continuous := make(map[string]float64)
	for i, isBinary := range p.Binary {
		if !isBinary {
			continuous[p.Names[i]] = b.Value(i)
		}
	}
	return &Result{Binaries: selected, Continuous: continuous}, nil
}
