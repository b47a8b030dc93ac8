// Package qumo implements Core A: the reducer that rewrites a
// mixed-variable linear/quadratic model into a Quadratic Unconstrained
// Mixed Optimization (QUMO) instance. The pipeline is
//
//	Model -> Boxify -> ToEquations -> ToPenalties -> Extract
//
// Every stage is pure with respect to the caller: each exposes an
// in-place variant (mutates the *Model argument) and a cloning variant
// (deep-copies first), matching the concurrency model in the spec — a
// single Model is owned by its caller and never mutated from multiple
// goroutines at once.
package qumo

import (
	"sort"

	"github.com/google/uuid"
)

// Sense is the optimization direction of a Model's objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

// Variable is a dense, 1-based entry in a Model's variable table. Its
// capabilities mirror the external contract the spec assumes: fixed
// value, binary flag, and optional one- or two-sided bounds.
type Variable struct {
	index    int
	name     string
	binary   bool
	fixed    bool
	fixValue float64
	hasLower bool
	lower    float64
	hasUpper bool
	upper    float64
}

// Index returns the variable's dense 1-based position in the model.
func (v *Variable) Index() int { return v.index }

// Name returns the variable's display name.
func (v *Variable) Name() string { return v.name }

// IsBinary reports whether the variable is constrained to {0,1}.
func (v *Variable) IsBinary() bool { return v.binary }

// IsFixed reports whether the variable has been fixed to a single value.
func (v *Variable) IsFixed() bool { return v.fixed }

// FixValue returns the fixed value. Only meaningful when IsFixed().
func (v *Variable) FixValue() float64 { return v.fixValue }

// HasLowerBound reports whether a finite lower bound is set.
func (v *Variable) HasLowerBound() bool { return v.hasLower }

// LowerBound returns the lower bound. Only meaningful when HasLowerBound().
func (v *Variable) LowerBound() float64 { return v.lower }

// HasUpperBound reports whether a finite upper bound is set.
func (v *Variable) HasUpperBound() bool { return v.hasUpper }

// UpperBound returns the upper bound. Only meaningful when HasUpperBound().
func (v *Variable) UpperBound() float64 { return v.upper }

// Fix marks the variable as fixed to v, for fixed-then-inferred scenarios.
func (v *Variable) Fix(value float64) {
	v.fixed = true
	v.fixValue = value
}

// SetBounds sets a (possibly one-sided) bound pair on the variable.
func (v *Variable) SetBounds(hasLower bool, lower float64, hasUpper bool, upper float64) {
	v.hasLower, v.lower = hasLower, lower
	v.hasUpper, v.upper = hasUpper, upper
}

func (v *Variable) clone() *Variable {
	c := *v
	return &c
}

// Handle identifies a constraint in a Model. Constraints are deleted and
// re-added under a fresh Handle as each reduction stage rewrites them
// destructively, preserving the constraint's display Name across the
// rewrite.
type Handle uuid.UUID

// Constraint pairs a linear function with the set it must lie in.
type Constraint struct {
	Name string
	Func Aff
	Set  CSet
}

// Model owns a dense variable table, a named constraint table, and a
// quadratic objective. Iteration over variables, constraints, and
// affine terms is always insertion-ordered, since later stages
// (slack numbering, penalty accumulation, c-vector assembly) depend on
// determinism.
type Model struct {
	sense       Sense
	variables   []*Variable
	constraints map[Handle]*Constraint
	order       []Handle
	objective   Quad
}

// NewModel returns an empty model optimizing in the given sense.
func NewModel(sense Sense) *Model {
	return &Model{
		sense:       sense,
		constraints: make(map[Handle]*Constraint),
	}
}

// Sense returns the model's optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// AddVariable appends a new variable and returns it. hasLower/hasUpper
// select which of lower/upper are actually bounds versus ignored.
func (m *Model) AddVariable(name string, binary bool, hasLower bool, lower float64, hasUpper bool, upper float64) *Variable {
	v := &Variable{
		index:    len(m.variables) + 1,
		name:     name,
		binary:   binary,
		hasLower: hasLower,
		lower:    lower,
		hasUpper: hasUpper,
		upper:    upper,
	}
	m.variables = append(m.variables, v)
	return v
}

// Variables returns the model's variable table in index order.
func (m *Model) Variables() []*Variable { return m.variables }

// Variable returns the variable at the given 1-based index.
func (m *Model) Variable(index int) *Variable { return m.variables[index-1] }

// NumVariables returns the number of variables in the model.
func (m *Model) NumVariables() int { return len(m.variables) }

// AddConstraint adds a new named constraint and returns its handle.
func (m *Model) AddConstraint(name string, f Aff, set CSet) Handle {
	h := Handle(uuid.New())
	m.constraints[h] = &Constraint{Name: name, Func: f.Clone(), Set: set}
	m.order = append(m.order, h)
	return h
}

// DeleteConstraint removes a constraint by handle. Deleting an unknown
// handle is a no-op, since callers only ever delete handles they hold.
func (m *Model) DeleteConstraint(h Handle) {
	if _, ok := m.constraints[h]; !ok {
		return
	}
	delete(m.constraints, h)
	for i, hh := range m.order {
		if hh == h {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Constraint looks up a constraint by handle.
func (m *Model) Constraint(h Handle) (*Constraint, bool) {
	c, ok := m.constraints[h]
	return c, ok
}

// Constraints returns the handles of the model's constraints in
// insertion order; look each one up with Constraint.
func (m *Model) Constraints() []Handle {
	out := make([]Handle, len(m.order))
	copy(out, m.order)
	return out
}

// NumConstraints returns the number of live constraints.
func (m *Model) NumConstraints() int { return len(m.order) }

// Objective returns the model's objective (affine + quadratic terms).
func (m *Model) Objective() Quad { return m.objective }

// SetObjective replaces the model's objective.
func (m *Model) SetObjective(q Quad) { m.objective = q.Clone() }

// AddToObjective accumulates q into the current objective, in place.
// Used by the penalty substitutor to fold penalty terms in without
// disturbing the rest of the objective.
func (m *Model) AddToObjective(q Quad) { m.objective.AddInPlace(q) }

// Clone deep-copies the model: a fresh variable table, fresh constraint
// map (same handles, independent constraint/Aff values), and an
// independent objective. Used by the cloning variant of every
// reduction stage.
func (m *Model) Clone() *Model {
	out := &Model{
		sense:       m.sense,
		constraints: make(map[Handle]*Constraint, len(m.constraints)),
		order:       append([]Handle(nil), m.order...),
		objective:   m.objective.Clone(),
	}
	out.variables = make([]*Variable, len(m.variables))
	for i, v := range m.variables {
		out.variables[i] = v.clone()
	}
	for h, c := range m.constraints {
		out.constraints[h] = &Constraint{Name: c.Name, Func: c.Func.Clone(), Set: c.Set}
	}
	return out
}

// BinaryIndices returns the sorted 1-based indices of binary variables.
func (m *Model) BinaryIndices() []int {
	out := make([]int, 0)
	for _, v := range m.variables {
		if v.binary {
			out = append(out, v.index)
		}
	}
	sort.Ints(out)
	return out
}

// Names returns the ordered display names of all variables.
func (m *Model) Names() []string {
	out := make([]string, len(m.variables))
	for i, v := range m.variables {
		out[i] = v.name
	}
	return out
}
