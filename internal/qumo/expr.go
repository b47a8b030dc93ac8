package qumo

import "github.com/atmx/qumo-settle/internal/numeric"

// Arith is the numeric engine Core A reduces over: float64 with a fixed
// absolute epsilon (no relative component), since the downstream HiGHS
// backend is float64-native.
var Arith = numeric.Float64Arithmetic{}

// CSet is the right-hand side of a scalar constraint.
type CSet = numeric.ConstraintSet[float64]

// GreaterThan builds a CSet requiring f >= l.
func GreaterThan(l float64) CSet { return numeric.NewGreaterThan(l) }

// LessThan builds a CSet requiring f <= u.
func LessThan(u float64) CSet { return numeric.NewLessThan(u) }

// EqualTo builds a CSet requiring f == v.
func EqualTo(v float64) CSet { return numeric.NewEqualTo(v) }

// IntervalSet builds a CSet requiring l <= f <= u. Panics if l > u,
// per the spec's invariant that Interval sets must satisfy l <= u even
// though the upstream model does not check this for us.
func IntervalSet(l, u float64) CSet { return numeric.NewInterval(Arith, l, u) }

// Aff is an affine expression: a constant plus an insertion-ordered
// mapping from variable index to coefficient. Absent keys have an
// implicit coefficient of zero.
type Aff struct {
	Constant float64
	terms    map[int]float64
	order    []int
}

// NewAff returns an affine expression equal to the constant k.
func NewAff(k float64) Aff {
	return Aff{Constant: k, terms: make(map[int]float64)}
}

// SetTerm sets the coefficient of variable index idx, overwriting any
// existing coefficient. Adds idx to the insertion order the first time
// it is seen.
func (a *Aff) SetTerm(idx int, coef float64) {
	if a.terms == nil {
		a.terms = make(map[int]float64)
	}
	if _, ok := a.terms[idx]; !ok {
		a.order = append(a.order, idx)
	}
	a.terms[idx] = coef
}

// AddTerm accumulates coef into variable idx's existing coefficient.
func (a *Aff) AddTerm(idx int, coef float64) {
	a.SetTerm(idx, a.Term(idx)+coef)
}

// Term returns the coefficient of variable idx, or 0 if absent.
func (a Aff) Term(idx int) float64 { return a.terms[idx] }

// Terms returns the (index, coefficient) pairs in insertion order.
func (a Aff) Terms() []IndexCoef {
	out := make([]IndexCoef, len(a.order))
	for i, idx := range a.order {
		out[i] = IndexCoef{Index: idx, Coef: a.terms[idx]}
	}
	return out
}

// IndexCoef is a single (variable index, coefficient) pair.
type IndexCoef struct {
	Index int
	Coef  float64
}

// Clone returns an independent copy of a.
func (a Aff) Clone() Aff {
	out := Aff{Constant: a.Constant, terms: make(map[int]float64, len(a.terms)), order: append([]int(nil), a.order...)}
	for k, v := range a.terms {
		out.terms[k] = v
	}
	return out
}

// PairKey is a canonical unordered variable pair {i, j}, always stored
// with First <= Second.
type PairKey struct{ First, Second int }

func newPairKey(i, j int) PairKey {
	if i > j {
		i, j = j, i
	}
	return PairKey{First: i, Second: j}
}

// Quad is a quadratic expression: an affine part plus an insertion-
// ordered mapping from unordered variable pair {i,j} (i == j permitted)
// to a coefficient.
type Quad struct {
	Aff
	quadTerms map[PairKey]float64
	quadOrder []PairKey
}

// NewQuad returns a quadratic expression equal to the constant k.
func NewQuad(k float64) Quad {
	return Quad{Aff: NewAff(k), quadTerms: make(map[PairKey]float64)}
}

// FromAff lifts an affine expression into a (purely linear) quadratic one.
func FromAff(a Aff) Quad {
	return Quad{Aff: a.Clone(), quadTerms: make(map[PairKey]float64)}
}

// AddQuadTerm accumulates coef into the coefficient of pair {i,j}.
func (q *Quad) AddQuadTerm(i, j int, coef float64) {
	if q.quadTerms == nil {
		q.quadTerms = make(map[PairKey]float64)
	}
	key := newPairKey(i, j)
	if _, ok := q.quadTerms[key]; !ok {
		q.quadOrder = append(q.quadOrder, key)
	}
	q.quadTerms[key] += coef
}

// QuadTerm returns the coefficient of pair {i,j}, or 0 if absent.
func (q Quad) QuadTerm(i, j int) float64 { return q.quadTerms[newPairKey(i, j)] }

// QuadTerms returns the (pair, coefficient) entries in insertion order.
func (q Quad) QuadTerms() []PairCoef {
	out := make([]PairCoef, len(q.quadOrder))
	for i, key := range q.quadOrder {
		out[i] = PairCoef{Pair: key, Coef: q.quadTerms[key]}
	}
	return out
}

// PairCoef is a single (variable pair, coefficient) entry.
type PairCoef struct {
	Pair PairKey
	Coef float64
}

// Clone returns an independent copy of q.
func (q Quad) Clone() Quad {
	out := Quad{Aff: q.Aff.Clone(), quadTerms: make(map[PairKey]float64, len(q.quadTerms)), quadOrder: append([]PairKey(nil), q.quadOrder...)}
	for k, v := range q.quadTerms {
		out.quadTerms[k] = v
	}
	return out
}

// AddInPlace folds other's affine and quadratic terms into q.
func (q *Quad) AddInPlace(other Quad) {
	q.Constant += other.Constant
	for _, t := range other.Aff.Terms() {
		q.Aff.AddTerm(t.Index, t.Coef)
	}
	for _, t := range other.QuadTerms() {
		q.AddQuadTerm(t.Pair.First, t.Pair.Second, t.Coef)
	}
}
