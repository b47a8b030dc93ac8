package numeric

// Kind discriminates the three shapes an Envelope can take.
type Kind int

const (
	// Infeasible is the absorbing state: no value satisfies the
	// accumulated constraints.
	Infeasible Kind = iota
	// Constant means the expression is provably equal to a single value.
	Constant
	// Box means the expression's feasible range is [Lower, Upper], with
	// Lower == Upper permitted (a tight but not yet collapsed interval).
	Box
)

// Envelope is a three-valued interval description of an expression's
// feasible range: Infeasible, Constant(v), or Box(l, u) with l <= u.
// The zero value is not meaningful; construct with NewInfeasible,
// NewConstant, or NewBox.
type Envelope[T any] struct {
	kind  Kind
	value T // valid when kind == Constant
	lower T // valid when kind == Box
	upper T // valid when kind == Box
	a     Arithmetic[T]
}

// NewInfeasible returns the absorbing Infeasible envelope.
func NewInfeasible[T any](a Arithmetic[T]) Envelope[T] {
	return Envelope[T]{kind: Infeasible, a: a}
}

// NewConstant returns an envelope that is exactly v.
func NewConstant[T any](a Arithmetic[T], v T) Envelope[T] {
	return Envelope[T]{kind: Constant, value: v, a: a}
}

// NewBox returns an envelope whose feasible range is [l, u]. l == u is a
// valid, tight box — distinct from Constant. It is the caller's
// programming error to call this with l > u; NewBox panics in that case
// so the invariant is caught at construction, as the spec requires.
func NewBox[T any](a Arithmetic[T], l, u T) Envelope[T] {
	if a.Cmp(l, u) > 0 {
		panic("numeric: NewBox requires lower <= upper")
	}
	return Envelope[T]{kind: Box, lower: l, upper: u, a: a}
}

// Kind reports which shape the envelope currently has.
func (e Envelope[T]) Kind() Kind { return e.kind }

// Value returns the constant value. Only meaningful when Kind() == Constant.
func (e Envelope[T]) Value() T { return e.value }

// Bounds returns the box endpoints. Only meaningful when Kind() == Box.
func (e Envelope[T]) Bounds() (lower, upper T) { return e.lower, e.upper }

// IsInfeasible reports whether the envelope is the absorbing Infeasible state.
func (e Envelope[T]) IsInfeasible() bool { return e.kind == Infeasible }

// Add returns e + s.
func (e Envelope[T]) Add(s T) Envelope[T] {
	switch e.kind {
	case Infeasible:
		return e
	case Constant:
		return NewConstant(e.a, e.a.Add(e.value, s))
	default: // Box
		return NewBox(e.a, e.a.Add(e.lower, s), e.a.Add(e.upper, s))
	}
}

// Sub returns e - s.
func (e Envelope[T]) Sub(s T) Envelope[T] {
	switch e.kind {
	case Infeasible:
		return e
	case Constant:
		return NewConstant(e.a, e.a.Sub(e.value, s))
	default: // Box
		return NewBox(e.a, e.a.Sub(e.lower, s), e.a.Sub(e.upper, s))
	}
}

// Mul returns e * s. Multiplying by (approximately) zero always collapses
// to Constant(0), even for Infeasible's siblings — but Infeasible itself
// remains absorbing and ignores s entirely.
func (e Envelope[T]) Mul(s T) Envelope[T] {
	if e.kind == Infeasible {
		return e
	}
	if e.a.IsApproxZero(s) {
		return NewConstant(e.a, e.a.Zero())
	}
	switch e.kind {
	case Constant:
		return NewConstant(e.a, e.a.Mul(e.value, s))
	default: // Box
		lo := e.a.Mul(e.lower, s)
		hi := e.a.Mul(e.upper, s)
		if e.a.Cmp(s, e.a.Zero()) < 0 {
			lo, hi = hi, lo
		}
		return NewBox(e.a, lo, hi)
	}
}

// Div returns e / s, or ErrDivideByZero if s is approximately zero.
func (e Envelope[T]) Div(s T) (Envelope[T], error) {
	if e.a.IsApproxZero(s) {
		return Envelope[T]{}, ErrDivideByZero
	}
	if e.kind == Infeasible {
		return e, nil
	}
	switch e.kind {
	case Constant:
		return NewConstant(e.a, e.a.Div(e.value, s)), nil
	default: // Box
		lo := e.a.Div(e.lower, s)
		hi := e.a.Div(e.upper, s)
		if e.a.Cmp(s, e.a.Zero()) < 0 {
			lo, hi = hi, lo
		}
		return NewBox(e.a, lo, hi), nil
	}
}
