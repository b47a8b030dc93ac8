package qumo

import "errors"

// Error taxonomy for the QUMO reduction pipeline. Each stage wraps one
// of these sentinels with fmt.Errorf("%w: ...") to attach the offending
// constraint/expression/value, following the contract package's
// ParseTicker convention of sentinel + wrapped detail.
var (
	// ErrModelInfeasible is returned when an envelope collapses to
	// Infeasible while boxifying a constraint.
	ErrModelInfeasible = errors.New("qumo: model infeasible")

	// ErrUnboundedExpression is returned when limit inference reaches a
	// variable with neither a fix, a binary flag, nor two-sided bounds.
	ErrUnboundedExpression = errors.New("qumo: unbounded expression")

	// ErrInvalidPenalty is returned for a negative penalty weight.
	ErrInvalidPenalty = errors.New("qumo: invalid penalty weight")

	// ErrUnsupportedConstraint is returned for Semiinteger/Semicontinuous
	// sets, or for any constraint shape reaching the equation converter
	// outside the expected Box(l, u=1) or EqualTo shapes.
	ErrUnsupportedConstraint = errors.New("qumo: unsupported constraint")
)
