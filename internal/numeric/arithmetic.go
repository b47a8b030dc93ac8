// Package numeric provides the interval-arithmetic engine (Envelope) that
// the QUMO reducer uses to track the feasible range of linear expressions.
//
// The engine is parameterized over the underlying numeric type via the
// Arithmetic interface, so the same Envelope logic works bit-exactly over
// shopspring/decimal and approximately (epsilon-tolerant) over float64.
// Every "is this approximately zero/equal" decision is centralized here,
// per the spec's numeric-tolerance design note — implementations must not
// scatter their own epsilon checks.
package numeric

import "errors"

// ErrDivideByZero is returned by Div when the divisor is approximately zero.
var ErrDivideByZero = errors.New("numeric: division by zero")

// Arithmetic supplies the operations Envelope needs for a numeric type T.
// Implementations must be total: Add/Sub/Mul/Cmp never panic, and Div only
// fails (via the caller checking IsApproxZero first) on a zero divisor.
type Arithmetic[T any] interface {
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Div(a, b T) T
	Zero() T

	// Cmp returns -1, 0, or +1 as a < b, a == b, a > b.
	Cmp(a, b T) int

	// IsApproxZero reports whether a is within tolerance of zero.
	IsApproxZero(a T) bool
}

// ApproxEqual reports whether a and b are within tolerance of each other,
// using the same tolerance IsApproxZero applies to a-b.
func ApproxEqual[T any](a Arithmetic[T], x, y T) bool {
	return a.IsApproxZero(a.Sub(x, y))
}

// Min returns the smaller of a, b per Cmp.
func Min[T any](a Arithmetic[T], x, y T) T {
	if a.Cmp(x, y) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of a, b per Cmp.
func Max[T any](a Arithmetic[T], x, y T) T {
	if a.Cmp(x, y) >= 0 {
		return x
	}
	return y
}
