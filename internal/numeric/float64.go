package numeric

import "math"

// Float64Epsilon is the absolute tolerance used by Float64Arithmetic:
// a value within Float64Epsilon of zero counts as zero. No tolerance
// scaled to the operands' magnitude is applied. Centralized here per the
// spec's numeric-tolerance design note: nothing else in the module
// hand-rolls an epsilon check.
const Float64Epsilon = 1e-12

// Float64Arithmetic implements Arithmetic[float64] with a fixed absolute
// epsilon tolerance (Float64Epsilon); it has no relative component, so
// large values are compared as strictly as small ones. This is the numeric engine
// used by the QUMO reducer, since the downstream solver backend (HiGHS)
// is float64-native.
type Float64Arithmetic struct{}

var _ Arithmetic[float64] = Float64Arithmetic{}

func (Float64Arithmetic) Add(a, b float64) float64 { return a + b }
func (Float64Arithmetic) Sub(a, b float64) float64 { return a - b }
func (Float64Arithmetic) Mul(a, b float64) float64 { return a * b }
func (Float64Arithmetic) Div(a, b float64) float64 { return a / b }
func (Float64Arithmetic) Zero() float64            { return 0 }

func (Float64Arithmetic) Cmp(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (Float64Arithmetic) IsApproxZero(a float64) bool {
	return math.Abs(a) <= Float64Epsilon
}
