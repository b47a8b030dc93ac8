package qumo

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/numeric"
)

// InferLimits computes an envelope for the affine expression f, given
// the model's variable table. For each term coef*x_i it sums the
// contribution of x_i's minimum and maximum possible values:
//
//   - fixed variable: coef * fix_value on both ends.
//   - binary variable: coef contributes to max and 0 to min when
//     coef > 0 (reversed when coef < 0).
//   - bounded continuous: coef * {lower, upper}, paired by sign.
//   - otherwise: ErrUnboundedExpression.
//
// The result is always a Box (never Infeasible or Constant) — those
// only arise from a subsequent Merge against a constraint set.
func InferLimits(m *Model, f Aff) (numeric.Envelope[float64], error) {
	min, max := f.Constant, f.Constant

	for _, t := range f.Terms() {
		if t.Coef == 0 {
			continue
		}
		v := m.Variable(t.Index)

		loContrib, hiContrib, ok := termRange(v, t.Coef)
		if !ok {
			return numeric.Envelope[float64]{}, fmt.Errorf("%w: variable %q has coefficient %v but neither a fix, binary flag, nor two-sided bound", ErrUnboundedExpression, v.Name(), t.Coef)
		}
		min += loContrib
		max += hiContrib
	}

	return numeric.NewBox(Arith, min, max), nil
}

// termRange returns (min contribution, max contribution) of coef*x for
// a single variable x, or ok=false if x is unbounded for this purpose.
func termRange(v *Variable, coef float64) (lo, hi float64, ok bool) {
	switch {
	case v.IsFixed():
		c := coef * v.FixValue()
		return c, c, true

	case v.IsBinary():
		if coef > 0 {
			return 0, coef, true
		}
		return coef, 0, true

	case v.HasLowerBound() && v.HasUpperBound():
		a := coef * v.LowerBound()
		b := coef * v.UpperBound()
		if a > b {
			a, b = b, a
		}
		return a, b, true

	default:
		return 0, 0, false
	}
}
