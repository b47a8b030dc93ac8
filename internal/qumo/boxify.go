package qumo

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/numeric"
)

// Boxify rewrites every constraint in m into canonical form: either a
// provably-constant equality, or a Box(l, u) with u - l == 1 and a
// zero constant. It mutates m in place; use BoxifyClone for a pure
// variant. Returns ErrModelInfeasible, naming the offending
// constraint, the first time a constraint's envelope collapses.
func Boxify(m *Model) error {
	for _, h := range m.Constraints() {
		c, ok := m.Constraint(h)
		if !ok {
			continue
		}

		env, err := InferLimits(m, c.Func)
		if err != nil {
			return err
		}
		env = numeric.Merge(env, c.Set)

		switch env.Kind() {
		case numeric.Infeasible:
			return fmt.Errorf("%w: constraint %q", ErrModelInfeasible, c.Name)

		case numeric.Constant:
			rewriteConstant(m, h, c, env.Value())

		default: // Box
			if err := rewriteBox(m, h, c, env); err != nil {
				return err
			}
		}
	}
	return nil
}

// BoxifyClone deep-copies m, boxifies the copy, and returns it.
func BoxifyClone(m *Model) (*Model, error) {
	out := m.Clone()
	if err := Boxify(out); err != nil {
		return nil, err
	}
	return out, nil
}

// rewriteConstant replaces a provably-constant constraint with
// f.terms*x = v - f.constant, preserving the variable terms and name.
func rewriteConstant(m *Model, h Handle, c *Constraint, v float64) {
	f := c.Func.Clone()
	rhs := v - f.Constant
	f.Constant = 0
	m.DeleteConstraint(h)
	m.AddConstraint(c.Name, f, EqualTo(rhs))
}

// rewriteBox rescales a Box(l, u) constraint so the new range is
// exactly 1 and the constant is zero: l' = l - k, u' = u - k, r = u'-l',
// coefficients scaled by 1/r, new set Interval(l'/r, u'/r).
func rewriteBox(m *Model, h Handle, c *Constraint, env numeric.Envelope[float64]) error {
	l, u := env.Bounds()
	k := c.Func.Constant
	lp, up := l-k, u-k
	r := up - lp

	if Arith.IsApproxZero(r) {
		// A tight Box(l, l) (e.g. x in [0,1] merged with x >= 1) pins f
		// to a single value: rewrite it as the constant case.
		rewriteConstant(m, h, c, l)
		return nil
	}
	if r < 0 {
		// Merge never yields l > u; reaching here means the envelope
		// math is broken.
		return fmt.Errorf("%w: constraint %q has non-positive range after boxifying", ErrModelInfeasible, c.Name)
	}

	f := c.Func.Clone()
	newF := NewAff(0)
	for _, t := range f.Terms() {
		newF.SetTerm(t.Index, t.Coef/r)
	}

	m.DeleteConstraint(h)
	m.AddConstraint(c.Name, newF, IntervalSet(lp/r, up/r))
	return nil
}
