package qumo

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/numeric"
)

// ToEquations introduces one slack variable per Box(l, u=l+1) constraint
// and rewrites it as the single equation f(x) + slack = u. EqualTo
// constraints pass through unchanged. Any other constraint shape
// reaching this stage is a programming error upstream (Boxify should
// have run first) and is reported as ErrUnsupportedConstraint.
//
// Slacks are introduced in constraint iteration order, so slack
// numbering is deterministic across runs of the same model.
func ToEquations(m *Model) error {
	for _, h := range m.Constraints() {
		c, ok := m.Constraint(h)
		if !ok {
			continue
		}

		switch c.Set.Kind {
		case numeric.EqualTo:
			continue

		case numeric.Interval:
			l, u := c.Set.Lower, c.Set.Upper
			if !Arith.IsApproxZero((u - l) - 1) {
				return fmt.Errorf("%w: constraint %q has range %v, expected unit range from boxify", ErrUnsupportedConstraint, c.Name, u-l)
			}
			slack := m.AddVariable(fmt.Sprintf("slack[%s]", c.Name), false, true, 0, true, 1)

			f := c.Func.Clone()
			f.SetTerm(slack.Index(), 1)

			m.DeleteConstraint(h)
			m.AddConstraint(c.Name, f, EqualTo(u))

		default:
			return fmt.Errorf("%w: constraint %q is neither EqualTo nor a boxified Interval", ErrUnsupportedConstraint, c.Name)
		}
	}
	return nil
}

// ToEquationsClone deep-copies m, converts the copy, and returns it.
func ToEquationsClone(m *Model) (*Model, error) {
	out := m.Clone()
	if err := ToEquations(out); err != nil {
		return nil, err
	}
	return out, nil
}
