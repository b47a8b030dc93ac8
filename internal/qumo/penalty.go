package qumo

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/numeric"
)

// PenaltyWarning is returned (never as an error — callers should log it,
// not fail) when lambda is approximately zero and ToPenalties deleted
// all constraints without touching the objective.
type PenaltyWarning struct {
	Lambda float64
}

func (w PenaltyWarning) String() string {
	return fmt.Sprintf("qumo: penalty weight %v is approximately zero; constraints dropped without penalizing the objective", w.Lambda)
}

// ToPenalties replaces every EqualTo constraint with a squared-residual
// penalty term folded into the objective, then deletes all constraints.
// It is a precondition that every remaining constraint is EqualTo(c)
// (ToEquations guarantees this).
//
//   - lambda < 0: ErrInvalidPenalty.
//   - lambda ~ 0: constraints are dropped, objective untouched, and a
//     non-nil *PenaltyWarning is returned alongside a nil error for the
//     caller to log.
//   - lambda > 0: sign = -lambda for a maximizing model, +lambda for a
//     minimizing one. For each constraint f == c, accumulate
//     sign * (f - c)^2 into the objective, folding left over the
//     model's constraint iteration order for determinism.
func ToPenalties(m *Model, lambda float64) (*PenaltyWarning, error) {
	if lambda < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPenalty, lambda)
	}

	handles := m.Constraints()

	if Arith.IsApproxZero(lambda) {
		for _, h := range handles {
			m.DeleteConstraint(h)
		}
		return &PenaltyWarning{Lambda: lambda}, nil
	}

	sign := lambda
	if m.Sense() == Maximize {
		sign = -lambda
	}

	for _, h := range handles {
		c, ok := m.Constraint(h)
		if !ok {
			continue
		}
		if c.Set.Kind != numeric.EqualTo {
			return nil, fmt.Errorf("%w: constraint %q is not EqualTo", ErrUnsupportedConstraint, c.Name)
		}
		residual := c.Func.Clone()
		residual.Constant -= c.Set.Value
		m.AddToObjective(squared(residual, sign))
	}

	for _, h := range handles {
		m.DeleteConstraint(h)
	}
	return nil, nil
}

// ToPenaltiesClone deep-copies m, applies ToPenalties to the copy, and
// returns the copy alongside any warning/error.
func ToPenaltiesClone(m *Model, lambda float64) (*Model, *PenaltyWarning, error) {
	out := m.Clone()
	w, err := ToPenalties(out, lambda)
	if err != nil {
		return nil, nil, err
	}
	return out, w, nil
}

// squared returns sign * f^2 as a Quad, expanding
// (k + sum c_i x_i)^2 = k^2 + 2k*sum c_i x_i + sum_i sum_j c_i c_j x_i x_j.
func squared(f Aff, sign float64) Quad {
	q := NewQuad(sign * f.Constant * f.Constant)
	terms := f.Terms()
	for _, t := range terms {
		q.AddTerm(t.Index, sign*2*f.Constant*t.Coef)
	}
	for _, ti := range terms {
		for _, tj := range terms {
			q.AddQuadTerm(ti.Index, tj.Index, sign*ti.Coef*tj.Coef)
		}
	}
	return q
}
