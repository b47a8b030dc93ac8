package api

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/qumo"
)

// buildModel converts a ModelRequest into a *qumo.Model, validating
// variable indices and constraint/kind names as it goes.
func buildModel(req ModelRequest) (*qumo.Model, error) {
	var sense qumo.Sense
	switch req.Sense {
	case "", "minimize":
		sense = qumo.Minimize
	case "maximize":
		sense = qumo.Maximize
	default:
		return nil, fmt.Errorf("unknown sense %q (want \"minimize\" or \"maximize\")", req.Sense)
	}

	m := qumo.NewModel(sense)
	for _, v := range req.Variables {
		m.AddVariable(v.Name, v.Binary, v.HasLower, v.Lower, v.HasUpper, v.Upper)
	}
	n := m.NumVariables()

	checkIndex := func(idx int) error {
		if idx < 1 || idx > n {
			return fmt.Errorf("variable index %d out of range [1,%d]", idx, n)
		}
		return nil
	}

	for _, c := range req.Constraints {
		aff := qumo.NewAff(c.Constant)
		for _, t := range c.Terms {
			if err := checkIndex(t.Index); err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.Name, err)
			}
			aff.AddTerm(t.Index, t.Coef)
		}

		var set qumo.CSet
		switch c.Kind {
		case "ge":
			set = qumo.GreaterThan(c.RHS)
		case "le":
			set = qumo.LessThan(c.RHS)
		case "eq":
			set = qumo.EqualTo(c.RHS)
		case "interval":
			set = qumo.IntervalSet(c.Lower, c.Upper)
		default:
			return nil, fmt.Errorf("constraint %q: unknown kind %q (want ge, le, eq, or interval)", c.Name, c.Kind)
		}

		m.AddConstraint(c.Name, aff, set)
	}

	obj := qumo.NewQuad(req.Objective.Constant)
	for _, t := range req.Objective.Terms {
		if err := checkIndex(t.Index); err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		obj.AddTerm(t.Index, t.Coef)
	}
	for _, t := range req.Objective.QuadTerms {
		if err := checkIndex(t.I); err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		if err := checkIndex(t.J); err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		obj.AddQuadTerm(t.I, t.J, t.Coef)
	}
	m.SetObjective(obj)

	return m, nil
}
