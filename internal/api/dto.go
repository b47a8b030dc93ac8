package api

import "github.com/atmx/qumo-settle/internal/qumo"

// ModelRequest is the JSON request body for POST /api/v1/reductions: a
// flattened description of a qumo.Model, since Model's Handle-keyed
// constraint table isn't itself JSON-friendly.
type ModelRequest struct {
	Label       string               `json:"label"`
	Sense       string               `json:"sense"` // "minimize" or "maximize"
	Lambda      float64              `json:"lambda"` // penalty weight; < 0 is rejected, ~0 drops constraints with a warning
	Variables   []VariableRequest    `json:"variables"`
	Constraints []ConstraintRequest  `json:"constraints"`
	Objective   ObjectiveRequest     `json:"objective"`
}

// VariableRequest describes one variable, in declaration order — its
// position (1-based) is its index into Constraints/Objective term
// lists.
type VariableRequest struct {
	Name     string  `json:"name"`
	Binary   bool    `json:"binary"`
	HasLower bool    `json:"has_lower"`
	Lower    float64 `json:"lower"`
	HasUpper bool    `json:"has_upper"`
	Upper    float64 `json:"upper"`
}

// TermRequest is one (variable index, coefficient) entry; Index is
// 1-based, matching VariableRequest's declaration order.
type TermRequest struct {
	Index int     `json:"index"`
	Coef  float64 `json:"coef"`
}

// QuadTermRequest is one quadratic (i, j, coefficient) entry.
type QuadTermRequest struct {
	I    int     `json:"i"`
	J    int     `json:"j"`
	Coef float64 `json:"coef"`
}

// ConstraintRequest describes one named linear constraint: constant +
// sum(terms) lies in the set named by Kind.
type ConstraintRequest struct {
	Name     string        `json:"name"`
	Constant float64       `json:"constant"`
	Terms    []TermRequest `json:"terms"`
	Kind     string        `json:"kind"` // "ge", "le", "eq", "interval"
	RHS      float64       `json:"rhs"`  // used by ge/le/eq
	Lower    float64       `json:"lower"` // used by interval
	Upper    float64       `json:"upper"` // used by interval
}

// ObjectiveRequest describes the model's quadratic objective.
type ObjectiveRequest struct {
	Constant  float64           `json:"constant"`
	Terms     []TermRequest     `json:"terms"`
	QuadTerms []QuadTermRequest `json:"quad_terms"`
}

// InstanceResponse mirrors qumo.Instance for JSON transport: the
// sparse Q matrix as a flat nonzero list rather than qumo's internal
// representation.
type InstanceResponse struct {
	Q        []QuadTermRequest `json:"q"`
	C        []float64         `json:"c"`
	K        float64           `json:"k"`
	Binaries []int             `json:"binaries"`
	Names    []string          `json:"names"`
}

func toInstanceResponse(inst qumo.Instance) InstanceResponse {
	nz := inst.Q.Nonzeros()
	q := make([]QuadTermRequest, len(nz))
	for i, e := range nz {
		q[i] = QuadTermRequest{I: e.Row, J: e.Col, Coef: e.Val}
	}
	return InstanceResponse{
		Q:        q,
		C:        inst.C,
		K:        inst.K,
		Binaries: inst.Binaries,
		Names:    inst.Names,
	}
}
