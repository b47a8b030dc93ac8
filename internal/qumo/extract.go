package qumo

import "github.com/atmx/qumo-settle/internal/sparse"

// Instance is the QUMO output: an unconstrained objective
// ½ x^T Q x + c^T x + k, where Binaries names which coordinates are
// restricted to {0,1} (the rest lie in [0,1]).
type Instance struct {
	Q        *sparse.Matrix
	C        []float64
	K        float64
	Binaries []int
	Names    []string
}

// Extract lowers an unconstrained quadratic model (every constraint
// already folded into the objective by ToPenalties) into a QUMO
// Instance. It does not mutate m.
//
// Binary diagonal terms linearize (x^2 == x for x in {0,1}) and fold
// into C instead of Q. Every other quadratic term — off-diagonal, or a
// continuous diagonal — emits the symmetric pair (i,j) and (j,i) into
// Q, which the ½ x^T Q x convention requires to recover the original
// coefficient (for a continuous diagonal this doubles the entry, which
// the ½ factor then halves back).
func Extract(m *Model) Instance {
	n := m.NumVariables()
	c := make([]float64, n)
	obj := m.Objective()

	for _, t := range obj.Aff.Terms() {
		c[t.Index-1] += t.Coef
	}

	q := sparse.New(n, n)
	for _, t := range obj.QuadTerms() {
		i, j := t.Pair.First, t.Pair.Second
		if i == j && m.Variable(i).IsBinary() {
			c[i-1] += t.Coef
			continue
		}
		q.Add(i-1, j-1, t.Coef)
		q.Add(j-1, i-1, t.Coef)
	}

	return Instance{
		Q:        q,
		C:        c,
		K:        obj.Constant,
		Binaries: m.BinaryIndices(),
		Names:    m.Names(),
	}
}
