package qumo

import "testing"

func TestReduce_EndToEnd(t *testing.T) {
	m := NewModel(Minimize)
	x := m.AddVariable("x", false, true, 0, true, 10)
	y := m.AddVariable("y", false, true, -2, true, 4)

	f := NewAff(1)
	f.SetTerm(x.Index(), 2)
	f.SetTerm(y.Index(), -1)
	m.AddConstraint("c1", f, LessThan(5))

	obj := NewQuad(0)
	obj.AddTerm(x.Index(), 1)
	m.SetObjective(obj)

	inst, warning, err := Reduce(m, 1.5)
	if err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if warning != nil {
		t.Errorf("unexpected warning: %v", warning)
	}
	if m.NumConstraints() != 0 {
		t.Errorf("expected all constraints folded away, got %d", m.NumConstraints())
	}
	// One slack variable was introduced by ToEquations.
	if inst.Q.Rows != 3 {
		t.Errorf("expected 3 variables (x, y, slack), got %d", inst.Q.Rows)
	}
}

func TestReduceClone_LeavesOriginalUntouched(t *testing.T) {
	m := NewModel(Minimize)
	x := m.AddVariable("x", false, true, 0, true, 1)
	f := NewAff(0)
	f.SetTerm(x.Index(), 1)
	m.AddConstraint("c1", f, EqualTo(1))

	_, _, _, err := ReduceClone(m, 1)
	if err != nil {
		t.Fatalf("ReduceClone: %v", err)
	}
	if m.NumConstraints() != 1 {
		t.Errorf("original model should be untouched, has %d constraints", m.NumConstraints())
	}
}
