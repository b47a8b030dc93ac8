package qumo

import "testing"

func TestToPenalties_NegativeLambdaErrors(t *testing.T) {
	m := NewModel(Minimize)
	if _, err := ToPenalties(m, -1); err == nil {
		t.Error("expected ErrInvalidPenalty for lambda < 0")
	}
}

func TestToPenalties_ZeroLambdaWarnsAndDropsConstraints(t *testing.T) {
	m := NewModel(Minimize)
	x := m.AddVariable("x", false, false, 0, false, 0)
	f := NewAff(0)
	f.SetTerm(x.Index(), 1)
	m.AddConstraint("c1", f, EqualTo(3))

	warning, err := ToPenalties(m, 0)
	if err != nil {
		t.Fatalf("ToPenalties: %v", err)
	}
	if warning == nil {
		t.Error("expected a warning for lambda ~ 0")
	}
	if m.NumConstraints() != 0 {
		t.Errorf("constraints should be dropped, got %d remaining", m.NumConstraints())
	}
	if m.Objective().Constant != 0 || len(m.Objective().Aff.Terms()) != 0 {
		t.Error("objective should be untouched when lambda ~ 0")
	}
}

func TestToPenalties_FoldsSquaredResidual(t *testing.T) {
	// Minimize model, constraint x == 3, lambda=2.
	// Penalty adds +2*(x-3)^2 = 2x^2 - 12x + 18 to the objective.
	m := NewModel(Minimize)
	x := m.AddVariable("x", false, false, 0, false, 0)
	f := NewAff(0)
	f.SetTerm(x.Index(), 1)
	m.AddConstraint("c1", f, EqualTo(3))

	if _, err := ToPenalties(m, 2); err != nil {
		t.Fatalf("ToPenalties: %v", err)
	}
	if m.NumConstraints() != 0 {
		t.Error("constraints should be deleted after folding")
	}
	obj := m.Objective()
	if obj.Constant != 18 {
		t.Errorf("k = %v, want 18", obj.Constant)
	}
	if obj.Aff.Term(x.Index()) != -12 {
		t.Errorf("c[x] = %v, want -12", obj.Aff.Term(x.Index()))
	}
	if obj.QuadTerm(x.Index(), x.Index()) != 2 {
		t.Errorf("Q[x,x] = %v, want 2", obj.QuadTerm(x.Index(), x.Index()))
	}
}

func TestToPenalties_MaximizeFlipsSign(t *testing.T) {
	m := NewModel(Maximize)
	x := m.AddVariable("x", false, false, 0, false, 0)
	f := NewAff(0)
	f.SetTerm(x.Index(), 1)
	m.AddConstraint("c1", f, EqualTo(3))

	if _, err := ToPenalties(m, 2); err != nil {
		t.Fatalf("ToPenalties: %v", err)
	}
	obj := m.Objective()
	if obj.Constant != -18 {
		t.Errorf("k = %v, want -18 for maximize", obj.Constant)
	}
}
