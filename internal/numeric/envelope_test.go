package numeric

import "testing"

var f64 = Float64Arithmetic{}

func box(l, u float64) Envelope[float64]      { return NewBox(f64, l, u) }
func constant(v float64) Envelope[float64]    { return NewConstant(f64, v) }
func infeasible() Envelope[float64]           { return NewInfeasible(f64) }

func TestAdd_Associativity(t *testing.T) {
	e := box(1, 5)
	got := e.Add(2).Add(3)
	want := e.Add(5)
	gl, gu := got.Bounds()
	wl, wu := want.Bounds()
	if gl != wl || gu != wu {
		t.Errorf("(e+2)+3 = Box(%v,%v), e+5 = Box(%v,%v)", gl, gu, wl, wu)
	}
}

func TestMul_Associativity(t *testing.T) {
	e := box(1, 5)
	got := e.Mul(2).Mul(3)
	want := e.Mul(6)
	gl, gu := got.Bounds()
	wl, wu := want.Bounds()
	if gl != wl || gu != wu {
		t.Errorf("(e*2)*3 = Box(%v,%v), e*6 = Box(%v,%v)", gl, gu, wl, wu)
	}
}

func TestMul_ByZeroCollapsesToConstantZero(t *testing.T) {
	for _, e := range []Envelope[float64]{box(-3, 9), constant(42)} {
		got := e.Mul(0)
		if got.Kind() != Constant || got.Value() != 0 {
			t.Errorf("e.Mul(0) = %+v, want Constant(0)", got)
		}
	}
}

func TestInfeasible_Absorbing(t *testing.T) {
	e := infeasible()
	if !e.Add(5).IsInfeasible() {
		t.Error("Infeasible.Add should stay Infeasible")
	}
	if !e.Mul(0).IsInfeasible() {
		t.Error("Infeasible.Mul(0) should stay Infeasible, not collapse to Constant(0)")
	}
	if d, err := e.Div(2); err != nil || !d.IsInfeasible() {
		t.Error("Infeasible.Div should stay Infeasible")
	}
}

func TestMul_NegativeSwapsBounds(t *testing.T) {
	got := box(1, 5).Mul(-2)
	l, u := got.Bounds()
	if l != -10 || u != -2 {
		t.Errorf("box(1,5)*-2 = Box(%v,%v), want Box(-10,-2)", l, u)
	}
}

func TestDiv_ByZeroErrors(t *testing.T) {
	if _, err := box(1, 5).Div(0); err != ErrDivideByZero {
		t.Errorf("Div(0) = %v, want ErrDivideByZero", err)
	}
}

func TestMerge_GreaterThan(t *testing.T) {
	got := Merge(box(0, 10), NewGreaterThan[float64](3))
	l, u := got.Bounds()
	if l != 3 || u != 10 {
		t.Errorf("merge(Box(0,10), >=3) = Box(%v,%v), want Box(3,10)", l, u)
	}
}

func TestMerge_GreaterThan_Infeasible(t *testing.T) {
	got := Merge(box(0, 1), NewGreaterThan[float64](2))
	if !got.IsInfeasible() {
		t.Errorf("merge(Box(0,1), >=2) = %+v, want Infeasible", got)
	}
}

func TestMerge_LessThan_UsesUpperNotLower(t *testing.T) {
	// Regression for the documented source bug: Constant branch of
	// LessThan must compare against the set's Upper bound.
	got := Merge(constant(5), NewLessThan[float64](10))
	if got.Kind() != Constant || got.Value() != 5 {
		t.Errorf("merge(Constant(5), <=10) = %+v, want Constant(5)", got)
	}
	got = Merge(constant(15), NewLessThan[float64](10))
	if !got.IsInfeasible() {
		t.Errorf("merge(Constant(15), <=10) = %+v, want Infeasible", got)
	}
}

func TestMerge_EqualTo_Box(t *testing.T) {
	got := Merge(box(0, 10), NewEqualTo[float64](4))
	if got.Kind() != Constant || got.Value() != 4 {
		t.Errorf("merge(Box(0,10), ==4) = %+v, want Constant(4)", got)
	}
	got = Merge(box(0, 10), NewEqualTo[float64](20))
	if !got.IsInfeasible() {
		t.Errorf("merge(Box(0,10), ==20) = %+v, want Infeasible", got)
	}
}

func TestMerge_LessThan_Scenario1(t *testing.T) {
	// The worked numbers of reduction scenario 1: Box(-5,22) refined by
	// LessThan(4) clips only the upper end, giving Box(-5,4). (What
	// InferLimits computes for that scenario's constraint is covered in
	// the qumo package's boxify tests.)
	got := Merge(box(-5, 22), NewLessThan[float64](4))
	l, u := got.Bounds()
	if l != -5 || u != 4 {
		t.Errorf("got Box(%v,%v), want Box(-5,4)", l, u)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	s := NewInterval[float64](f64, -1, 1)
	once := Merge(box(-5, 5), s)
	twice := Merge(once, s)
	ol, ou := once.Bounds()
	tl, tu := twice.Bounds()
	if ol != tl || ou != tu {
		t.Errorf("merge not idempotent: once=Box(%v,%v) twice=Box(%v,%v)", ol, ou, tl, tu)
	}
}

func TestMerge_Monotonicity(t *testing.T) {
	e := box(0, 10)
	merged := Merge(e, NewInterval[float64](f64, 2, 6))
	l, u := merged.Bounds()
	el, eu := e.Bounds()
	if l < el || u > eu {
		t.Errorf("merge widened the envelope: %v,%v not subset of %v,%v", l, u, el, eu)
	}
}

func TestDecimalArithmetic_RingAxioms(t *testing.T) {
	a := DecimalArithmetic{}
	e := NewBox(a, decOf(1), decOf(5))
	got := e.Add(decOf(2)).Add(decOf(3))
	want := e.Add(decOf(5))
	gl, gu := got.Bounds()
	wl, wu := want.Bounds()
	if !gl.Equal(wl) || !gu.Equal(wu) {
		t.Errorf("decimal add not associative: got(%v,%v) want(%v,%v)", gl, gu, wl, wu)
	}
}
