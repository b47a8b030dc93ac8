package numeric

import "github.com/shopspring/decimal"

// DecimalArithmetic implements Arithmetic[decimal.Decimal] with bit-exact
// comparisons — decimal values carry no representation error, so "approx
// zero" means exactly zero, per the spec's "bit-exact for integers" default.
// This backs Envelope tests that want determinism independent of float64
// rounding, and is available to any caller that wants an exact QUMO limit
// inference pass over decimal-valued bounds.
type DecimalArithmetic struct{}

var _ Arithmetic[decimal.Decimal] = DecimalArithmetic{}

func (DecimalArithmetic) Add(a, b decimal.Decimal) decimal.Decimal { return a.Add(b) }
func (DecimalArithmetic) Sub(a, b decimal.Decimal) decimal.Decimal { return a.Sub(b) }
func (DecimalArithmetic) Mul(a, b decimal.Decimal) decimal.Decimal { return a.Mul(b) }
func (DecimalArithmetic) Div(a, b decimal.Decimal) decimal.Decimal { return a.Div(b) }
func (DecimalArithmetic) Zero() decimal.Decimal                    { return decimal.Zero }

func (DecimalArithmetic) Cmp(a, b decimal.Decimal) int { return a.Cmp(b) }

func (DecimalArithmetic) IsApproxZero(a decimal.Decimal) bool { return a.IsZero() }
