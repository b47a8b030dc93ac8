// Package settlement formulates, solves, and validates the
// maximum-throughput DvP settlement integer program over a
// market.Market: choose the largest subset of requested transactions
// that can execute without driving any party's security or
// conversion-augmented wealth negative.
package settlement

import (
	highs "github.com/bartolsthoorn/gohighs/highs"
	"github.com/shopspring/decimal"

	"github.com/atmx/qumo-settle/internal/market"
	"github.com/atmx/qumo-settle/internal/solverbackend"
)

// Formulate builds the binary integer program: maximize sum_t x_t
// subject to, for every party p,
//
//	security0[p]   + sum_t securityRow[p,t]*x_t   >= 0
//	currency0[p]   + conversion[p]*security0[p]
//	              + sum_t (currencyRow[p,t] + conversion[p]*securityRow[p,t])*x_t >= 0
//
// The second constraint is the conversion-augmented cash row: a party
// with a nonzero exchange factor may fund a cash shortfall by selling
// down security it would still hold after the candidate transactions.
// The second return value names each row "security[P<p>]" /
// "currency[P<p>]" in party order, matching the order they are appended
// to the model.
func Formulate(m *market.Market) (*solverbackend.Problem, []string) {
	n := m.NumTransactions

	model := &highs.Model{
		Maximize: true,
		ColCosts: ones(n),
		ColLower: zeros(n),
		ColUpper: ones(n),
		VarTypes: integerTypes(n),
	}

	names := make([]string, n)
	binary := make([]bool, n)
	for t := 1; t <= n; t++ {
		names[t-1] = market.TransactionId(t).String()
		binary[t-1] = true
	}

	constraintNames := make([]string, 0, 2*m.NumParties)
	for p := 1; p <= m.NumParties; p++ {
		party := market.PartyId(p)

		securityCoefs := toFloats(m.SecurityRow(party))
		model.AddGeRow(securityCoefs, -toFloat(m.Security(party)))
		constraintNames = append(constraintNames, "security["+party.String()+"]")

		conversion := m.Conversion(party)
		currencyRow := m.CurrencyRow(party)
		securityRow := m.SecurityRow(party)
		coefs := make([]float64, n)
		for t := 0; t < n; t++ {
			coefs[t] = toFloat(currencyRow[t].Add(conversion.Mul(securityRow[t])))
		}
		rhs := toFloat(m.Currency(party).Add(conversion.Mul(m.Security(party))))
		model.AddGeRow(coefs, -rhs)
		constraintNames = append(constraintNames, "currency["+party.String()+"]")
	}

	return &solverbackend.Problem{Model: model, Names: names, Binary: binary}, constraintNames
}

// toFloat converts an exact decimal into the float64 HiGHS needs at
// the solver boundary, matching the teacher's lmsr package convention
// of calling InexactFloat64 only where a float-only API demands it.
func toFloat(d decimal.Decimal) float64 { return d.InexactFloat64() }

func toFloats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = toFloat(d)
	}
	return out
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func zeros(n int) []float64 { return make([]float64, n) }

func integerTypes(n int) []highs.VariableType {
	out := make([]highs.VariableType, n)
	for i := range out {
		out[i] = highs.Integer
	}
	return out
}

// Solved is the outcome of running the settlement IP for a market:
// the transaction ids selected to execute, in ascending order, and the
// resulting post-execution state.
type Solved struct {
	Transactions []market.TransactionId
	State        *market.MarketState
}

// Solve formulates, solves, and executes the settlement IP for m using
// backend b, returning the selected transactions and resulting state.
func Solve(b solverbackend.Backend, m *market.Market) (*Solved, error) {
	problem, _ := Formulate(m)
	result, err := solverbackend.Solve(b, problem)
	if err != nil {
		return nil, err
	}

	txs := make([]market.TransactionId, len(result.Binaries))
	for i, idx := range result.Binaries {
		txs[i] = market.TransactionId(idx)
	}

	state, err := market.Execute(m, txs)
	if err != nil {
		return nil, err
	}

	return &Solved{Transactions: txs, State: state}, nil
}
