package settlement

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/atmx/qumo-settle/internal/market"
	"github.com/atmx/qumo-settle/internal/solverbackend"
)

func twoPartyScenario(t *testing.T) market.Scenario {
	t.Helper()
	return market.Scenario{
		Parties: []market.PartyInfo{
			{ID: 1, SecurityBalance: decimal.NewFromInt(1), CurrencyBalance: decimal.Zero},
			{ID: 2, SecurityBalance: decimal.Zero, CurrencyBalance: decimal.NewFromInt(1)},
		},
		Transactions: []market.TransactionInfo{
			{
				ID: 1,
				SecurityFrom: 1, SecurityTo: 2, SecurityAmount: decimal.NewFromInt(1),
				CashFrom: 2, CashTo: 1, CashAmount: decimal.NewFromInt(1),
			},
		},
	}
}

func TestFormulate_DvPSingleTransaction(t *testing.T) {
	m, names := Formulate(mustAssemble(t, twoPartyScenario(t)))
	if len(m.Binary) != 1 || !m.Binary[0] {
		t.Fatalf("expected exactly one binary variable, got %+v", m.Binary)
	}
	wantNames := []string{"security[P1]", "currency[P1]", "security[P2]", "currency[P2]"}
	if len(names) != len(wantNames) {
		t.Fatalf("constraint names = %v, want %v", names, wantNames)
	}
	for i, want := range wantNames {
		if names[i] != want {
			t.Errorf("constraint[%d] = %q, want %q", i, names[i], want)
		}
	}
	if m.Model.NumVars() != 1 {
		t.Fatalf("NumVars = %d, want 1", m.Model.NumVars())
	}
	if m.Model.NumConstraints() != 4 {
		t.Fatalf("NumConstraints = %d, want 4", m.Model.NumConstraints())
	}
}

func mustAssemble(t *testing.T, s market.Scenario) *market.Market {
	t.Helper()
	mkt, err := market.Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return mkt
}

// fakeBackend is a stand-in solverbackend.Backend that pins every
// binary variable to 1, used to exercise Solve's executor/validator
// wiring without a real HiGHS call.
type fakeBackend struct{}

var _ solverbackend.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) SetOptimizer(string) error                { return nil }
func (f *fakeBackend) SetSilent(bool)                           {}
func (f *fakeBackend) Optimize(*solverbackend.Problem) error     { return nil }
func (f *fakeBackend) TerminationStatus() solverbackend.Status   { return solverbackend.StatusOptimal }
func (f *fakeBackend) Value(int) float64                         { return 1 }

func TestSolve_DvPSingleTransaction(t *testing.T) {
	mkt := mustAssemble(t, twoPartyScenario(t))
	solved, err := Solve(&fakeBackend{}, mkt)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(solved.Transactions) != 1 || solved.Transactions[0] != 1 {
		t.Fatalf("Transactions = %v, want [1]", solved.Transactions)
	}
	if got := solved.State.SecurityAt(1); !got.IsZero() {
		t.Errorf("P1 security = %s, want 0", got)
	}
	if got := solved.State.SecurityAt(2); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("P2 security = %s, want 1", got)
	}

	if err := CheckMaximality(mkt, solved.Transactions); err != nil {
		t.Errorf("CheckMaximality: %v", err)
	}
	if _, err := Validate(mkt, solved.Transactions); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestConversionUnlocksSecondTransaction(t *testing.T) {
	scenario := market.Scenario{
		Parties: []market.PartyInfo{
			{
				ID: 1, SecurityBalance: decimal.NewFromInt(1), CurrencyBalance: decimal.Zero,
				ExchangeFactor: &market.ExchangeFactor{Security: 1, Currency: 2},
			},
			{ID: 2, SecurityBalance: decimal.Zero, CurrencyBalance: decimal.NewFromInt(1)},
		},
		Transactions: []market.TransactionInfo{
			{
				ID: 1,
				SecurityFrom: 1, SecurityTo: 2, SecurityAmount: decimal.NewFromInt(1),
				CashFrom: 2, CashTo: 1, CashAmount: decimal.NewFromInt(1),
			},
			{
				ID: 2,
				SecurityFrom: 2, SecurityTo: 1, SecurityAmount: decimal.NewFromInt(1),
				CashFrom: 1, CashTo: 2, CashAmount: decimal.NewFromInt(2),
			},
		},
	}
	mkt := mustAssemble(t, scenario)

	// T2 alone is rejected: P2 holds no security to deliver, so its
	// security goes to -1. (P1's cash goes to -2, but its exchange
	// factor keeps its after-conversion wealth at -2 + 2*2 = 2.)
	if _, err := Validate(mkt, []market.TransactionId{2}); err == nil {
		t.Fatalf("Validate(T2 alone) succeeded, want ErrInsolvent")
	}

	// With the conversion factor, executing both transactions leaves
	// every party's after-conversion wealth non-negative, and no
	// further transaction is admissible.
	both := []market.TransactionId{1, 2}
	state, err := Validate(mkt, both)
	if err != nil {
		t.Fatalf("Validate(T1,T2): %v", err)
	}
	if got := state.AfterConversionAt(1); got.IsNegative() {
		t.Errorf("P1 after-conversion wealth = %s, want >= 0", got)
	}
	if err := CheckMaximality(mkt, both); err != nil {
		t.Errorf("CheckMaximality(T1,T2): %v", err)
	}

	admissible, err := AdmissibleTransactions(mkt, []market.TransactionId{1})
	if err != nil {
		t.Fatalf("AdmissibleTransactions: %v", err)
	}
	found := false
	for _, t := range admissible {
		if t == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("AdmissibleTransactions(after T1) = %v, want T2 admissible", admissible)
	}
}
