package market

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func twoPartyOneTxScenario() Scenario {
	return Scenario{
		Parties: []PartyInfo{
			{ID: 1, SecurityBalance: d(10), CurrencyBalance: d(0)},
			{ID: 2, SecurityBalance: d(0), CurrencyBalance: d(100)},
		},
		Transactions: []TransactionInfo{
			{
				ID: 1,
				SecurityFrom: 1, SecurityTo: 2, SecurityAmount: d(10),
				CashFrom: 2, CashTo: 1, CashAmount: d(100),
			},
		},
	}
}

func TestAssemble_BuildsExpectedDeltas(t *testing.T) {
	m, err := Assemble(twoPartyOneTxScenario())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if m.NumParties != 2 || m.NumTransactions != 1 {
		t.Fatalf("dims = (%d,%d), want (2,1)", m.NumParties, m.NumTransactions)
	}

	if !m.TransactionSecurity(1, 1).Equal(d(-10)) {
		t.Errorf("security delta for seller = %s, want -10", m.TransactionSecurity(1, 1))
	}
	if !m.TransactionSecurity(2, 1).Equal(d(10)) {
		t.Errorf("security delta for buyer = %s, want 10", m.TransactionSecurity(2, 1))
	}
	if !m.TransactionCurrency(2, 1).Equal(d(-100)) {
		t.Errorf("currency delta for payer = %s, want -100", m.TransactionCurrency(2, 1))
	}
	if !m.TransactionCurrency(1, 1).Equal(d(100)) {
		t.Errorf("currency delta for payee = %s, want 100", m.TransactionCurrency(1, 1))
	}
}

func TestAssemble_RejectsSparsePartyIds(t *testing.T) {
	s := twoPartyOneTxScenario()
	s.Parties[1].ID = 5 // leaves a gap: ids are {1,5}, not dense 1..2

	if _, err := Assemble(s); err == nil {
		t.Fatalf("Assemble accepted non-dense party ids")
	}
}

func TestAssemble_PropagatesExchangeFactor(t *testing.T) {
	s := twoPartyOneTxScenario()
	s.Parties[0].ExchangeFactor = &ExchangeFactor{Security: 2, Currency: 5}

	m, err := Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	want := decimal.NewFromInt(5).Div(decimal.NewFromInt(2))
	if !m.Conversion(1).Equal(want) {
		t.Errorf("Conversion(1) = %s, want %s", m.Conversion(1), want)
	}
	if !m.Conversion(2).IsZero() {
		t.Errorf("Conversion(2) = %s, want 0 (no exchange factor)", m.Conversion(2))
	}
}

func TestValidate_RejectsNonDvPTransaction(t *testing.T) {
	s := twoPartyOneTxScenario()
	s.Transactions[0].CashTo = 2 // should equal SecurityFrom (1)

	err := s.Validate()
	if err == nil {
		t.Fatalf("Validate accepted a non-DvP transaction")
	}
}

func TestValidate_RejectsDuplicatePartyId(t *testing.T) {
	s := twoPartyOneTxScenario()
	s.Parties = append(s.Parties, PartyInfo{ID: 1, SecurityBalance: d(0), CurrencyBalance: d(0)})

	if err := s.Validate(); err == nil {
		t.Fatalf("Validate accepted a duplicate party id")
	}
}

func TestExecute_ConservesTotalsAndComputesAfterConversion(t *testing.T) {
	s := twoPartyOneTxScenario()
	s.Parties[0].ExchangeFactor = &ExchangeFactor{Security: 1, Currency: 10}
	m, err := Assemble(s)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	state, err := Execute(m, []TransactionId{1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !state.CurrencyAt(1).Equal(d(100)) {
		t.Errorf("party 1 currency = %s, want 100", state.CurrencyAt(1))
	}
	if !state.SecurityAt(1).IsZero() {
		t.Errorf("party 1 security = %s, want 0", state.SecurityAt(1))
	}
	if !state.SecurityAt(2).Equal(d(10)) {
		t.Errorf("party 2 security = %s, want 10", state.SecurityAt(2))
	}
	// Party 1 converted all remaining security (0) into currency, so
	// after-conversion wealth is just its currency balance.
	if !state.AfterConversionAt(1).Equal(d(100)) {
		t.Errorf("party 1 after-conversion wealth = %s, want 100", state.AfterConversionAt(1))
	}
}

func TestExecute_EmptySelectionLeavesInitialBalances(t *testing.T) {
	m, err := Assemble(twoPartyOneTxScenario())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	state, err := Execute(m, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !state.CurrencyAt(2).Equal(d(100)) || !state.SecurityAt(1).Equal(d(10)) {
		t.Errorf("Execute with no transactions changed initial balances")
	}
}
