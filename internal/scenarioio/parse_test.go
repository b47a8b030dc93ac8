package scenarioio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/atmx/qumo-settle/internal/market"
)

const sample = `Party Id,Security Balance,Currency Balance,CCF Exchange Factor
P1,1,0,P1 converts 1 S into 2 C
P2,0,1

Transaction Id,From,To,Security Amount,From,To,Cash Amount
T1,P1,P2,1,P2,P1,1
T2,P2,P1,1,P1,P2,2
`

func TestParse_Sample(t *testing.T) {
	scenario, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(scenario.Parties) != 2 || len(scenario.Transactions) != 2 {
		t.Fatalf("got %d parties, %d transactions; want 2, 2", len(scenario.Parties), len(scenario.Transactions))
	}
	if scenario.Parties[0].ExchangeFactor == nil {
		t.Fatalf("P1 exchange factor not parsed")
	}
	if got := scenario.Parties[0].ExchangeFactor.Ratio(); !got.Equal(decimal.NewFromInt(2)) {
		t.Errorf("P1 conversion ratio = %s, want 2", got)
	}
	if scenario.Transactions[1].CashAmount.Cmp(decimal.NewFromInt(2)) != 0 {
		t.Errorf("T2 cash amount = %s, want 2", scenario.Transactions[1].CashAmount)
	}

	if err := scenario.Validate(); err != nil {
		t.Errorf("parsed scenario should validate cleanly: %v", err)
	}
}

func TestParse_RejectsMismatchedExchangeClauseOwner(t *testing.T) {
	bad := `Party Id,Security Balance,Currency Balance,CCF Exchange Factor
P1,1,0,P2 converts 1 S into 2 C

Transaction Id,From,To,Security Amount,From,To,Cash Amount
`
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatalf("Parse accepted a clause whose party id does not match its row")
	}
}

func TestParse_RejectsMissingHeader(t *testing.T) {
	bad := "P1,1,0\n\nT1,P1,P2,1,P2,P1,1\n"
	if _, err := Parse(strings.NewReader(bad)); err == nil {
		t.Fatalf("Parse accepted input with no section headers")
	}
}

func TestWriteThenParseRoundTrips(t *testing.T) {
	scenario := market.Scenario{
		Parties: []market.PartyInfo{
			{ID: 1, SecurityBalance: decimal.NewFromInt(5), CurrencyBalance: decimal.Zero},
			{ID: 2, SecurityBalance: decimal.Zero, CurrencyBalance: decimal.NewFromInt(5),
				ExchangeFactor: &market.ExchangeFactor{Security: 1, Currency: 3}},
		},
		Transactions: []market.TransactionInfo{
			{ID: 1, SecurityFrom: 1, SecurityTo: 2, SecurityAmount: decimal.NewFromInt(2),
				CashFrom: 2, CashTo: 1, CashAmount: decimal.NewFromInt(4)},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, scenario); err != nil {
		t.Fatalf("Write: %v", err)
	}

	roundTripped, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse(Write(scenario)): %v", err)
	}
	if len(roundTripped.Parties) != 2 || len(roundTripped.Transactions) != 1 {
		t.Fatalf("round trip lost rows: %+v", roundTripped)
	}
	if roundTripped.Parties[1].ExchangeFactor == nil {
		t.Fatalf("round trip lost P2's exchange factor")
	}
}
