package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MarketState is the post-execution snapshot of a Market: per-party
// currency, security, and conversion-augmented wealth
// (currency + conversion*security).
type MarketState struct {
	Currency       []decimal.Decimal // Currency[p-1]
	Security       []decimal.Decimal // Security[p-1]
	AfterConversion []decimal.Decimal // AfterConversion[p-1]
}

// CurrencyAt returns party p's post-execution currency balance.
func (s MarketState) CurrencyAt(p PartyId) decimal.Decimal { return s.Currency[p-1] }

// SecurityAt returns party p's post-execution security balance.
func (s MarketState) SecurityAt(p PartyId) decimal.Decimal { return s.Security[p-1] }

// AfterConversionAt returns party p's post-execution conversion-
// augmented wealth.
func (s MarketState) AfterConversionAt(p PartyId) decimal.Decimal { return s.AfterConversion[p-1] }

// Execute applies the deltas of each transaction in txs, in order, to
// fresh copies of the market's initial balances, and returns the
// resulting MarketState. It checks conservation of totals
// (sum currency == sum currency0, sum security == sum security0) as a
// post-condition and returns an error if accounting drifted — which
// would indicate a bug in Assemble, not in the caller's input.
func Execute(m *Market, txs []TransactionId) (*MarketState, error) {
	currency := append([]decimal.Decimal(nil), m.currency...)
	security := append([]decimal.Decimal(nil), m.security...)

	for _, t := range txs {
		col := int(t) - 1
		for p := 0; p < m.NumParties; p++ {
			if d := m.txCurrency.at(p, col); !d.IsZero() {
				currency[p] = currency[p].Add(d)
			}
			if d := m.txSecurity.at(p, col); !d.IsZero() {
				security[p] = security[p].Add(d)
			}
		}
	}

	if err := checkConservation(m, currency, security); err != nil {
		return nil, err
	}

	afterConversion := make([]decimal.Decimal, m.NumParties)
	for p := 0; p < m.NumParties; p++ {
		afterConversion[p] = currency[p].Add(m.conversion[p].Mul(security[p]))
	}

	return &MarketState{Currency: currency, Security: security, AfterConversion: afterConversion}, nil
}

func checkConservation(m *Market, currency, security []decimal.Decimal) error {
	wantCurrency, gotCurrency := decimal.Zero, decimal.Zero
	wantSecurity, gotSecurity := decimal.Zero, decimal.Zero
	for p := 0; p < m.NumParties; p++ {
		wantCurrency = wantCurrency.Add(m.currency[p])
		gotCurrency = gotCurrency.Add(currency[p])
		wantSecurity = wantSecurity.Add(m.security[p])
		gotSecurity = gotSecurity.Add(security[p])
	}
	if !wantCurrency.Equal(gotCurrency) {
		return fmt.Errorf("market: currency conservation violated: total %s != initial total %s", gotCurrency, wantCurrency)
	}
	if !wantSecurity.Equal(gotSecurity) {
		return fmt.Errorf("market: security conservation violated: total %s != initial total %s", gotSecurity, wantSecurity)
	}
	return nil
}
