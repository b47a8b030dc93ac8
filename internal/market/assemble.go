package market

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrDimensionMismatch is returned when the maximum party/transaction id
// encountered while assembling a Market does not match the scenario's
// party/transaction count — the dense 1-based indexing invariant the
// assembler asserts.
var ErrDimensionMismatch = errors.New("market: party/transaction ids are not dense 1-based")

// Market is the assembled sparse view of a Scenario: per-participant
// setup vectors (currency, security, conversion) plus sparse
// participant x transaction delta matrices for currency and security.
// Indexing is 1-based and dense, matching PartyId/TransactionId.
type Market struct {
	NumParties      int
	NumTransactions int

	currency   []decimal.Decimal // currency[p-1]
	security   []decimal.Decimal // security[p-1]
	conversion []decimal.Decimal // conversion[p-1]

	txCurrency *decimalMatrix // rows = party-1, cols = tx-1
	txSecurity *decimalMatrix
}

// Currency returns party p's initial currency balance.
func (m *Market) Currency(p PartyId) decimal.Decimal { return m.currency[p-1] }

// Security returns party p's initial security balance.
func (m *Market) Security(p PartyId) decimal.Decimal { return m.security[p-1] }

// Conversion returns party p's conversion ratio (currency/security), or
// zero if the party has no exchange factor.
func (m *Market) Conversion(p PartyId) decimal.Decimal { return m.conversion[p-1] }

// TransactionCurrency returns the signed currency delta transaction t
// contributes to party p.
func (m *Market) TransactionCurrency(p PartyId, t TransactionId) decimal.Decimal {
	return m.txCurrency.at(int(p)-1, int(t)-1)
}

// TransactionSecurity returns the signed security delta transaction t
// contributes to party p.
func (m *Market) TransactionSecurity(p PartyId, t TransactionId) decimal.Decimal {
	return m.txSecurity.at(int(p)-1, int(t)-1)
}

// CurrencyRow returns party p's currency deltas across every
// transaction column, dense, in transaction-id order.
func (m *Market) CurrencyRow(p PartyId) []decimal.Decimal { return m.txCurrency.Row(int(p) - 1) }

// SecurityRow returns party p's security deltas across every
// transaction column, dense, in transaction-id order.
func (m *Market) SecurityRow(p PartyId) []decimal.Decimal { return m.txSecurity.Row(int(p) - 1) }

// Assemble validates scenario and builds its sparse Market
// representation. For each party p, currency[p] = CurrencyBalance,
// security[p] = SecurityBalance, conversion[p] = 0 absent an exchange
// factor, else Currency/Security. For each transaction
// (sf, st, sa, cf, ct, ca), four nonzeros are contributed:
// security[sf,t] = -sa, security[st,t] = +sa, currency[cf,t] = -ca,
// currency[ct,t] = +ca.
func Assemble(scenario Scenario) (*Market, error) {
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	maxParty := 0
	for _, p := range scenario.Parties {
		if int(p.ID) > maxParty {
			maxParty = int(p.ID)
		}
	}
	maxTx := 0
	for _, tx := range scenario.Transactions {
		if int(tx.ID) > maxTx {
			maxTx = int(tx.ID)
		}
	}
	if maxParty != len(scenario.Parties) {
		return nil, fmt.Errorf("%w: max party id %d != %d parties", ErrDimensionMismatch, maxParty, len(scenario.Parties))
	}
	if maxTx != len(scenario.Transactions) {
		return nil, fmt.Errorf("%w: max transaction id %d != %d transactions", ErrDimensionMismatch, maxTx, len(scenario.Transactions))
	}

	m := &Market{
		NumParties:      maxParty,
		NumTransactions: maxTx,
		currency:        make([]decimal.Decimal, maxParty),
		security:        make([]decimal.Decimal, maxParty),
		conversion:      make([]decimal.Decimal, maxParty),
		txCurrency:      newDecimalMatrix(maxParty, maxTx),
		txSecurity:      newDecimalMatrix(maxParty, maxTx),
	}

	for _, p := range scenario.Parties {
		idx := int(p.ID) - 1
		m.currency[idx] = p.CurrencyBalance
		m.security[idx] = p.SecurityBalance
		if p.ExchangeFactor != nil {
			m.conversion[idx] = p.ExchangeFactor.Ratio()
		} else {
			m.conversion[idx] = decimal.Zero
		}
	}

	for _, tx := range scenario.Transactions {
		col := int(tx.ID) - 1
		m.txSecurity.add(int(tx.SecurityFrom)-1, col, tx.SecurityAmount.Neg())
		m.txSecurity.add(int(tx.SecurityTo)-1, col, tx.SecurityAmount)
		m.txCurrency.add(int(tx.CashFrom)-1, col, tx.CashAmount.Neg())
		m.txCurrency.add(int(tx.CashTo)-1, col, tx.CashAmount)
	}

	return m, nil
}
