// Package market defines the typed scenario data model for Core B
// (transaction settlement): parties with currency/security balances
// and an optional exchange factor, and the DvP transactions requested
// between them.
package market

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PartyId identifies a participant. Displayed as "P<id>".
type PartyId uint32

// String renders the party's display token, e.g. "P3".
func (p PartyId) String() string { return fmt.Sprintf("P%d", uint32(p)) }

// TransactionId identifies a requested transaction. Displayed as "T<id>".
type TransactionId uint32

// String renders the transaction's display token, e.g. "T7".
func (t TransactionId) String() string { return fmt.Sprintf("T%d", uint32(t)) }

// ExchangeFactor expresses "Security units of security convert to
// Currency units of cash". Both must be > 0. The conversion ratio used
// downstream is Currency / Security.
type ExchangeFactor struct {
	Security uint32
	Currency uint32
}

// Ratio returns Currency/Security as an exact decimal.
func (f ExchangeFactor) Ratio() decimal.Decimal {
	return decimal.NewFromInt(int64(f.Currency)).Div(decimal.NewFromInt(int64(f.Security)))
}

// Valid reports whether both legs of the factor are positive.
func (f ExchangeFactor) Valid() bool { return f.Security > 0 && f.Currency > 0 }

// PartyInfo is one participant's initial balances and optional
// exchange factor.
type PartyInfo struct {
	ID               PartyId
	SecurityBalance  decimal.Decimal
	CurrencyBalance  decimal.Decimal
	ExchangeFactor   *ExchangeFactor // nil if the party has no conversion rule
}

// TransactionInfo is one requested DvP transaction: security moves
// SecurityFrom -> SecurityTo, cash moves CashFrom -> CashTo. The DvP
// invariant requires SecurityFrom == CashTo and SecurityTo == CashFrom
// (the security buyer pays the security seller), and the two legs must
// involve different parties.
type TransactionInfo struct {
	ID              TransactionId
	SecurityFrom    PartyId
	SecurityTo      PartyId
	SecurityAmount  decimal.Decimal
	CashFrom        PartyId
	CashTo          PartyId
	CashAmount      decimal.Decimal
}

// Scenario is an ordered list of parties and an ordered list of
// requested transactions.
type Scenario struct {
	Parties      []PartyInfo
	Transactions []TransactionInfo
}

// Validate checks every local invariant on every party and
// transaction, returning InvalidScenario errors that describe every
// violation found, not just the first.
func (s Scenario) Validate() error {
	var errs []string

	seenParty := make(map[PartyId]bool, len(s.Parties))
	for _, p := range s.Parties {
		if seenParty[p.ID] {
			errs = append(errs, fmt.Sprintf("duplicate party id %s", p.ID))
			continue
		}
		seenParty[p.ID] = true

		if p.SecurityBalance.IsNegative() {
			errs = append(errs, fmt.Sprintf("party %s has negative security balance %s", p.ID, p.SecurityBalance))
		}
		if p.CurrencyBalance.IsNegative() {
			errs = append(errs, fmt.Sprintf("party %s has negative currency balance %s", p.ID, p.CurrencyBalance))
		}
		if p.ExchangeFactor != nil && !p.ExchangeFactor.Valid() {
			errs = append(errs, fmt.Sprintf("party %s has invalid exchange factor %+v", p.ID, *p.ExchangeFactor))
		}
	}

	seenTx := make(map[TransactionId]bool, len(s.Transactions))
	for _, tx := range s.Transactions {
		if seenTx[tx.ID] {
			errs = append(errs, fmt.Sprintf("duplicate transaction id %s", tx.ID))
			continue
		}
		seenTx[tx.ID] = true

		if !tx.SecurityAmount.IsPositive() {
			errs = append(errs, fmt.Sprintf("transaction %s has non-positive security amount %s", tx.ID, tx.SecurityAmount))
		}
		if !tx.CashAmount.IsPositive() {
			errs = append(errs, fmt.Sprintf("transaction %s has non-positive cash amount %s", tx.ID, tx.CashAmount))
		}
		if tx.SecurityFrom != tx.CashTo {
			errs = append(errs, fmt.Sprintf("transaction %s violates DvP: security_from %s != cash_to %s", tx.ID, tx.SecurityFrom, tx.CashTo))
		}
		if tx.SecurityTo != tx.CashFrom {
			errs = append(errs, fmt.Sprintf("transaction %s violates DvP: security_to %s != cash_from %s", tx.ID, tx.SecurityTo, tx.CashFrom))
		}
		if tx.SecurityFrom == tx.SecurityTo {
			errs = append(errs, fmt.Sprintf("transaction %s has identical security_from and security_to %s", tx.ID, tx.SecurityFrom))
		}
		if !seenParty[tx.SecurityFrom] {
			errs = append(errs, fmt.Sprintf("transaction %s references unknown party %s", tx.ID, tx.SecurityFrom))
		}
		if !seenParty[tx.SecurityTo] {
			errs = append(errs, fmt.Sprintf("transaction %s references unknown party %s", tx.ID, tx.SecurityTo))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &InvalidScenarioError{Details: errs}
}
