package settlement

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/market"
)

// AdmissibleTransactions returns every transaction id not already in
// selected that could be appended to it, alone, without driving any
// party's security or conversion-augmented wealth negative. It is the
// brute-force witness used by CheckMaximality: if this list is
// nonempty, selected under-settles.
func AdmissibleTransactions(m *market.Market, selected []market.TransactionId) ([]market.TransactionId, error) {
	base, err := market.Execute(m, selected)
	if err != nil {
		return nil, err
	}

	in := make(map[market.TransactionId]bool, len(selected))
	for _, t := range selected {
		in[t] = true
	}

	var admissible []market.TransactionId
	for t := 1; t <= m.NumTransactions; t++ {
		tid := market.TransactionId(t)
		if in[tid] {
			continue
		}
		if admits(m, base, tid) {
			admissible = append(admissible, tid)
		}
	}
	return admissible, nil
}

// admits reports whether applying tid's deltas on top of base would
// leave every touched party's security non-negative and
// conversion-augmented wealth non-negative.
func admits(m *market.Market, base *market.MarketState, tid market.TransactionId) bool {
	for p := 1; p <= m.NumParties; p++ {
		party := market.PartyId(p)
		security := base.SecurityAt(party).Add(m.TransactionSecurity(party, tid))
		if security.IsNegative() {
			return false
		}
		currency := base.CurrencyAt(party).Add(m.TransactionCurrency(party, tid))
		afterConversion := currency.Add(m.Conversion(party).Mul(security))
		if afterConversion.IsNegative() {
			return false
		}
	}
	return true
}

// CheckMaximality reports ErrNotMaximal, naming a witness admissible
// transaction, if selected leaves any requested transaction that could
// still execute without violating a party's constraints.
func CheckMaximality(m *market.Market, selected []market.TransactionId) error {
	admissible, err := AdmissibleTransactions(m, selected)
	if err != nil {
		return err
	}
	if len(admissible) > 0 {
		return fmt.Errorf("%w: %s is still admissible", ErrNotMaximal, admissible[0])
	}
	return nil
}
