package settlement

import (
	"fmt"

	"github.com/atmx/qumo-settle/internal/market"
)

// Validate executes txs against m and checks that the resulting state
// leaves every party solvent: non-negative security, and non-negative
// conversion-augmented wealth (currency + conversion*security) — the
// same two invariants Formulate encodes as IP constraints. It returns
// ErrInsolvent, wrapped with every offending party, if not.
func Validate(m *market.Market, txs []market.TransactionId) (*market.MarketState, error) {
	state, err := market.Execute(m, txs)
	if err != nil {
		return nil, err
	}

	var offenders []string
	for p := 1; p <= m.NumParties; p++ {
		party := market.PartyId(p)
		if state.SecurityAt(party).IsNegative() {
			offenders = append(offenders, fmt.Sprintf("%s security=%s", party, state.SecurityAt(party)))
		}
		if state.AfterConversionAt(party).IsNegative() {
			offenders = append(offenders, fmt.Sprintf("%s after-conversion wealth=%s", party, state.AfterConversionAt(party)))
		}
	}
	if len(offenders) > 0 {
		return state, fmt.Errorf("%w: %v", ErrInsolvent, offenders)
	}
	return state, nil
}
