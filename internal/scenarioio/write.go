package scenarioio

import (
	"fmt"
	"io"

	"github.com/atmx/qumo-settle/internal/market"
)

// Write serializes s back into the CSV-like text format Parse reads,
// in party-then-transaction order, one blank line between sections.
// Not named by the external interface but a natural round-trip
// companion to Parse.
func Write(w io.Writer, s market.Scenario) error {
	if _, err := fmt.Fprintln(w, partyHeader); err != nil {
		return err
	}
	for _, p := range s.Parties {
		if p.ExchangeFactor != nil {
			_, err := fmt.Fprintf(w, "%s,%s,%s,%s converts %d S into %d C\n",
				p.ID, p.SecurityBalance, p.CurrencyBalance, p.ID,
				p.ExchangeFactor.Security, p.ExchangeFactor.Currency)
			if err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s,%s,%s\n", p.ID, p.SecurityBalance, p.CurrencyBalance); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, transactionHeader); err != nil {
		return err
	}
	for _, t := range s.Transactions {
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s,%s,%s\n",
			t.ID, t.SecurityFrom, t.SecurityTo, t.SecurityAmount, t.CashFrom, t.CashTo, t.CashAmount)
		if err != nil {
			return err
		}
	}
	return nil
}
