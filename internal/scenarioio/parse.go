// Package scenarioio reads and writes the CSV-like text format used
// to hand-author settlement scenarios: two sections (parties, then
// transactions) separated by one or more blank lines, each with a
// fixed header row.
package scenarioio

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atmx/qumo-settle/internal/market"
)

const partyHeader = "Party Id,Security Balance,Currency Balance,CCF Exchange Factor"
const transactionHeader = "Transaction Id,From,To,Security Amount,From,To,Cash Amount"

// partyTokenRegex matches a bare party reference like "P3".
var partyTokenRegex = regexp.MustCompile(`^P(\d+)$`)

// exchangeClauseRegex matches "P<id> converts <s> S into <c> C".
var exchangeClauseRegex = regexp.MustCompile(`^P(\d+)\s+converts\s+(\d+)\s+S\s+into\s+(\d+)\s+C$`)

// Parse reads a Scenario from r in the CSV-like text format described
// by the settlement core's external interface: a party section and a
// transaction section, separated by blank lines, each with a fixed
// header row. All numeric literals are non-negative decimal integers;
// whitespace around commas is ignored.
func Parse(r io.Reader) (market.Scenario, error) {
	lines, err := splitSections(r)
	if err != nil {
		return market.Scenario{}, err
	}
	if len(lines) != 2 {
		return market.Scenario{}, fmt.Errorf("%w: expected 2 sections, found %d", ErrMissingHeader, len(lines))
	}

	parties, err := parsePartySection(lines[0])
	if err != nil {
		return market.Scenario{}, err
	}
	transactions, err := parseTransactionSection(lines[1])
	if err != nil {
		return market.Scenario{}, err
	}

	return market.Scenario{Parties: parties, Transactions: transactions}, nil
}

// splitSections scans r line by line, trims whitespace, and groups
// non-blank lines into consecutive blocks separated by one or more
// blank lines.
func splitSections(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(r)
	var sections [][]string
	var current []string

	flush := func() {
		if len(current) > 0 {
			sections = append(sections, current)
			current = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scenarioio: reading input: %w", err)
	}
	return sections, nil
}

func splitRow(line string) []string {
	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

func parsePartyToken(tok string) (market.PartyId, error) {
	m := partyTokenRegex.FindStringSubmatch(tok)
	if m == nil {
		return 0, fmt.Errorf("%w: %q (expected P<id>)", ErrMalformedToken, tok)
	}
	id, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	return market.PartyId(id), nil
}

func parseTransactionToken(tok string) (market.TransactionId, error) {
	if len(tok) < 2 || tok[0] != 'T' {
		return 0, fmt.Errorf("%w: %q (expected T<id>)", ErrMalformedToken, tok)
	}
	id, err := strconv.ParseUint(tok[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedToken, tok)
	}
	return market.TransactionId(id), nil
}

// parseNonNegativeInt parses a non-negative decimal integer literal,
// the only numeric literal form the text format allows, directly into
// an exact decimal.
func parseNonNegativeInt(field string) (decimal.Decimal, error) {
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%q is not a non-negative integer", field)
	}
	return decimal.NewFromInt(int64(n)), nil
}

func parsePartySection(lines []string) ([]market.PartyInfo, error) {
	if len(lines) == 0 || lines[0] != partyHeader {
		return nil, fmt.Errorf("%w: party section header must be %q", ErrMissingHeader, partyHeader)
	}

	parties := make([]market.PartyInfo, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitRow(line)
		if len(fields) != 3 && len(fields) != 4 {
			return nil, fmt.Errorf("%w: party row %q has %d fields, want 3 or 4", ErrMalformedRow, line, len(fields))
		}

		id, err := parsePartyToken(fields[0])
		if err != nil {
			return nil, err
		}
		security, err := parseNonNegativeInt(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: party %s security balance: %v", ErrMalformedRow, fields[0], err)
		}
		currency, err := parseNonNegativeInt(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: party %s currency balance: %v", ErrMalformedRow, fields[0], err)
		}

		party := market.PartyInfo{ID: id, SecurityBalance: security, CurrencyBalance: currency}

		if len(fields) == 4 && fields[3] != "" {
			factor, err := parseExchangeClause(fields[3], id)
			if err != nil {
				return nil, err
			}
			party.ExchangeFactor = factor
		}

		parties = append(parties, party)
	}
	return parties, nil
}

func parseExchangeClause(clause string, owner market.PartyId) (*market.ExchangeFactor, error) {
	m := exchangeClauseRegex.FindStringSubmatch(clause)
	if m == nil {
		return nil, fmt.Errorf("%w: %q (expected \"P<id> converts <s> S into <c> C\")", ErrMalformedClause, clause)
	}
	clauseOwner, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
	}
	if market.PartyId(clauseOwner) != owner {
		return nil, fmt.Errorf("%w: clause party %s does not match row party %s", ErrMalformedClause, market.PartyId(clauseOwner), owner)
	}
	security, err := strconv.ParseUint(m[2], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
	}
	currency, err := strconv.ParseUint(m[3], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedClause, clause)
	}
	return &market.ExchangeFactor{Security: uint32(security), Currency: uint32(currency)}, nil
}

func parseTransactionSection(lines []string) ([]market.TransactionInfo, error) {
	if len(lines) == 0 || lines[0] != transactionHeader {
		return nil, fmt.Errorf("%w: transaction section header must be %q", ErrMissingHeader, transactionHeader)
	}

	txs := make([]market.TransactionInfo, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitRow(line)
		if len(fields) != 7 {
			return nil, fmt.Errorf("%w: transaction row %q has %d fields, want 7", ErrMalformedRow, line, len(fields))
		}

		id, err := parseTransactionToken(fields[0])
		if err != nil {
			return nil, err
		}
		securityFrom, err := parsePartyToken(fields[1])
		if err != nil {
			return nil, err
		}
		securityTo, err := parsePartyToken(fields[2])
		if err != nil {
			return nil, err
		}
		securityAmount, err := parseNonNegativeInt(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s security amount: %v", ErrMalformedRow, fields[0], err)
		}
		cashFrom, err := parsePartyToken(fields[4])
		if err != nil {
			return nil, err
		}
		cashTo, err := parsePartyToken(fields[5])
		if err != nil {
			return nil, err
		}
		cashAmount, err := parseNonNegativeInt(fields[6])
		if err != nil {
			return nil, fmt.Errorf("%w: transaction %s cash amount: %v", ErrMalformedRow, fields[0], err)
		}

		txs = append(txs, market.TransactionInfo{
			ID:             id,
			SecurityFrom:   securityFrom,
			SecurityTo:     securityTo,
			SecurityAmount: securityAmount,
			CashFrom:       cashFrom,
			CashTo:         cashTo,
			CashAmount:     cashAmount,
		})
	}
	return txs, nil
}
