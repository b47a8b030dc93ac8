package scenarioio

import "errors"

// Sentinel errors for the CSV-like scenario text format. All are
// wrapped with the offending line/token via fmt.Errorf("%w: ...").
var (
	ErrMissingHeader   = errors.New("scenarioio: missing or malformed section header")
	ErrMalformedRow    = errors.New("scenarioio: malformed row")
	ErrMalformedToken  = errors.New("scenarioio: malformed party/transaction token")
	ErrMalformedClause = errors.New("scenarioio: malformed exchange clause")
)
