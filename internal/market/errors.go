package market

import "strings"

// InvalidScenarioError reports every violated DvP/positivity/duplicate-id
// invariant found while validating a Scenario, not just the first —
// mirroring the validator's "report every offending index" policy from
// the settlement package.
type InvalidScenarioError struct {
	Details []string
}

func (e *InvalidScenarioError) Error() string {
	return "market: invalid scenario: " + strings.Join(e.Details, "; ")
}
