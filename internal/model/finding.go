package model

// Finding is one detected irregularity. Findings are ordinary return values:
// a rule that finds problems reports them here, it does not fail.
type Finding struct {
	RuleCode   string   `json:"rule_code"`
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"`
	Message    string   `json:"message"`
	Blocking   bool     `json:"blocking"`
	Account    string   `json:"account,omitempty"`
	Field      string   `json:"field,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// Outcome is the tri-state result of running one rule.
type Outcome string

const (
	OutcomePass Outcome = "PASS"
	OutcomeFail Outcome = "FAIL"
	// OutcomeInsufficientData marks a statistical check whose sample was too
	// small to be meaningful. It is neither a pass nor a fail and is excluded
	// from scoring denominators.
	OutcomeInsufficientData Outcome = "INSUFFICIENT_DATA"
)

// CheckResult is the evaluator's output unit for one rule run.
type CheckResult struct {
	RuleCode string    `json:"rule_code"`
	Category string    `json:"category"`
	Outcome  Outcome   `json:"outcome"`
	Findings []Finding `json:"findings,omitempty"`
}
