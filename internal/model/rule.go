package model

// Scope restricts a rule to the data it can see.
type Scope string

const (
	ScopeBalance    Scope = "BALANCE"
	ScopeStatements Scope = "STATEMENTS"
	ScopeBoth       Scope = "BOTH"
)

// Matches reports whether a rule with this scope runs for an evaluation scope.
// ScopeBoth always matches, on either side.
func (s Scope) Matches(eval Scope) bool {
	return s == ScopeBoth || eval == ScopeBoth || s == eval
}

// Severity grades a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityMajor    Severity = "MAJOR"
	SeverityMinor    Severity = "MINOR"
)

// Algorithm names a detector family. Each algorithm resolves to a registered
// native check function; rules never carry executable content themselves.
type Algorithm string

const (
	AlgoEquilibrium     Algorithm = "EQUILIBRIUM"
	AlgoDoubleSolde     Algorithm = "DOUBLE_SOLDE"
	AlgoSignConsistency Algorithm = "SIGN_CONSISTENCY"
	AlgoMapping         Algorithm = "MAPPING_RECONCILIATION"
	AlgoCascade         Algorithm = "CASCADE_CONSISTENCY"
	AlgoBenford         Algorithm = "BENFORD"
	AlgoDuplicates      Algorithm = "DUPLICATES"
	AlgoOutliers        Algorithm = "OUTLIERS"
	AlgoAntedating      Algorithm = "ANTEDATING"
)

// Scoring categories. Every rule carries exactly one; subscores are computed
// per category.
const (
	CategoryEquilibrium = "equilibrium"
	CategoryCoherence   = "coherence"
	CategoryFiscal      = "fiscal"
	CategoryAnnexes     = "annexes"
	CategoryRatios      = "ratios"
	CategoryEngine      = "engine"
)

// Rule is one control point: a uniquely coded, toggleable binding of a
// detector algorithm to a category, scope, severity, and parameter set.
type Rule struct {
	Code       string
	Name       string
	Category   string
	Scope      Scope
	Severity   Severity
	Algorithm  Algorithm
	Parameters map[string]any
	Enabled    bool
}
