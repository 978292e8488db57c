// Package report composes rule evaluation, ratio analysis and scoring into
// the final audit report.
package report

import (
	"fmt"
	"sync"
	"time"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/ratio"
	"github.com/fiscasync/fiscaudit/internal/rules"
	"github.com/fiscasync/fiscaudit/internal/scoring"
)

// Result is one full audit outcome: the certified report plus the financial
// analysis behind its ratio subscore.
type Result struct {
	Report   model.AuditReport       `json:"report"`
	Analysis model.FinancialAnalysis `json:"analysis"`
}

// Generator runs the audit pipeline over snapshots. Snapshots are immutable
// and evaluation is deterministic, so results are cached per snapshot and
// scope: re-requesting a report is a lookup, not a re-run.
type Generator struct {
	evaluator *rules.Evaluator
	ratios    *ratio.Engine
	weights   scoring.Weights

	mu    sync.Mutex
	cache map[string]*Result
}

// NewGenerator creates a Generator.
func NewGenerator(evaluator *rules.Evaluator, ratioEngine *ratio.Engine, weights scoring.Weights) *Generator {
	return &Generator{
		evaluator: evaluator,
		ratios:    ratioEngine,
		weights:   weights,
		cache:     make(map[string]*Result),
	}
}

// Generate audits a snapshot under the given scope. A cached result is
// returned as-is, original generation time included.
func (g *Generator) Generate(snapshot *model.TrialBalanceSnapshot, scope model.Scope) (*Result, error) {
	key := snapshot.ID() + "|" + string(scope)

	g.mu.Lock()
	if cached, ok := g.cache[key]; ok {
		g.mu.Unlock()
		return cached, nil
	}
	g.mu.Unlock()

	results := g.evaluator.Evaluate(snapshot, scope)

	ratios := g.ratios.Compute(snapshot)
	analysis := ratio.Analyze(ratios)
	results = append(results, ratioResults(ratios)...)

	summary, err := scoring.Compute(results, g.weights)
	if err != nil {
		return nil, fmt.Errorf("scoring snapshot %s: %w", snapshot.ID(), err)
	}

	result := &Result{
		Report: model.AuditReport{
			SnapshotID:    snapshot.ID(),
			GeneratedAt:   time.Now().UTC(),
			Findings:      rules.Findings(results),
			Subscores:     summary.Subscores,
			CheckCounts:   summary.Counts,
			Score:         summary.Score,
			Certification: summary.Certification,
		},
		Analysis: analysis,
	}

	g.mu.Lock()
	g.cache[key] = result
	g.mu.Unlock()
	return result, nil
}

// Invalidate drops the cached results for a snapshot, all scopes.
func (g *Generator) Invalidate(snapshotID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, scope := range []model.Scope{model.ScopeBalance, model.ScopeStatements, model.ScopeBoth} {
		delete(g.cache, snapshotID+"|"+string(scope))
	}
}

// ratioResults folds classified ratios into check results so they enter the
// weighted score like any other category. A ratio passes when its status is
// acceptable; a failing one carries a non-blocking finding graded by how far
// out of range it is.
func ratioResults(ratios []model.Ratio) []model.CheckResult {
	var results []model.CheckResult
	for _, r := range ratios {
		result := model.CheckResult{
			RuleCode: "ratio:" + r.Code,
			Category: model.CategoryRatios,
			Outcome:  model.OutcomePass,
		}
		if !r.Healthy() {
			severity := model.SeverityMinor
			if r.Status == model.StatusPoor || r.Status == model.StatusCritical {
				severity = model.SeverityMajor
			}
			result.Outcome = model.OutcomeFail
			result.Findings = []model.Finding{{
				RuleCode:   result.RuleCode,
				Severity:   severity,
				Category:   model.CategoryRatios,
				Message:    r.Interpretation,
				Field:      r.Code,
				Suggestion: "see the financial analysis for the recommended corrective action",
			}}
		}
		results = append(results, result)
	}
	return results
}
