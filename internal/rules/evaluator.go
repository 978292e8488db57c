package rules

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/chart"
	"github.com/fiscasync/fiscaudit/internal/model"
)

// Context is what a check function sees for one rule run: the immutable
// snapshot, the shared aggregator over it, the chart reference, and the
// rule's resolved definition and parameters.
type Context struct {
	Snapshot *model.TrialBalanceSnapshot
	Balance  *balance.Aggregator
	Chart    *chart.Service
	Rule     model.Rule
	Params   Params
}

// CheckFunc is one detector algorithm. Irregularities come back as findings;
// an error is reserved for faults of the rule itself (missing parameters,
// malformed data) and triggers the evaluator's failure isolation.
type CheckFunc func(Context) (model.Outcome, []model.Finding, error)

// Evaluator runs the applicable rules of a registry against a snapshot.
type Evaluator struct {
	registry *Registry
	chart    *chart.Service
	funcs    map[model.Algorithm]CheckFunc
}

// NewEvaluator creates an Evaluator. funcs maps each algorithm family to its
// native implementation.
func NewEvaluator(registry *Registry, chartSvc *chart.Service, funcs map[model.Algorithm]CheckFunc) *Evaluator {
	return &Evaluator{registry: registry, chart: chartSvc, funcs: funcs}
}

// Evaluate runs every enabled, scope-matching rule in registration order and
// returns one CheckResult per rule. Evaluation is stateless and
// deterministic: the same snapshot and parameters yield the same results in
// the same order. A failing rule is converted into a synthetic CRITICAL
// engine finding and never aborts the batch.
func (e *Evaluator) Evaluate(snapshot *model.TrialBalanceSnapshot, scope model.Scope) []model.CheckResult {
	agg := balance.NewAggregator(snapshot)

	var results []model.CheckResult
	for _, rule := range e.registry.Enabled(scope) {
		results = append(results, e.run(snapshot, agg, rule))
	}
	return results
}

func (e *Evaluator) run(snapshot *model.TrialBalanceSnapshot, agg *balance.Aggregator, rule model.Rule) (result model.CheckResult) {
	result = model.CheckResult{RuleCode: rule.Code, Category: rule.Category}

	// One broken rule must never take the batch down.
	defer func() {
		if r := recover(); r != nil {
			result = engineFailure(rule, fmt.Errorf("panic: %v", r))
		}
	}()

	fn, ok := e.funcs[rule.Algorithm]
	if !ok {
		return engineFailure(rule, fmt.Errorf("no implementation for algorithm %q", rule.Algorithm))
	}

	outcome, findings, err := fn(Context{
		Snapshot: snapshot,
		Balance:  agg,
		Chart:    e.chart,
		Rule:     rule,
		Params:   Params(rule.Parameters),
	})
	if err != nil {
		return engineFailure(rule, err)
	}

	result.Outcome = outcome
	result.Findings = findings
	return result
}

// engineFailure converts a rule fault into a synthetic blocking finding so
// the caller still receives a complete report.
func engineFailure(rule model.Rule, err error) model.CheckResult {
	return model.CheckResult{
		RuleCode: rule.Code,
		Category: rule.Category,
		Outcome:  model.OutcomeFail,
		Findings: []model.Finding{{
			RuleCode: rule.Code,
			Severity: model.SeverityCritical,
			Category: model.CategoryEngine,
			Message:  fmt.Sprintf("rule %s (%s) could not run: %v", rule.Code, rule.Name, err),
			Blocking: true,
		}},
	}
}

// Findings flattens results into one ordered finding list.
func Findings(results []model.CheckResult) []model.Finding {
	var findings []model.Finding
	for _, r := range results {
		findings = append(findings, r.Findings...)
	}
	return findings
}
