package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/chart"
	"github.com/fiscasync/fiscaudit/internal/model"
)

const (
	algoOK    model.Algorithm = "TEST_OK"
	algoFail  model.Algorithm = "TEST_FAIL"
	algoError model.Algorithm = "TEST_ERROR"
	algoPanic model.Algorithm = "TEST_PANIC"
)

func testFuncs() map[model.Algorithm]CheckFunc {
	return map[model.Algorithm]CheckFunc{
		algoOK: func(Context) (model.Outcome, []model.Finding, error) {
			return model.OutcomePass, nil, nil
		},
		algoFail: func(ctx Context) (model.Outcome, []model.Finding, error) {
			return model.OutcomeFail, []model.Finding{{
				RuleCode: ctx.Rule.Code,
				Severity: ctx.Rule.Severity,
				Category: ctx.Rule.Category,
				Message:  "irregularity",
			}}, nil
		},
		algoError: func(Context) (model.Outcome, []model.Finding, error) {
			return "", nil, errors.New("malformed record")
		},
		algoPanic: func(Context) (model.Outcome, []model.Finding, error) {
			panic("index out of range")
		},
	}
}

func evalSnapshot() *model.TrialBalanceSnapshot {
	return model.NewSnapshot("2024-v001", "2024", 1, []model.LedgerEntry{
		{Account: "411001", Journal: "VE", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	})
}

func ruleWith(code string, algo model.Algorithm) model.Rule {
	r := testRule(code)
	r.Algorithm = algo
	return r
}

func TestEvaluate_OrderAndOutcomes(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(ruleWith("A.1", algoOK)))
	require.NoError(t, reg.Register(ruleWith("A.2", algoFail)))

	ev := NewEvaluator(reg, chart.NewService(chart.DefaultChart()), testFuncs())
	results := ev.Evaluate(evalSnapshot(), model.ScopeBalance)

	require.Len(t, results, 2)
	assert.Equal(t, "A.1", results[0].RuleCode)
	assert.Equal(t, model.OutcomePass, results[0].Outcome)
	assert.Equal(t, "A.2", results[1].RuleCode)
	assert.Equal(t, model.OutcomeFail, results[1].Outcome)
	require.Len(t, results[1].Findings, 1)
}

func TestEvaluate_IsolatesFailingRule(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(ruleWith("A.1", algoError)))
	require.NoError(t, reg.Register(ruleWith("A.2", algoOK)))

	ev := NewEvaluator(reg, chart.NewService(chart.DefaultChart()), testFuncs())
	results := ev.Evaluate(evalSnapshot(), model.ScopeBalance)

	// The broken rule becomes a synthetic CRITICAL engine finding...
	require.Len(t, results, 2)
	require.Len(t, results[0].Findings, 1)
	f := results[0].Findings[0]
	assert.Equal(t, model.SeverityCritical, f.Severity)
	assert.Equal(t, model.CategoryEngine, f.Category)
	assert.True(t, f.Blocking)

	// ...and the remaining rules still run.
	assert.Equal(t, model.OutcomePass, results[1].Outcome)
}

func TestEvaluate_IsolatesPanickingRule(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(ruleWith("A.1", algoPanic)))
	require.NoError(t, reg.Register(ruleWith("A.2", algoOK)))

	ev := NewEvaluator(reg, chart.NewService(chart.DefaultChart()), testFuncs())
	results := ev.Evaluate(evalSnapshot(), model.ScopeBalance)

	require.Len(t, results, 2)
	assert.Equal(t, model.OutcomeFail, results[0].Outcome)
	assert.Contains(t, results[0].Findings[0].Message, "panic")
	assert.Equal(t, model.OutcomePass, results[1].Outcome)
}

func TestEvaluate_UnknownAlgorithm(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(ruleWith("A.1", model.Algorithm("MISSING"))))

	ev := NewEvaluator(reg, chart.NewService(chart.DefaultChart()), testFuncs())
	results := ev.Evaluate(evalSnapshot(), model.ScopeBalance)

	require.Len(t, results, 1)
	assert.Equal(t, model.OutcomeFail, results[0].Outcome)
	assert.Equal(t, model.CategoryEngine, results[0].Findings[0].Category)
}

func TestEvaluate_Idempotent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(ruleWith("A.1", algoFail)))
	require.NoError(t, reg.Register(ruleWith("A.2", algoOK)))
	require.NoError(t, reg.Register(ruleWith("A.3", algoFail)))

	ev := NewEvaluator(reg, chart.NewService(chart.DefaultChart()), testFuncs())
	snap := evalSnapshot()

	first := ev.Evaluate(snap, model.ScopeBalance)
	second := ev.Evaluate(snap, model.ScopeBalance)
	assert.Equal(t, first, second)
}

func TestFindings_Flatten(t *testing.T) {
	results := []model.CheckResult{
		{RuleCode: "A.1", Findings: []model.Finding{{RuleCode: "A.1"}, {RuleCode: "A.1"}}},
		{RuleCode: "A.2"},
		{RuleCode: "A.3", Findings: []model.Finding{{RuleCode: "A.3"}}},
	}

	findings := Findings(results)
	require.Len(t, findings, 3)
	assert.Equal(t, "A.1", findings[0].RuleCode)
	assert.Equal(t, "A.3", findings[2].RuleCode)
}
