package checks

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/chart"
	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func snapshot(entries ...model.LedgerEntry) *model.TrialBalanceSnapshot {
	return model.NewSnapshot("2024-v001", "2024", 1, entries)
}

// testCtx builds a Context the way the evaluator does, with a default rule
// shell that individual tests override as needed.
func testCtx(snap *model.TrialBalanceSnapshot, params map[string]any) rules.Context {
	return rules.Context{
		Snapshot: snap,
		Balance:  balance.NewAggregator(snap),
		Chart:    chart.NewService(chart.DefaultChart()),
		Rule: model.Rule{
			Code:     "T.1",
			Name:     "test rule",
			Category: model.CategoryCoherence,
			Scope:    model.ScopeBalance,
			Severity: model.SeverityMajor,
			Enabled:  true,
		},
		Params: params,
	}
}

// balancedPair returns a debit and credit entry of the same amount.
func balancedPair(debitAccount, creditAccount, amount string, d time.Time) []model.LedgerEntry {
	return []model.LedgerEntry{
		{Account: debitAccount, Journal: "OD", Date: d, PieceDate: d, Debit: dec(amount)},
		{Account: creditAccount, Journal: "OD", Date: d, PieceDate: d, Credit: dec(amount)},
	}
}
