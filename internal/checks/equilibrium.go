package checks

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// defaultTolerance is the equilibrium ε: one cent of the currency unit.
const defaultTolerance = 0.01

// Equilibrium verifies that total debits equal total credits within
// tolerance. A global mismatch is CRITICAL (the balance is unusable); a
// journal-level mismatch is MAJOR. The "mode" parameter selects the global
// check, the per-journal check, or both (the default).
func Equilibrium(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	tolerance := decimal.NewFromFloat(ctx.Params.Float("tolerance", defaultTolerance))
	mode := ctx.Params.String("mode", "both")
	if mode != "global" && mode != "journals" && mode != "both" {
		return "", nil, fmt.Errorf("invalid equilibrium mode %q", mode)
	}

	type totals struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	global := totals{decimal.Zero, decimal.Zero}
	byJournal := make(map[string]totals)

	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		d, c := e.Debit, e.Credit
		if !e.SoldeDebit.IsZero() || !e.SoldeCredit.IsZero() {
			d, c = e.SoldeDebit, e.SoldeCredit
		}
		global.debit = global.debit.Add(d)
		global.credit = global.credit.Add(c)
		jt := byJournal[e.Journal]
		if jt.debit.IsZero() && jt.credit.IsZero() {
			jt = totals{decimal.Zero, decimal.Zero}
		}
		jt.debit = jt.debit.Add(d)
		jt.credit = jt.credit.Add(c)
		byJournal[e.Journal] = jt
	}

	var findings []model.Finding

	if gap := global.debit.Sub(global.credit).Abs(); mode != "journals" && gap.GreaterThan(tolerance) {
		findings = append(findings, model.Finding{
			RuleCode: ctx.Rule.Code,
			Severity: model.SeverityCritical,
			Category: ctx.Rule.Category,
			Message: fmt.Sprintf("trial balance out of equilibrium: debits %s, credits %s, gap %s",
				global.debit.StringFixed(2), global.credit.StringFixed(2), gap.StringFixed(2)),
			Blocking:   true,
			Field:      "total",
			Suggestion: "reconcile the import source: a balanced ledger must have equal debit and credit totals",
		})
	}

	journals := make([]string, 0, len(byJournal))
	if mode != "global" {
		for j := range byJournal {
			journals = append(journals, j)
		}
		sort.Strings(journals)
	}

	for _, j := range journals {
		jt := byJournal[j]
		if gap := jt.debit.Sub(jt.credit).Abs(); gap.GreaterThan(tolerance) {
			findings = append(findings, model.Finding{
				RuleCode: ctx.Rule.Code,
				Severity: model.SeverityMajor,
				Category: ctx.Rule.Category,
				Message: fmt.Sprintf("journal %s out of equilibrium: debits %s, credits %s, gap %s",
					j, jt.debit.StringFixed(2), jt.credit.StringFixed(2), gap.StringFixed(2)),
				Field:      "journal:" + j,
				Suggestion: "check for one-sided entries posted to journal " + j,
			})
		}
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}
