package checks

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// SignConsistency verifies that aggregate account balances sit on the normal
// side their chart classification prescribes: a negative cash account or a
// debit-side capital account is an anomaly whatever the totals say. The
// "classe" parameter limits one rule instance to one account class, so the
// catalogue can grade classes differently (cash deviations are graded by the
// rule's severity, typically CRITICAL for class 5, MAJOR for stocks).
// Prefixes listed in "exceptions" are skipped; contra accounts (28, 39, 49,
// 59...) need no exception because the chart already carries their inverted
// normal side.
func SignConsistency(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	classe := ctx.Params.Int("classe", 0)
	if classe < 1 || classe > 9 {
		return "", nil, fmt.Errorf("sign consistency requires a classe parameter in 1..9, got %d", classe)
	}
	exceptions := ctx.Params.Strings("exceptions")

	balances := make(map[string]decimal.Decimal)
	var order []string
	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		if _, seen := balances[e.Account]; !seen {
			order = append(order, e.Account)
		}
		balances[e.Account] = balances[e.Account].Add(e.Balance())
	}
	sort.Strings(order)

	var findings []model.Finding
	for _, account := range order {
		bal := balances[account]
		if bal.IsZero() || hasPrefix(account, exceptions) {
			continue
		}

		ref, err := ctx.Chart.Classify(account)
		if err != nil {
			return "", nil, fmt.Errorf("classifying account %s: %w", account, err)
		}
		if ref.Classe != classe {
			continue
		}

		observed := model.SideDebit
		if bal.IsNegative() {
			observed = model.SideCredit
		}
		if observed == ref.NormalSide {
			continue
		}

		findings = append(findings, model.Finding{
			RuleCode: ctx.Rule.Code,
			Severity: ctx.Rule.Severity,
			Category: ctx.Rule.Category,
			Message: fmt.Sprintf("account %s (%s) has a %s balance of %s but its normal side is %s",
				account, ref.Libelle, sideWord(observed), bal.Abs().StringFixed(2), sideWord(ref.NormalSide)),
			Blocking:   ctx.Rule.Severity == model.SeverityCritical,
			Account:    account,
			Suggestion: "verify postings on this account: a reversed entry or missing counterpart is likely",
		})
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}

func sideWord(s model.Side) string {
	if s == model.SideDebit {
		return "debit"
	}
	return "credit"
}
