package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// DoubleSolde flags accounts carrying a non-zero debit balance and a
// non-zero credit balance at the same time. A trial-balance line cannot
// legitimately sit on both sides; the usual cause is a lettering or import
// defect. Accounts under a prefix in the "exceptions" parameter (mixed-nature
// accounts such as 47, débiteurs et créditeurs divers) are skipped.
func DoubleSolde(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	exceptions := ctx.Params.Strings("exceptions")

	type sides struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byAccount := make(map[string]sides)
	var order []string

	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		s, seen := byAccount[e.Account]
		if !seen {
			s = sides{decimal.Zero, decimal.Zero}
			order = append(order, e.Account)
		}
		if !e.SoldeDebit.IsZero() || !e.SoldeCredit.IsZero() {
			s.debit = s.debit.Add(e.SoldeDebit)
			s.credit = s.credit.Add(e.SoldeCredit)
		} else if bal := e.Debit.Sub(e.Credit); bal.IsPositive() {
			s.debit = s.debit.Add(bal)
		} else {
			s.credit = s.credit.Add(bal.Neg())
		}
		byAccount[e.Account] = s
	}
	sort.Strings(order)

	var findings []model.Finding
	for _, account := range order {
		s := byAccount[account]
		if s.debit.IsZero() || s.credit.IsZero() {
			continue
		}
		if hasPrefix(account, exceptions) {
			continue
		}
		findings = append(findings, model.Finding{
			RuleCode: ctx.Rule.Code,
			Severity: model.SeverityCritical,
			Category: ctx.Rule.Category,
			Message: fmt.Sprintf("account %s carries both a debit balance (%s) and a credit balance (%s)",
				account, s.debit.StringFixed(2), s.credit.StringFixed(2)),
			Blocking:   true,
			Account:    account,
			Suggestion: "net the account or split it into its debit and credit sub-accounts",
		})
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}

func hasPrefix(account string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(account, p) {
			return true
		}
	}
	return false
}
