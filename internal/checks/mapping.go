package checks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// MappingReconciliation compares a balance-derived aggregate against a
// declared statement-line value (bilan or note line). Parameters:
//
//	source_prefixes: account prefixes feeding the line
//	side:            DEBIT (default) or CREDIT, the line's positive side
//	target_value:    the declared line value
//	tolerance:       accepted gap, in currency units
//	line:            statement line label, for messages
//
// The declared value arrives per engagement through rule configuration; a
// rule run without it is a configuration fault.
func MappingReconciliation(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	prefixes := ctx.Params.Strings("source_prefixes")
	if len(prefixes) == 0 {
		return "", nil, errors.New("mapping reconciliation requires source_prefixes")
	}
	if !ctx.Params.Has("target_value") {
		return "", nil, errors.New("mapping reconciliation requires target_value")
	}
	target := decimal.NewFromFloat(ctx.Params.Float("target_value", 0))
	tolerance := decimal.NewFromFloat(ctx.Params.Float("tolerance", defaultTolerance))
	line := ctx.Params.String("line", strings.Join(prefixes, "+"))

	derived := ctx.Balance.Net(prefixes...)
	if strings.EqualFold(ctx.Params.String("side", "DEBIT"), string(model.SideCredit)) {
		derived = derived.Neg()
	}

	gap := derived.Sub(target).Abs()
	if gap.LessThanOrEqual(tolerance) {
		return model.OutcomePass, nil, nil
	}

	return model.OutcomeFail, []model.Finding{{
		RuleCode: ctx.Rule.Code,
		Severity: ctx.Rule.Severity,
		Category: ctx.Rule.Category,
		Message: fmt.Sprintf("line %q declares %s but accounts %s aggregate to %s (gap %s)",
			line, target.StringFixed(2), strings.Join(prefixes, ","), derived.StringFixed(2), gap.StringFixed(2)),
		Blocking:   ctx.Rule.Severity == model.SeverityCritical,
		Field:      line,
		Suggestion: "re-derive the statement line from the balance or correct the account mapping",
	}}, nil
}
