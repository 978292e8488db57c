package checks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// cascadeComponent is one named term of a cascade identity, valued either by
// aggregating account prefixes or by a declared figure.
type cascadeComponent struct {
	name     string
	sign     int
	prefixes []string
	side     model.Side
	value    decimal.Decimal
	declared bool
}

// CascadeConsistency verifies that a derived statement subtotal equals the
// documented arithmetic combination of its components (marge commerciale,
// valeur ajoutée, EBE and the rest of the soldes intermédiaires de gestion).
// A cascade error propagates to every downstream subtotal, so any mismatch
// beyond tolerance is CRITICAL regardless of the rule's configured severity.
//
// Parameters:
//
//	derived_value: the declared subtotal under test
//	components:    list of {name, sign, prefixes, side} or {name, sign, value}
//	tolerance:     accepted gap, in currency units
//	line:          subtotal label, for messages
func CascadeConsistency(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	if !ctx.Params.Has("derived_value") {
		return "", nil, errors.New("cascade consistency requires derived_value")
	}
	derived := decimal.NewFromFloat(ctx.Params.Float("derived_value", 0))
	tolerance := decimal.NewFromFloat(ctx.Params.Float("tolerance", defaultTolerance))
	line := ctx.Params.String("line", ctx.Rule.Name)

	components, err := decodeComponents(ctx.Params.List("components"))
	if err != nil {
		return "", nil, err
	}
	if len(components) == 0 {
		return "", nil, errors.New("cascade consistency requires components")
	}

	computed := decimal.Zero
	var terms []string
	for _, c := range components {
		v := c.value
		if !c.declared {
			v = ctx.Balance.Net(c.prefixes...)
			if c.side == model.SideCredit {
				v = v.Neg()
			}
		}
		if c.sign < 0 {
			computed = computed.Sub(v)
			terms = append(terms, "- "+c.name)
		} else {
			computed = computed.Add(v)
			terms = append(terms, "+ "+c.name)
		}
	}

	gap := computed.Sub(derived).Abs()
	if gap.LessThanOrEqual(tolerance) {
		return model.OutcomePass, nil, nil
	}

	return model.OutcomeFail, []model.Finding{{
		RuleCode: ctx.Rule.Code,
		Severity: model.SeverityCritical,
		Category: ctx.Rule.Category,
		Message: fmt.Sprintf("subtotal %q declares %s but its components (%s) combine to %s (gap %s)",
			line, derived.StringFixed(2), strings.Join(terms, " "), computed.StringFixed(2), gap.StringFixed(2)),
		Blocking:   true,
		Field:      line,
		Suggestion: "correct this subtotal before any downstream one: cascade errors propagate",
	}}, nil
}

func decodeComponents(raw []any) ([]cascadeComponent, error) {
	var components []cascadeComponent
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("component %d: expected a mapping, got %T", i+1, item)
		}
		p := rules.Params(m)

		c := cascadeComponent{
			name: p.String("name", fmt.Sprintf("component %d", i+1)),
			sign: p.Int("sign", 1),
			side: model.SideDebit,
		}
		if strings.EqualFold(p.String("side", "DEBIT"), string(model.SideCredit)) {
			c.side = model.SideCredit
		}

		switch {
		case p.Has("value"):
			c.value = decimal.NewFromFloat(p.Float("value", 0))
			c.declared = true
		case len(p.Strings("prefixes")) > 0:
			c.prefixes = p.Strings("prefixes")
		default:
			return nil, fmt.Errorf("component %q: needs either value or prefixes", c.name)
		}
		components = append(components, c)
	}
	return components, nil
}
