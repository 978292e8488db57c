package rules

import (
	"errors"
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/model"
)

var (
	// ErrDuplicateRuleCode means a rule with the same code is already
	// registered.
	ErrDuplicateRuleCode = errors.New("duplicate rule code")
	// ErrUnknownRuleCode means no rule with the requested code exists. This
	// is a configuration-time fault, never produced during evaluation.
	ErrUnknownRuleCode = errors.New("unknown rule code")
)

// Registry holds the control-point definitions. Rules are kept in
// registration order, which fixes the evaluation order and makes repeated
// runs yield identical finding sequences.
type Registry struct {
	order  []string
	byCode map[string]*model.Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byCode: make(map[string]*model.Rule)}
}

// Register adds a rule definition.
func (r *Registry) Register(rule model.Rule) error {
	if rule.Code == "" {
		return errors.New("rule code must not be empty")
	}
	if _, ok := r.byCode[rule.Code]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRuleCode, rule.Code)
	}
	cp := rule
	cp.Parameters = cloneParams(rule.Parameters)
	r.byCode[rule.Code] = &cp
	r.order = append(r.order, rule.Code)
	return nil
}

// Get returns a rule by code.
func (r *Registry) Get(code string) (model.Rule, error) {
	rule, ok := r.byCode[code]
	if !ok {
		return model.Rule{}, fmt.Errorf("%w: %q", ErrUnknownRuleCode, code)
	}
	return copyRule(rule), nil
}

// SetEnabled toggles a rule without deleting its definition.
func (r *Registry) SetEnabled(code string, enabled bool) error {
	rule, ok := r.byCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRuleCode, code)
	}
	rule.Enabled = enabled
	return nil
}

// SetSeverity overrides a rule's severity. Sign-consistency and mapping
// points grade their findings with the rule severity; the other algorithm
// families fix their own finding severities and ignore the override.
func (r *Registry) SetSeverity(code string, severity model.Severity) error {
	switch severity {
	case model.SeverityCritical, model.SeverityMajor, model.SeverityMinor:
	default:
		return fmt.Errorf("invalid severity %q for rule %q", severity, code)
	}
	rule, ok := r.byCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRuleCode, code)
	}
	rule.Severity = severity
	return nil
}

// MergeParameters overlays parameter values onto a rule's parameter set.
func (r *Registry) MergeParameters(code string, params map[string]any) error {
	rule, ok := r.byCode[code]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRuleCode, code)
	}
	if rule.Parameters == nil {
		rule.Parameters = make(map[string]any, len(params))
	}
	for k, v := range params {
		rule.Parameters[k] = v
	}
	return nil
}

// All returns all rules in registration order.
func (r *Registry) All() []model.Rule {
	result := make([]model.Rule, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, copyRule(r.byCode[code]))
	}
	return result
}

// Enabled returns the enabled rules whose scope matches the evaluation scope,
// in registration order.
func (r *Registry) Enabled(scope model.Scope) []model.Rule {
	var result []model.Rule
	for _, code := range r.order {
		rule := r.byCode[code]
		if rule.Enabled && rule.Scope.Matches(scope) {
			result = append(result, copyRule(rule))
		}
	}
	return result
}

// copyRule detaches a returned rule from the registry's live state so that
// callers cannot mutate parameters behind the registry's back.
func copyRule(rule *model.Rule) model.Rule {
	cp := *rule
	cp.Parameters = cloneParams(rule.Parameters)
	return cp
}

func cloneParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	cp := make(map[string]any, len(params))
	for k, v := range params {
		cp[k] = v
	}
	return cp
}
