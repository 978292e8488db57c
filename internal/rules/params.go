package rules

// Params is a rule's parameter bag. Values arrive from Go literals or from
// YAML configuration, so the accessors tolerate the types both produce and
// fall back to the given default on a miss or type mismatch.
type Params map[string]any

// Float returns a numeric parameter.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

// Int returns an integer parameter.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Bool returns a boolean parameter.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

// String returns a string parameter.
func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Strings returns a string-list parameter. YAML decodes lists as []any, so
// both representations are accepted; non-string elements are skipped.
func (p Params) Strings(key string) []string {
	switch v := p[key].(type) {
	case []string:
		return v
	case []any:
		var result []string
		for _, e := range v {
			if s, ok := e.(string); ok {
				result = append(result, s)
			}
		}
		return result
	default:
		return nil
	}
}

// List returns a raw list parameter, for checks that decode structured
// elements themselves.
func (p Params) List(key string) []any {
	if v, ok := p[key].([]any); ok {
		return v
	}
	return nil
}

// Has reports whether a parameter is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}
