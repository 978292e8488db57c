package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/model"
)

const sampleConfig = `
rules:
  - code: I.1.1
    parameters:
      tolerance: 0.05
  - code: I.5.1
    enabled: false
  - code: I.1.2
    severity_override: CRITICAL
`

func TestApplyConfiguration(t *testing.T) {
	reg := NewRegistry()
	r1 := testRule("I.1.1")
	r1.Parameters = map[string]any{"tolerance": 0.01}
	require.NoError(t, reg.Register(r1))
	require.NoError(t, reg.Register(testRule("I.5.1")))
	require.NoError(t, reg.Register(testRule("I.1.2")))

	cfg, err := ParseConfiguration(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Apply(reg))

	r, _ := reg.Get("I.1.1")
	assert.Equal(t, 0.05, Params(r.Parameters).Float("tolerance", 0))
	assert.True(t, r.Enabled, "parameters-only override must not touch enabled")

	r, _ = reg.Get("I.5.1")
	assert.False(t, r.Enabled)

	r, _ = reg.Get("I.1.2")
	assert.Equal(t, model.SeverityCritical, r.Severity)
}

func TestApplyConfiguration_UnknownCode(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testRule("I.1.1")))

	cfg := &Configuration{Rules: []RuleConfig{{Code: "I.9.9"}}}
	err := cfg.Apply(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownRuleCode)
}

func TestParseConfiguration_Invalid(t *testing.T) {
	_, err := ParseConfiguration(strings.NewReader("rules: {not a list"))
	assert.Error(t, err)
}

func TestParams_Accessors(t *testing.T) {
	p := Params{
		"tolerance":  0.01,
		"min_sample": 30,
		"exceptions": []any{"47", "58"},
		"line":       "Marge commerciale",
		"strict":     true,
	}

	assert.Equal(t, 0.01, p.Float("tolerance", 1))
	assert.Equal(t, 30.0, p.Float("min_sample", 1)) // int promoted
	assert.Equal(t, 30, p.Int("min_sample", 0))
	assert.Equal(t, []string{"47", "58"}, p.Strings("exceptions"))
	assert.Equal(t, "Marge commerciale", p.String("line", ""))
	assert.True(t, p.Bool("strict", false))

	// Defaults on misses.
	assert.Equal(t, 0.85, p.Float("similarity", 0.85))
	assert.Nil(t, p.Strings("missing"))
	assert.False(t, p.Has("missing"))
}
