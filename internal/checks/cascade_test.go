package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/model"
)

func TestCascade_MargeCommercialeMatches(t *testing.T) {
	// Marge commerciale = ventes de marchandises - achats de marchandises.
	snap := snapshot(
		model.LedgerEntry{Account: "701001", Date: date(2024, 1, 10), SoldeCredit: dec("900000.00")},
		model.LedgerEntry{Account: "601001", Date: date(2024, 1, 10), SoldeDebit: dec("600000.00")},
	)

	outcome, findings, err := CascadeConsistency(testCtx(snap, map[string]any{
		"derived_value": 300000.0,
		"tolerance":     1000.0,
		"components": []any{
			map[string]any{"name": "ventes de marchandises", "sign": 1, "prefixes": []string{"701"}, "side": "CREDIT"},
			map[string]any{"name": "achats de marchandises", "sign": -1, "prefixes": []string{"601"}},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}

func TestCascade_MismatchIsAlwaysCritical(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "701001", Date: date(2024, 1, 10), SoldeCredit: dec("900000.00")},
		model.LedgerEntry{Account: "601001", Date: date(2024, 1, 10), SoldeDebit: dec("600000.00")},
	)

	ctx := testCtx(snap, map[string]any{
		"derived_value": 350000.0,
		"tolerance":     1000.0,
		"line":          "Marge commerciale",
		"components": []any{
			map[string]any{"name": "ventes de marchandises", "sign": 1, "prefixes": []string{"701"}, "side": "CREDIT"},
			map[string]any{"name": "achats de marchandises", "sign": -1, "prefixes": []string{"601"}},
		},
	})
	// Even a MINOR-configured rule escalates: downstream subtotals inherit
	// the error.
	ctx.Rule.Severity = model.SeverityMinor

	outcome, findings, err := CascadeConsistency(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
	assert.True(t, findings[0].Blocking)
	assert.Contains(t, findings[0].Message, "Marge commerciale")
	assert.Contains(t, findings[0].Message, "50000.00")
}

func TestCascade_DeclaredComponentValues(t *testing.T) {
	// Valeur ajoutée from declared upstream subtotals, no balance lookups.
	outcome, findings, err := CascadeConsistency(testCtx(snapshot(), map[string]any{
		"derived_value": 250000.0,
		"tolerance":     1000.0,
		"components": []any{
			map[string]any{"name": "marge commerciale", "sign": 1, "value": 300000.0},
			map[string]any{"name": "services extérieurs", "sign": -1, "value": 50000.0},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}

func TestCascade_MissingParameters(t *testing.T) {
	_, _, err := CascadeConsistency(testCtx(snapshot(), map[string]any{
		"components": []any{map[string]any{"name": "x", "value": 1.0}},
	}))
	assert.Error(t, err)

	_, _, err = CascadeConsistency(testCtx(snapshot(), map[string]any{"derived_value": 1.0}))
	assert.Error(t, err)

	_, _, err = CascadeConsistency(testCtx(snapshot(), map[string]any{
		"derived_value": 1.0,
		"components":    []any{map[string]any{"name": "no source"}},
	}))
	assert.Error(t, err)
}
