package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/model"
)

func TestEquilibrium_Balanced(t *testing.T) {
	snap := snapshot(balancedPair("601001", "401001", "2500.00", date(2024, 3, 5))...)

	outcome, findings, err := Equilibrium(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}

func TestEquilibrium_GlobalMismatchIsCritical(t *testing.T) {
	// Σdebit = 1,000,000.00 vs Σcredit = 999,995.00 with ε = 0.01.
	snap := snapshot(
		model.LedgerEntry{Account: "411001", Journal: "VE", Date: date(2024, 1, 10), Debit: dec("1000000.00")},
		model.LedgerEntry{Account: "701001", Journal: "VE", Date: date(2024, 1, 10), Credit: dec("999995.00")},
	)

	outcome, findings, err := Equilibrium(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	require.NotEmpty(t, findings)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
	assert.True(t, findings[0].Blocking)
	assert.Contains(t, findings[0].Message, "5.00")
}

func TestEquilibrium_WithinTolerancePasses(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "411001", Journal: "VE", Date: date(2024, 1, 10), Debit: dec("100.00")},
		model.LedgerEntry{Account: "701001", Journal: "VE", Date: date(2024, 1, 10), Credit: dec("99.99")},
	)

	// Gap of exactly 0.01 is inside ε.
	outcome, findings, err := Equilibrium(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}

func TestEquilibrium_PerJournalMismatchIsMajor(t *testing.T) {
	// Globally balanced, but each journal is off by 50.
	snap := snapshot(
		model.LedgerEntry{Account: "411001", Journal: "VE", Date: date(2024, 1, 10), Debit: dec("100.00")},
		model.LedgerEntry{Account: "701001", Journal: "VE", Date: date(2024, 1, 10), Credit: dec("50.00")},
		model.LedgerEntry{Account: "601001", Journal: "AC", Date: date(2024, 1, 11), Debit: dec("50.00")},
		model.LedgerEntry{Account: "401001", Journal: "AC", Date: date(2024, 1, 11), Credit: dec("100.00")},
	)

	outcome, findings, err := Equilibrium(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	require.Len(t, findings, 2)
	// Journals are reported in lexical order, deterministically.
	assert.Contains(t, findings[0].Message, "journal AC")
	assert.Contains(t, findings[1].Message, "journal VE")
	for _, f := range findings {
		assert.Equal(t, model.SeverityMajor, f.Severity)
	}
}

func TestEquilibrium_ModeGlobalIgnoresJournals(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "411001", Journal: "VE", Date: date(2024, 1, 10), Debit: dec("100.00")},
		model.LedgerEntry{Account: "701001", Journal: "AC", Date: date(2024, 1, 10), Credit: dec("100.00")},
	)

	outcome, findings, err := Equilibrium(testCtx(snap, map[string]any{"mode": "global"}))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)

	outcome, findings, err = Equilibrium(testCtx(snap, map[string]any{"mode": "journals"}))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	assert.Len(t, findings, 2)
}

func TestEquilibrium_SoldesPreferred(t *testing.T) {
	// Movements balance but the pre-computed soldes do not.
	snap := snapshot(
		model.LedgerEntry{Account: "411001", Date: date(2024, 1, 10), Debit: dec("100.00"), Credit: dec("100.00"), SoldeDebit: dec("40.00")},
	)

	outcome, _, err := Equilibrium(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
}

func TestEquilibrium_InvalidMode(t *testing.T) {
	snap := snapshot()
	_, _, err := Equilibrium(testCtx(snap, map[string]any{"mode": "sideways"}))
	assert.Error(t, err)
}
