package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/model"
)

func TestDoubleSolde_BothSidesIsCritical(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "411050", Date: date(2024, 1, 10), SoldeDebit: dec("100.00"), SoldeCredit: dec("50.00")},
		model.LedgerEntry{Account: "701001", Date: date(2024, 1, 10), SoldeCredit: dec("50.00")},
	)

	outcome, findings, err := DoubleSolde(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	require.Len(t, findings, 1)
	assert.Equal(t, model.SeverityCritical, findings[0].Severity)
	assert.Equal(t, "411050", findings[0].Account)
	assert.True(t, findings[0].Blocking)
}

func TestDoubleSolde_SingleSidePasses(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "411050", Date: date(2024, 1, 10), SoldeDebit: dec("100.00")},
		model.LedgerEntry{Account: "401001", Date: date(2024, 1, 10), SoldeCredit: dec("100.00")},
	)

	outcome, findings, err := DoubleSolde(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}

func TestDoubleSolde_AcrossJournals(t *testing.T) {
	// The same account sits debit in one journal and credit in another.
	snap := snapshot(
		model.LedgerEntry{Account: "421001", Journal: "PA", Date: date(2024, 1, 10), Debit: dec("300.00")},
		model.LedgerEntry{Account: "421001", Journal: "OD", Date: date(2024, 1, 20), Credit: dec("120.00")},
	)

	outcome, findings, err := DoubleSolde(testCtx(snap, nil))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeFail, outcome)
	require.Len(t, findings, 1)
	assert.Equal(t, "421001", findings[0].Account)
}

func TestDoubleSolde_ExceptionListSkips(t *testing.T) {
	snap := snapshot(
		model.LedgerEntry{Account: "471001", Date: date(2024, 1, 10), SoldeDebit: dec("100.00"), SoldeCredit: dec("50.00")},
	)

	outcome, findings, err := DoubleSolde(testCtx(snap, map[string]any{"exceptions": []string{"47"}}))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomePass, outcome)
	assert.Empty(t, findings)
}
