package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscasync/fiscaudit/internal/model"
)

func TestClassify_ExactMatch(t *testing.T) {
	svc := NewService(DefaultChart())

	a, err := svc.Classify("411")
	require.NoError(t, err)
	assert.Equal(t, "411", a.Numero)
	assert.Equal(t, model.NatureActif, a.Nature)
	assert.Equal(t, model.SideDebit, a.NormalSide)
}

func TestClassify_LongestPrefix(t *testing.T) {
	svc := NewService(DefaultChart())

	// 411001 is not registered; it resolves to 411, not 41 or 4.
	a, err := svc.Classify("411001")
	require.NoError(t, err)
	assert.Equal(t, "411", a.Numero)

	// 412000 falls back one more level, to 41.
	a, err = svc.Classify("412000")
	require.NoError(t, err)
	assert.Equal(t, "41", a.Numero)
}

func TestClassify_ClassHeadFallback(t *testing.T) {
	svc := NewService(DefaultChart())

	// 250000: neither 2500, 250, nor 25 is registered; class head 2 catches it.
	a, err := svc.Classify("250000")
	require.NoError(t, err)
	assert.Equal(t, "2", a.Numero)
	assert.Equal(t, 2, a.Classe)
}

func TestClassify_NotFound(t *testing.T) {
	svc := NewService([]model.ChartAccount{
		{Numero: "41", Classe: 4, Nature: model.NatureActif, NormalSide: model.SideDebit},
	})

	_, err := svc.Classify("52100")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestClassify_ContraAccounts(t *testing.T) {
	svc := NewService(DefaultChart())

	// Amortissements sit in class 2 but carry a credit normal side.
	a, err := svc.Classify("2813")
	require.NoError(t, err)
	assert.Equal(t, "28", a.Numero)
	assert.Equal(t, model.SideCredit, a.NormalSide)
}

func TestFilterBySector(t *testing.T) {
	svc := NewService(DefaultChart())

	commerce := svc.FilterBySector("COMMERCE")
	industrie := svc.FilterBySector("INDUSTRIE")

	nums := func(accounts []model.ChartAccount) map[string]bool {
		m := make(map[string]bool)
		for _, a := range accounts {
			m[a.Numero] = true
		}
		return m
	}

	cn, in := nums(commerce), nums(industrie)

	// Unrestricted accounts appear for every sector.
	assert.True(t, cn["52"])
	assert.True(t, in["52"])

	// Marchandises are commerce-only, matières premières industrie-only.
	assert.True(t, cn["31"])
	assert.False(t, in["31"])
	assert.True(t, in["32"])
	assert.False(t, cn["32"])
}

func TestByClasse(t *testing.T) {
	svc := NewService(DefaultChart())

	for _, a := range svc.ByClasse(6) {
		assert.Equal(t, 6, a.Classe)
		assert.Equal(t, model.NatureCharge, a.Nature)
	}
	assert.NotEmpty(t, svc.ByClasse(6))
}
