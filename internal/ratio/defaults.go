package ratio

import (
	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/model"
)

// Balance-side aggregates feeding the ratio set. Net is debit-positive, so
// credit-natured masses are negated.

func currentAssets(b *balance.Aggregator) float64 {
	return b.Net("3").Add(b.Net("41")).Add(b.SumDebit("5").Sub(b.SumCredit("52", "56", "57"))).InexactFloat64()
}

func shortTermDebt(b *balance.Aggregator) float64 {
	return b.Net("40", "42", "43", "44").Neg().InexactFloat64()
}

func equity(b *balance.Aggregator) float64 {
	return b.Net("10", "11", "12", "13").Neg().InexactFloat64()
}

func financialDebt(b *balance.Aggregator) float64 {
	return b.Net("16", "17").Neg().InexactFloat64()
}

func revenue(b *balance.Aggregator) float64 {
	return b.Net("70").Neg().InexactFloat64()
}

func netIncome(b *balance.Aggregator) float64 {
	return b.Net("7").Neg().Sub(b.Net("6")).InexactFloat64()
}

// DefaultDefinitions is the standard SYSCOHADA ratio set with its usual
// thresholds. Engagement-specific thresholds overlay these through
// ApplyThresholds.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Code: "liquidite_generale", Name: "Liquidité générale",
			Unit: "ratio", Category: "liquidity", Direction: model.DirectionNormal,
			Min: 1.0, Optimal: 1.5,
			Compute: func(b *balance.Aggregator) float64 {
				return SafeDivide(currentAssets(b), shortTermDebt(b))
			},
		},
		{
			Code: "autonomie_financiere", Name: "Autonomie financière",
			Unit: "%", Category: "structure", Direction: model.DirectionNormal,
			Min: 20, Optimal: 40,
			Compute: func(b *balance.Aggregator) float64 {
				e := equity(b)
				return SafeDivide(e, e+financialDebt(b)+shortTermDebt(b)) * 100
			},
		},
		{
			Code: "taux_endettement", Name: "Taux d'endettement",
			Unit: "%", Category: "structure", Direction: model.DirectionInverse,
			Min: 50, Optimal: 100,
			Compute: func(b *balance.Aggregator) float64 {
				return SafeDivide(financialDebt(b)+shortTermDebt(b), equity(b)) * 100
			},
		},
		{
			Code: "rotation_stocks", Name: "Rotation des stocks",
			Unit: "jours", Category: "activity", Direction: model.DirectionInverse,
			Min: 30, Optimal: 90,
			Compute: func(b *balance.Aggregator) float64 {
				return SafeDivide(b.Net("3").InexactFloat64(), b.Net("60").InexactFloat64()) * 360
			},
		},
		{
			Code: "delai_clients", Name: "Délai de recouvrement clients",
			Unit: "jours", Category: "activity", Direction: model.DirectionInverse,
			Min: 30, Optimal: 60,
			Compute: func(b *balance.Aggregator) float64 {
				return SafeDivide(b.Net("41").InexactFloat64(), revenue(b)) * 360
			},
		},
		{
			Code: "marge_nette", Name: "Marge nette",
			Unit: "%", Category: "profitability", Direction: model.DirectionNormal,
			Min: 5, Optimal: 10,
			Compute: func(b *balance.Aggregator) float64 {
				return SafeDivide(netIncome(b), revenue(b)) * 100
			},
		},
	}
}
