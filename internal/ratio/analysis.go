package ratio

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/model"
)

// statusScores converts a classification into points for the global ratio
// score.
var statusScores = map[model.RatioStatus]float64{
	model.StatusExcellent: 100,
	model.StatusGood:      80,
	model.StatusFair:      50,
	model.StatusPoor:      30,
	model.StatusCritical:  10,
}

// recommendations by ratio category, surfaced for every weak ratio.
var recommendations = map[string]string{
	"liquidity":     "rebuild the cash position: accelerate collections or renegotiate short-term maturities",
	"structure":     "strengthen equity or restructure debt to restore the financing balance",
	"activity":      "tighten working-capital cycles: stock levels and customer payment terms",
	"profitability": "review pricing and cost structure to restore margin",
}

// Analyze folds a computed ratio set into the overall financial health view.
// The global score is the plain mean of the per-ratio status points.
func Analyze(ratios []model.Ratio) model.FinancialAnalysis {
	analysis := model.FinancialAnalysis{Ratios: ratios}
	if len(ratios) == 0 {
		return analysis
	}

	total := 0.0
	seen := make(map[string]bool)
	for _, r := range ratios {
		total += statusScores[r.Status]

		switch r.Status {
		case model.StatusExcellent, model.StatusGood:
			analysis.Strengths = append(analysis.Strengths, r.Interpretation)
		case model.StatusFair, model.StatusPoor, model.StatusCritical:
			analysis.Weaknesses = append(analysis.Weaknesses, r.Interpretation)
			if rec, ok := recommendations[r.Category]; ok && !seen[r.Category] {
				analysis.Recommendations = append(analysis.Recommendations, rec)
				seen[r.Category] = true
			}
		}
		if r.Status == model.StatusCritical {
			analysis.Alerts = append(analysis.Alerts,
				fmt.Sprintf("%s (%s) at %.2f breaches its critical threshold", r.Name, r.Code, r.Value))
		}
	}

	analysis.GlobalScore = total / float64(len(ratios))
	analysis.PerformanceLevel = performanceLevel(analysis.GlobalScore)
	return analysis
}

func performanceLevel(score float64) string {
	switch {
	case score >= 85:
		return "excellent"
	case score >= 70:
		return "good"
	case score >= 50:
		return "fair"
	default:
		return "poor"
	}
}
