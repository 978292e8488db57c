// Package scoring folds per-rule check results into the weighted global score
// and the certification verdict.
package scoring

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/model"
)

// Weights maps a scoring category to its share of the global score. Shares
// are percentage points and must total 100.
type Weights map[string]float64

// DefaultWeights is the standard audit weighting: structural equilibrium
// dominates, analytical ratios refine.
func DefaultWeights() Weights {
	return Weights{
		model.CategoryEquilibrium: 30,
		model.CategoryCoherence:   25,
		model.CategoryFiscal:      20,
		model.CategoryAnnexes:     15,
		model.CategoryRatios:      10,
	}
}

// Validate rejects negative shares and totals other than 100.
func (w Weights) Validate() error {
	total := 0.0
	for category, share := range w {
		if share < 0 {
			return fmt.Errorf("weight for %q is negative", category)
		}
		total += share
	}
	if total != 100 {
		return fmt.Errorf("weights total %.2f, want 100", total)
	}
	return nil
}

// Summary is the scoring output: one subscore and coverage count per weighted
// category, the weighted global score, and the certification verdict.
type Summary struct {
	Subscores     map[string]float64
	Counts        map[string]model.CheckCount
	Score         float64
	Certification model.Certification
}

// Compute derives category subscores, the weighted global score, and the
// certification from a set of check results.
//
// A category's subscore is 100 × passing / (passing + failing); checks that
// reported INSUFFICIENT_DATA are excluded from the denominator, and a
// category with nothing decidable scores 100. Results in unweighted
// categories (evaluation faults land in "engine") contribute no subscore,
// but their findings still count toward the critical tally.
func Compute(results []model.CheckResult, weights Weights) (Summary, error) {
	if err := weights.Validate(); err != nil {
		return Summary{}, err
	}

	tallies := make(map[string]model.CheckCount)
	criticals := 0
	for _, r := range results {
		for _, f := range r.Findings {
			if f.Severity == model.SeverityCritical {
				criticals++
			}
		}

		c := tallies[r.Category]
		switch r.Outcome {
		case model.OutcomePass:
			c.Passing++
			c.Total++
		case model.OutcomeFail:
			c.Total++
		case model.OutcomeInsufficientData:
			c.Skipped++
		}
		tallies[r.Category] = c
	}

	s := Summary{
		Subscores: make(map[string]float64, len(weights)),
		Counts:    make(map[string]model.CheckCount, len(weights)),
	}
	for category, share := range weights {
		count := tallies[category]
		sub := 100.0
		if count.Total > 0 {
			sub = 100 * float64(count.Passing) / float64(count.Total)
		}
		s.Subscores[category] = sub
		s.Counts[category] = count
		s.Score += share * sub / 100
	}

	s.Certification = certify(s.Score, criticals)
	return s, nil
}

// certify applies the certification ladder. A clean 90+ run certifies
// without reservation; any CRITICAL finding caps the verdict at
// reservations; below 75 the statements are rejected outright.
func certify(score float64, criticals int) model.Certification {
	switch {
	case score >= 90 && criticals == 0:
		return model.CertUnqualified
	case score >= 75:
		return model.CertReservations
	default:
		return model.CertRejected
	}
}
