package checks

import (
	"fmt"
	"math"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

const (
	// benfordMinSample is the smallest population worth testing.
	benfordMinSample = 30
	// benfordChi2Critical is the chi-square critical value for 8 degrees of
	// freedom at α=0.05.
	benfordChi2Critical = 15.507
)

// Benford tests the leading-digit distribution of entry amounts per account
// class against Benford's law. Manipulated or fabricated figures drift from
// the log10(1+1/d) distribution; a chi-square statistic above the critical
// value flags the class as MAJOR. Classes with fewer than min_sample amounts
// are not tested; when no class has enough data the whole check reports
// INSUFFICIENT_DATA and stays out of scoring.
//
// The pass over the snapshot is streaming: memory is nine counters per
// class, independent of ledger size.
func Benford(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	minSample := ctx.Params.Int("min_sample", benfordMinSample)
	critical := ctx.Params.Float("chi2_critical", benfordChi2Critical)

	// counts[class][digit-1]
	var counts [10][9]int
	var totals [10]int
	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		d := leadingDigit(e.Amount().Abs().String())
		if d == 0 {
			continue
		}
		classe := int(e.Account[0] - '0')
		counts[classe][d-1]++
		totals[classe]++
	}

	var findings []model.Finding
	tested := 0
	for classe := 1; classe <= 9; classe++ {
		n := totals[classe]
		if n < minSample {
			continue
		}
		tested++

		chi2 := 0.0
		for d := 1; d <= 9; d++ {
			expected := float64(n) * math.Log10(1+1/float64(d))
			diff := float64(counts[classe][d-1]) - expected
			chi2 += diff * diff / expected
		}

		if chi2 > critical {
			findings = append(findings, model.Finding{
				RuleCode: ctx.Rule.Code,
				Severity: model.SeverityMajor,
				Category: ctx.Rule.Category,
				Message: fmt.Sprintf("class %d amounts deviate from Benford's law: chi²=%.2f over %d entries (critical %.3f)",
					classe, chi2, n, critical),
				Field:      fmt.Sprintf("classe:%d", classe),
				Suggestion: "review the class for rounded, fabricated or split amounts",
			})
		}
	}

	if tested == 0 {
		return model.OutcomeInsufficientData, nil, nil
	}
	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}

// leadingDigit returns the first significant digit of a positive decimal
// string, or 0 when the value has none (zero amounts).
func leadingDigit(s string) int {
	for _, r := range s {
		if r >= '1' && r <= '9' {
			return int(r - '0')
		}
	}
	return 0
}
