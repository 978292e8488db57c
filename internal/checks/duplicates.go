package checks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

const (
	defaultSimilarity = 0.85
	defaultDayWindow  = 3
)

// Duplicates flags probable double bookings. Entries are first grouped by the
// exact key (date, amount, account root, journal); within a group, labels
// whose normalized edit-distance similarity reaches the threshold are flagged
// MAJOR. A second pass widens the date to ±day_window days with the same
// similarity test, to catch re-keyed entries booked a few days apart.
func Duplicates(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	threshold := ctx.Params.Float("similarity_threshold", defaultSimilarity)
	window := ctx.Params.Int("day_window", defaultDayWindow)

	// Bucket by the date-free part of the key; pairs are then compared
	// within a bucket, exact-key first, near-dates second. This keeps the
	// pairwise work local to entries that could plausibly duplicate each
	// other.
	type candidate struct {
		index int
		entry model.LedgerEntry
	}
	buckets := make(map[string][]candidate)
	var keys []string
	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		if e.Amount().IsZero() {
			continue
		}
		key := e.Amount().String() + "|" + e.AccountRoot() + "|" + e.Journal
		if _, seen := buckets[key]; !seen {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], candidate{index: i, entry: e})
	}
	sort.Strings(keys)

	var findings []model.Finding
	for _, key := range keys {
		group := buckets[key]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i].entry, group[j].entry

				days := a.Date.Sub(b.Date).Hours() / 24
				if days < 0 {
					days = -days
				}
				if days > float64(window) {
					continue
				}

				sim := labelSimilarity(a.Label, b.Label)
				if sim < threshold {
					continue
				}

				sameDay := a.Date.Equal(b.Date)
				kind := "probable duplicate"
				if !sameDay {
					kind = "probable near-duplicate"
				}
				findings = append(findings, model.Finding{
					RuleCode: ctx.Rule.Code,
					Severity: model.SeverityMajor,
					Category: ctx.Rule.Category,
					Message: fmt.Sprintf("%s on account %s: %q (%s) vs %q (%s), amount %s, similarity %.2f",
						kind, a.Account, a.Label, a.Date.Format("2006-01-02"),
						b.Label, b.Date.Format("2006-01-02"), a.Amount().StringFixed(2), sim),
					Account:    a.Account,
					Suggestion: "confirm both bookings are backed by distinct supporting documents",
				})
			}
		}
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}

// labelSimilarity is 1 minus the Levenshtein distance normalized by the
// longer label, over lowercased trimmed text.
func labelSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
