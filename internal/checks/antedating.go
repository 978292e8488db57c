package checks

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/model"
	"github.com/fiscasync/fiscaudit/internal/rules"
)

// defaultMaxDelayDays is the accepted lag between a supporting document and
// its booking.
const defaultMaxDelayDays = 30

// Antedating flags entries booked long after their supporting document:
// a booking date more than max_delay_days past the piece date suggests the
// entry was slipped into a closed period.
func Antedating(ctx rules.Context) (model.Outcome, []model.Finding, error) {
	maxDelay := ctx.Params.Int("max_delay_days", defaultMaxDelayDays)

	var findings []model.Finding
	for i := 0; i < ctx.Snapshot.Len(); i++ {
		e := ctx.Snapshot.Entry(i)
		if e.PieceDate.IsZero() {
			continue
		}
		delay := int(e.Date.Sub(e.PieceDate).Hours() / 24)
		if delay <= maxDelay {
			continue
		}
		findings = append(findings, model.Finding{
			RuleCode: ctx.Rule.Code,
			Severity: model.SeverityMajor,
			Category: ctx.Rule.Category,
			Message: fmt.Sprintf("entry on account %s booked %d days after its piece (%s piece, %s booking)",
				e.Account, delay, e.PieceDate.Format("2006-01-02"), e.Date.Format("2006-01-02")),
			Account:    e.Account,
			Suggestion: "justify the booking delay or re-date the entry to its accounting period",
		})
	}

	if len(findings) > 0 {
		return model.OutcomeFail, findings, nil
	}
	return model.OutcomePass, nil, nil
}
