// Package ratio computes and classifies financial ratios from a trial
// balance, then folds them into an overall financial health analysis.
package ratio

import (
	"fmt"

	"github.com/fiscasync/fiscaudit/internal/balance"
	"github.com/fiscasync/fiscaudit/internal/model"
)

// SafeDivide returns num/den, or 0 when the denominator is zero. Ratio
// arithmetic never faults on a degenerate balance; a zero denominator yields
// a zero ratio classified like any other value.
func SafeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// ComputeFunc derives one raw ratio value from balance aggregates.
type ComputeFunc func(b *balance.Aggregator) float64

// Definition binds a ratio's identity and thresholds to its computation.
type Definition struct {
	Code      string
	Name      string
	Unit      string
	Category  string
	Direction model.Direction
	Min       float64
	Optimal   float64
	Compute   ComputeFunc
}

// Threshold is an engagement-level override of a ratio's min and optimal
// bounds.
type Threshold struct {
	Min     float64 `yaml:"min"`
	Optimal float64 `yaml:"optimal"`
}

// Engine computes a fixed set of ratio definitions in registration order.
type Engine struct {
	defs []Definition
}

// NewEngine creates an engine over the given definitions.
func NewEngine(defs []Definition) *Engine {
	return &Engine{defs: defs}
}

// ApplyThresholds overrides min/optimal bounds per ratio code. Unknown codes
// are rejected so a typo in a threshold table cannot silently keep defaults.
func (e *Engine) ApplyThresholds(overrides map[string]Threshold) error {
	for code, t := range overrides {
		found := false
		for i := range e.defs {
			if e.defs[i].Code == code {
				e.defs[i].Min = t.Min
				e.defs[i].Optimal = t.Optimal
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("threshold override for unknown ratio %q", code)
		}
	}
	return nil
}

// Compute evaluates every definition against the snapshot's aggregates and
// classifies the results.
func (e *Engine) Compute(snapshot *model.TrialBalanceSnapshot) []model.Ratio {
	b := balance.NewAggregator(snapshot)

	ratios := make([]model.Ratio, 0, len(e.defs))
	for _, def := range e.defs {
		value := def.Compute(b)
		status := Classify(value, def.Direction, def.Min, def.Optimal)
		ratios = append(ratios, model.Ratio{
			Code:             def.Code,
			Name:             def.Name,
			Value:            value,
			MinThreshold:     def.Min,
			OptimalThreshold: def.Optimal,
			Unit:             def.Unit,
			Category:         def.Category,
			Direction:        def.Direction,
			Status:           status,
			Interpretation:   interpret(def, value, status),
		})
	}
	return ratios
}

// Classify grades a value against its thresholds. For NORMAL ratios higher
// is better: optimal and above is EXCELLENT, the acceptable floor is min,
// and below 70% of min the ratio is CRITICAL. INVERSE ratios mirror this
// with min as the comfortable bound and 130% of optimal as the breaking
// point.
func Classify(value float64, direction model.Direction, min, optimal float64) model.RatioStatus {
	if direction == model.DirectionInverse {
		switch {
		case value <= min:
			return model.StatusExcellent
		case value <= optimal:
			return model.StatusGood
		case value <= optimal*1.3:
			return model.StatusFair
		default:
			return model.StatusCritical
		}
	}
	switch {
	case value >= optimal:
		return model.StatusExcellent
	case value >= min:
		return model.StatusGood
	case value >= min*0.7:
		return model.StatusFair
	default:
		return model.StatusCritical
	}
}

func interpret(def Definition, value float64, status model.RatioStatus) string {
	switch status {
	case model.StatusExcellent:
		return fmt.Sprintf("%s at %.2f%s is in the optimal range", def.Name, value, unitSuffix(def.Unit))
	case model.StatusGood:
		return fmt.Sprintf("%s at %.2f%s is acceptable", def.Name, value, unitSuffix(def.Unit))
	case model.StatusFair:
		return fmt.Sprintf("%s at %.2f%s is below the comfort zone and needs monitoring", def.Name, value, unitSuffix(def.Unit))
	default:
		return fmt.Sprintf("%s at %.2f%s is critically out of range", def.Name, value, unitSuffix(def.Unit))
	}
}

func unitSuffix(unit string) string {
	switch unit {
	case "%":
		return "%"
	case "jours":
		return " days"
	default:
		return ""
	}
}
