package model

// Direction states which way a ratio is "good".
type Direction string

const (
	// DirectionNormal means higher values are better (e.g. liquidity).
	DirectionNormal Direction = "NORMAL"
	// DirectionInverse means lower values are better (e.g. debt ratio).
	DirectionInverse Direction = "INVERSE"
)

// RatioStatus classifies a computed ratio against its thresholds.
type RatioStatus string

const (
	StatusExcellent RatioStatus = "EXCELLENT"
	StatusGood      RatioStatus = "GOOD"
	StatusFair      RatioStatus = "FAIR"
	StatusPoor      RatioStatus = "POOR"
	StatusCritical  RatioStatus = "CRITICAL"
)

// Ratio is one computed and classified financial ratio.
type Ratio struct {
	Code             string      `json:"code"`
	Name             string      `json:"name"`
	Value            float64     `json:"value"`
	MinThreshold     float64     `json:"min_threshold"`
	OptimalThreshold float64     `json:"optimal_threshold"`
	Unit             string      `json:"unit"`
	Category         string      `json:"category"`
	Direction        Direction   `json:"direction"`
	Status           RatioStatus `json:"status"`
	Interpretation   string      `json:"interpretation"`
}

// Healthy reports whether the ratio is in acceptable territory.
func (r Ratio) Healthy() bool {
	return r.Status == StatusExcellent || r.Status == StatusGood
}

// FinancialAnalysis summarizes the ratio set into an overall health view.
type FinancialAnalysis struct {
	Ratios           []Ratio  `json:"ratios"`
	GlobalScore      float64  `json:"global_score"`
	PerformanceLevel string   `json:"performance_level"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Recommendations  []string `json:"recommendations"`
	Alerts           []string `json:"alerts"`
}
