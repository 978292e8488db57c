package model

import "time"

// Certification is the quality verdict attached to an audit report.
type Certification string

const (
	CertUnqualified  Certification = "unqualified"
	CertReservations Certification = "qualified_with_reservations"
	CertRejected     Certification = "rejected"
)

// CheckCount reports scoring coverage for one category.
type CheckCount struct {
	Passing int `json:"passing"`
	Total   int `json:"total"` // excludes INSUFFICIENT_DATA outcomes
	Skipped int `json:"skipped"`
}

// AuditReport is the composed, immutable outcome of one engine run over one
// snapshot. It is JSON-serializable for the surrounding application.
type AuditReport struct {
	SnapshotID    string                `json:"snapshot_id"`
	GeneratedAt   time.Time             `json:"generated_at"`
	Findings      []Finding             `json:"findings"`
	Subscores     map[string]float64    `json:"subscores"`
	CheckCounts   map[string]CheckCount `json:"check_counts"`
	Score         float64               `json:"score"`
	Certification Certification         `json:"certification"`
}

// CriticalCount returns the number of CRITICAL findings.
func (r *AuditReport) CriticalCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical {
			n++
		}
	}
	return n
}
