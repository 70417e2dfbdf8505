package domain

import (
	"fmt"
	"time"
)

// Status is the review lifecycle of an imported listing. Records are never
// deleted; rejection is a status, not a removal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// transitions is the full set of legal status changes. An approved record can
// still be pulled off the board (reject-by-edit); nothing ever leaves
// rejected.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusRejected},
	StatusRejected: {},
}

func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Issue is one quality problem detected on an imported record. Severity is
// informational; the presence of any issue is what routes a record to review.
type Issue struct {
	Type        string   `json:"type"`
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// JobRecord is the unit of work. URL is the natural dedupe key; title,
// company, modifier, category and confidence are derived at import time and
// stay editable while the record is pending.
type JobRecord struct {
	ID         int64      `json:"id"`
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Company    string     `json:"company"`
	Modifier   string     `json:"modifier"`
	Category   string     `json:"category"`
	Confidence float64    `json:"confidence"`
	Status     Status     `json:"status"`
	Issues     []Issue    `json:"issues"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy string     `json:"approvedBy,omitempty"`
}

func (r JobRecord) Clean() bool { return len(r.Issues) == 0 }

func HasHighSeverity(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityHigh {
			return true
		}
	}
	return false
}
