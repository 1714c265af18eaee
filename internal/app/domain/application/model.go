package application

import (
	"time"

	"github.com/scholarai/scholarai/internal/app/domain/scholarship"
)

// Status is the lifecycle stage of a tracked application. Any status may move
// to any other; legality of transitions is not enforced.
type Status string

const (
	StatusInterested  Status = "Interested"
	StatusApplied     Status = "Applied"
	StatusUnderReview Status = "Under Review"
	StatusAccepted    Status = "Accepted"
	StatusRejected    Status = "Rejected"
	StatusNotAFit     Status = "Not a Fit"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusInterested, StatusApplied, StatusUnderReview, StatusAccepted, StatusRejected, StatusNotAFit:
		return true
	}
	return false
}

// ChecklistItem is a single application task. Items are created in bulk from
// generator output and never added or removed afterwards; only Completed
// mutates.
type ChecklistItem struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// Application is one user's tracked scholarship application. The scholarship
// is an embedded snapshot, not a catalog reference, so later catalog edits do
// not alter it. At most one application exists per (UserID, scholarship name).
type Application struct {
	ID          string                  `json:"id"`
	UserID      string                  `json:"userId"`
	Scholarship scholarship.Scholarship `json:"scholarship"`
	Status      Status                  `json:"status"`
	Checklist   []ChecklistItem         `json:"checklist"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}
