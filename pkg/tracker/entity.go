package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status of a tracked application. Any status may be set at any time: the
// board is user-driven, there is no transition graph to enforce.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// JobRecord is one tracked job application. Records are persisted wholesale
// on every mutation; there is no partial-update protocol.
type JobRecord struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Salary       string    `json:"salary"`
	DueDate      string    `json:"dueDate"`
	Type         string    `json:"type"`
	TypeColor    string    `json:"typeColor"`
	Status       Status    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Repository is the persistence port for tracked applications.
type Repository interface {
	Create(ctx context.Context, rec JobRecord) error
	Update(ctx context.Context, rec JobRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (JobRecord, error)
	List(ctx context.Context, limit, offset int) ([]JobRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
