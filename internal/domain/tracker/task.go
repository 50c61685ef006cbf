package tracker

import (
	"fmt"
	"time"

	"github.com/taskboard/backend/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Name length bounds shared by tasks and projects
const (
	MinNameLength = 3
	MaxNameLength = 50
)

// Status represents the lifecycle state of a task
type Status string

const (
	StatusTodo Status = "TODO"
	StatusDone Status = "DONE"
)

// IsValid returns true for a recognized status value
func (s Status) IsValid() bool {
	return s == StatusTodo || s == StatusDone
}

// Task represents a tracked unit of work. It optionally holds a weak
// reference to a Project: the reference is validated when assigned and
// cleared when the project is deleted, but it is never an ownership link.
type Task struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	Status    Status              `bson:"status" json:"status"`
	StartDate time.Time           `bson:"startDate" json:"start_date"`
	DueDate   time.Time           `bson:"dueDate" json:"due_date"`
	DoneDate  *time.Time          `bson:"doneDate,omitempty" json:"done_date,omitempty"`
	ProjectID *primitive.ObjectID `bson:"projectId,omitempty" json:"project_id,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updated_at"`
}

// NewTask creates a task draft ready for insertion. Status is always
// TODO on creation regardless of what the caller supplied upstream, and
// createdAt equals updatedAt.
func NewTask(name string, startDate, dueDate time.Time) (*Task, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Task{
		Name:      name,
		Status:    StatusTodo,
		StartDate: startDate,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TaskPatch is a sparse update: nil fields are left untouched in storage.
// updatedAt is stamped by the repository on every application.
type TaskPatch struct {
	Name      *string
	Status    *Status
	StartDate *time.Time
	DueDate   *time.Time
	ProjectID *primitive.ObjectID
}

// IsEmpty returns true when the patch carries no fields
func (p TaskPatch) IsEmpty() bool {
	return p.Name == nil && p.Status == nil && p.StartDate == nil && p.DueDate == nil && p.ProjectID == nil
}

// StatusChange captures the fields written by a status transition.
// Moving to DONE stamps doneDate; reopening to TODO restarts the active
// window by stamping startDate. doneDate is never cleared.
type StatusChange struct {
	Status    Status
	DoneDate  *time.Time
	StartDate *time.Time
	UpdatedAt time.Time
}

// NewStatusChange builds the transition for the given target status.
// Both TODO->DONE and DONE->TODO are always legal; validity of the
// status value itself is the caller's contract.
func NewStatusChange(status Status, now time.Time) StatusChange {
	change := StatusChange{Status: status, UpdatedAt: now}
	switch status {
	case StatusDone:
		change.DoneDate = &now
	case StatusTodo:
		change.StartDate = &now
	}
	return change
}

// ValidateName checks the shared name length bounds
func ValidateName(name string) error {
	if len(name) < MinNameLength || len(name) > MaxNameLength {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Name must be between %d and %d characters", MinNameLength, MaxNameLength))
	}
	return nil
}

// TaskSortFields contains allowed sort fields for tasks. Keys match the
// stored field names exposed on the sorted-listing endpoint.
var TaskSortFields = map[string]bool{
	"name":      true,
	"status":    true,
	"startDate": true,
	"dueDate":   true,
	"doneDate":  true,
	"createdAt": true,
	"updatedAt": true,
}
