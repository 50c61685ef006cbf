package tracker

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project represents a grouping of tasks. Deleting a project never
// deletes its tasks; their references are unlinked instead.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time          `bson:"startDate" json:"start_date"`
	EndDate     time.Time          `bson:"endDate" json:"end_date"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewProject creates a project draft ready for insertion with
// createdAt equal to updatedAt.
func NewProject(name, description string, startDate, endDate time.Time) (*Project, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Project{
		Name:        name,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ProjectPatch is a sparse update: nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// IsEmpty returns true when the patch carries no fields
func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil && p.EndDate == nil
}

// ProjectSortFields contains allowed sort fields for projects
var ProjectSortFields = map[string]bool{
	"name":      true,
	"startDate": true,
	"endDate":   true,
	"createdAt": true,
	"updatedAt": true,
}
