package models

import (
	"database/sql"
	"fmt"
)

// Student represents a learner in the system. No authentication exists -
// students are selected, not logged in.
type Student struct {
	ID   string `json:"student_id"` // opaque identifier ("1", "2", ...)
	Name string `json:"name"`       // display name

	CreatedAt sql.NullTime `json:"created_at,omitempty"`
}

// CreateStudentInput is what we expect when adding a student to the roster
type CreateStudentInput struct {
	ID   string `json:"student_id,omitempty"` // optional, generated when empty
	Name string `json:"name" validate:"required"`
}

// String provides a string representation of the student
// This is useful for logging and debugging
func (s *Student) String() string {
	return fmt.Sprintf("Student(ID=%s, Name=%s)", s.ID, s.Name)
}
