package models

import (
	"time"

	"github.com/google/uuid"
)

// CompletionRecord is server-persisted evidence that a student finished
// an activity. At most one record exists per (activity_id, student_id) -
// the database enforces this.
type CompletionRecord struct {
	ID uuid.UUID `json:"id"`

	ActivityID string `json:"activity_id"`
	ModuleID   string `json:"module_id"`
	StudentID  string `json:"student_id"`

	Timestamp time.Time `json:"timestamp"` // when the completion was recorded
	QuizScore *float64  `json:"score,omitempty"`
}

// CompleteActivityInput is what we expect on POST /api/complete-activity
type CompleteActivityInput struct {
	ActivityID string   `json:"activityId" validate:"required"`
	ModuleID   string   `json:"moduleId" validate:"required"`
	StudentID  string   `json:"studentId,omitempty"` // falls back to current session
	QuizScore  *float64 `json:"quizScore,omitempty"`
}
