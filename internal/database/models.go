package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Row types mirroring the schema

type Module struct {
	ID          string
	Title       string
	Date        string
	Subtitle    sql.NullString
	Description sql.NullString
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

type Activity struct {
	ID          string
	ModuleID    string
	Type        string
	Title       string
	Description sql.NullString
	Url         sql.NullString
	Completed   bool
	CreatedAt   sql.NullTime
	UpdatedAt   sql.NullTime
}

type Student struct {
	StudentID string
	Name      string
	CreatedAt sql.NullTime
}

type Session struct {
	ID        uuid.UUID
	StudentID string
	CreatedAt sql.NullTime
}

type ActivityCompletion struct {
	ID          uuid.UUID
	ActivityID  string
	ModuleID    string
	StudentID   string
	QuizScore   sql.NullFloat64
	CompletedAt time.Time
}
