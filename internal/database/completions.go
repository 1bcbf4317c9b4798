package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

const createCompletion = `
INSERT INTO activity_completions (id, activity_id, module_id, student_id, quiz_score)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (activity_id, student_id) DO NOTHING
RETURNING id, activity_id, module_id, student_id, quiz_score, completed_at
`

type CreateCompletionParams struct {
	ID         uuid.UUID
	ActivityID string
	ModuleID   string
	StudentID  string
	QuizScore  sql.NullFloat64
}

// CreateCompletion inserts a completion record. Returns sql.ErrNoRows
// when a record for (activity_id, student_id) already exists - the
// uniqueness invariant lives in the schema, callers decide how to treat
// the duplicate.
func (q *Queries) CreateCompletion(ctx context.Context, arg CreateCompletionParams) (ActivityCompletion, error) {
	var c ActivityCompletion
	err := q.db.QueryRowContext(ctx, createCompletion,
		arg.ID, arg.ActivityID, arg.ModuleID, arg.StudentID, arg.QuizScore).
		Scan(&c.ID, &c.ActivityID, &c.ModuleID, &c.StudentID, &c.QuizScore, &c.CompletedAt)
	return c, err
}

const getCompletion = `
SELECT id, activity_id, module_id, student_id, quiz_score, completed_at
FROM activity_completions
WHERE activity_id = $1 AND student_id = $2
`

type GetCompletionParams struct {
	ActivityID string
	StudentID  string
}

// GetCompletion fetches the single record for an (activity, student) pair
func (q *Queries) GetCompletion(ctx context.Context, arg GetCompletionParams) (ActivityCompletion, error) {
	var c ActivityCompletion
	err := q.db.QueryRowContext(ctx, getCompletion, arg.ActivityID, arg.StudentID).
		Scan(&c.ID, &c.ActivityID, &c.ModuleID, &c.StudentID, &c.QuizScore, &c.CompletedAt)
	return c, err
}

func (q *Queries) scanCompletions(rows *sql.Rows) ([]ActivityCompletion, error) {
	defer rows.Close()
	var completions []ActivityCompletion
	for rows.Next() {
		var c ActivityCompletion
		if err := rows.Scan(&c.ID, &c.ActivityID, &c.ModuleID, &c.StudentID, &c.QuizScore, &c.CompletedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

const listCompletions = `
SELECT id, activity_id, module_id, student_id, quiz_score, completed_at
FROM activity_completions
ORDER BY completed_at, id
`

// ListCompletions returns every completion record (the detailed dump)
func (q *Queries) ListCompletions(ctx context.Context) ([]ActivityCompletion, error) {
	rows, err := q.db.QueryContext(ctx, listCompletions)
	if err != nil {
		return nil, err
	}
	return q.scanCompletions(rows)
}

const listCompletionsByStudent = `
SELECT id, activity_id, module_id, student_id, quiz_score, completed_at
FROM activity_completions
WHERE student_id = $1
ORDER BY completed_at, id
`

// ListCompletionsByStudent returns one student's completions
func (q *Queries) ListCompletionsByStudent(ctx context.Context, studentID string) ([]ActivityCompletion, error) {
	rows, err := q.db.QueryContext(ctx, listCompletionsByStudent, studentID)
	if err != nil {
		return nil, err
	}
	return q.scanCompletions(rows)
}

const listCompletionsByModule = `
SELECT id, activity_id, module_id, student_id, quiz_score, completed_at
FROM activity_completions
WHERE module_id = $1
ORDER BY completed_at, id
`

// ListCompletionsByModule returns all completions within a module
func (q *Queries) ListCompletionsByModule(ctx context.Context, moduleID string) ([]ActivityCompletion, error) {
	rows, err := q.db.QueryContext(ctx, listCompletionsByModule, moduleID)
	if err != nil {
		return nil, err
	}
	return q.scanCompletions(rows)
}

const listCompletionsByActivity = `
SELECT id, activity_id, module_id, student_id, quiz_score, completed_at
FROM activity_completions
WHERE activity_id = $1
ORDER BY completed_at, id
`

// ListCompletionsByActivity returns all completions of one activity
func (q *Queries) ListCompletionsByActivity(ctx context.Context, activityID string) ([]ActivityCompletion, error) {
	rows, err := q.db.QueryContext(ctx, listCompletionsByActivity, activityID)
	if err != nil {
		return nil, err
	}
	return q.scanCompletions(rows)
}
