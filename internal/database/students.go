package database

import (
	"context"

	"github.com/google/uuid"
)

const listStudents = `
SELECT student_id, name, created_at FROM students ORDER BY student_id
`

// ListStudents returns the full roster
func (q *Queries) ListStudents(ctx context.Context) ([]Student, error) {
	rows, err := q.db.QueryContext(ctx, listStudents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.StudentID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

const getStudent = `
SELECT student_id, name, created_at FROM students WHERE student_id = $1
`

// GetStudent fetches one student by id
func (q *Queries) GetStudent(ctx context.Context, studentID string) (Student, error) {
	var s Student
	err := q.db.QueryRowContext(ctx, getStudent, studentID).
		Scan(&s.StudentID, &s.Name, &s.CreatedAt)
	return s, err
}

const createStudent = `
INSERT INTO students (student_id, name)
VALUES ($1, $2)
RETURNING student_id, name, created_at
`

type CreateStudentParams struct {
	StudentID string
	Name      string
}

// CreateStudent adds a student to the roster
func (q *Queries) CreateStudent(ctx context.Context, arg CreateStudentParams) (Student, error) {
	var s Student
	err := q.db.QueryRowContext(ctx, createStudent, arg.StudentID, arg.Name).
		Scan(&s.StudentID, &s.Name, &s.CreatedAt)
	return s, err
}

const createSession = `
INSERT INTO sessions (id, student_id)
VALUES ($1, $2)
RETURNING id, student_id, created_at
`

type CreateSessionParams struct {
	ID        uuid.UUID
	StudentID string
}

// CreateSession records a student selection
func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	var s Session
	err := q.db.QueryRowContext(ctx, createSession, arg.ID, arg.StudentID).
		Scan(&s.ID, &s.StudentID, &s.CreatedAt)
	return s, err
}

const getActiveSession = `
SELECT id, student_id, created_at FROM sessions ORDER BY created_at DESC LIMIT 1
`

// GetActiveSession returns the most recent session, if any
func (q *Queries) GetActiveSession(ctx context.Context) (Session, error) {
	var s Session
	err := q.db.QueryRowContext(ctx, getActiveSession).
		Scan(&s.ID, &s.StudentID, &s.CreatedAt)
	return s, err
}

const deleteSession = `
DELETE FROM sessions WHERE id = $1
`

// DeleteSession removes one session
func (q *Queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteAllSessions = `
DELETE FROM sessions
`

// DeleteAllSessions clears every session row
func (q *Queries) DeleteAllSessions(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllSessions)
	return err
}
