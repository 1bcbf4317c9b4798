package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/pkg/session"
	"github.com/google/uuid"
)

// DefaultStudentID is who the platform assumes when no student has been
// selected yet
const DefaultStudentID = "1"

// StudentStore is the query surface needed for the student roster
type StudentStore interface {
	ListStudents(ctx context.Context) ([]database.Student, error)
	GetStudent(ctx context.Context, studentID string) (database.Student, error)
	CreateStudent(ctx context.Context, arg database.CreateStudentParams) (database.Student, error)
}

// StudentService handles the student roster and current selection
type StudentService struct {
	DB StudentStore // database access
}

// NewStudentService creates service with db dependency
func NewStudentService(db StudentStore) *StudentService {
	return &StudentService{DB: db}
}

func studentFromRow(row database.Student) models.Student {
	return models.Student{
		ID:        row.StudentID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}
}

// GetAllStudents fetches the full roster
func (s *StudentService) GetAllStudents(ctx context.Context) ([]models.Student, error) {
	rows, err := s.DB.ListStudents(ctx)
	if err != nil {
		log.Printf("Error retrieving students: %v", err)
		return nil, fmt.Errorf("failed to retrieve students: %w", err)
	}

	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, studentFromRow(row))
	}
	return students, nil
}

// CreateStudent adds a student with validation
func (s *StudentService) CreateStudent(ctx context.Context, input models.CreateStudentInput) (models.Student, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Student{}, errors.New("student name cannot be empty")
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	row, err := s.DB.CreateStudent(ctx, database.CreateStudentParams{
		StudentID: id,
		Name:      input.Name,
	})
	if err != nil {
		log.Printf("Error creating student: %v", err)
		return models.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	return studentFromRow(row), nil
}

// SelectStudent makes the given student the current one
func (s *StudentService) SelectStudent(ctx context.Context, studentID string) (models.Student, error) {
	row, err := s.DB.GetStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Student{}, fmt.Errorf("student not found: %w", err)
		}
		return models.Student{}, fmt.Errorf("error retrieving student: %w", err)
	}

	session.SetCurrentStudent(studentID)
	return studentFromRow(row), nil
}

// DeselectStudent drops the current selection; subsequent reads fall
// back to the default student
func (s *StudentService) DeselectStudent() {
	session.ClearCurrentStudent()
}

// CurrentStudent returns the selected student, falling back to the
// default one when nothing has been selected
func (s *StudentService) CurrentStudent(ctx context.Context) (models.Student, error) {
	studentID := DefaultStudentID
	if session.IsSelected() {
		studentID = session.GetCurrentStudent()
	}

	row, err := s.DB.GetStudent(ctx, studentID)
	if err != nil {
		return models.Student{}, fmt.Errorf("error retrieving current student: %w", err)
	}
	return studentFromRow(row), nil
}
