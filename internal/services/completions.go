package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/google/uuid"
)

// CompletionStore is the query surface needed for completion records
type CompletionStore interface {
	CreateCompletion(ctx context.Context, arg database.CreateCompletionParams) (database.ActivityCompletion, error)
	GetCompletion(ctx context.Context, arg database.GetCompletionParams) (database.ActivityCompletion, error)
	ListCompletions(ctx context.Context) ([]database.ActivityCompletion, error)
	ListCompletionsByStudent(ctx context.Context, studentID string) ([]database.ActivityCompletion, error)
	ListCompletionsByModule(ctx context.Context, moduleID string) ([]database.ActivityCompletion, error)
	ListCompletionsByActivity(ctx context.Context, activityID string) ([]database.ActivityCompletion, error)
}

// CompletionService records and reads activity completions
type CompletionService struct {
	DB CompletionStore // database access
}

// NewCompletionService creates service with db dependency
func NewCompletionService(db CompletionStore) *CompletionService {
	return &CompletionService{DB: db}
}

func completionFromRow(row database.ActivityCompletion) models.CompletionRecord {
	rec := models.CompletionRecord{
		ID:         row.ID,
		ActivityID: row.ActivityID,
		ModuleID:   row.ModuleID,
		StudentID:  row.StudentID,
		Timestamp:  row.CompletedAt,
	}
	if row.QuizScore.Valid {
		score := row.QuizScore.Float64
		rec.QuizScore = &score
	}
	return rec
}

// RecordCompletion creates a completion record for a student/activity
// pair. Idempotent: recording the same pair twice returns the existing
// record with created=false instead of an error - duplicate completion
// is a business non-event, not a failure.
func (s *CompletionService) RecordCompletion(ctx context.Context, input models.CompleteActivityInput) (models.CompletionRecord, bool, error) {
	if err := models.ValidateInput(input); err != nil {
		return models.CompletionRecord{}, false, fmt.Errorf("invalid completion: %w", err)
	}
	if input.StudentID == "" {
		return models.CompletionRecord{}, false, errors.New("student id is required")
	}

	var score sql.NullFloat64
	if input.QuizScore != nil {
		score = sql.NullFloat64{Float64: *input.QuizScore, Valid: true}
	}

	row, err := s.DB.CreateCompletion(ctx, database.CreateCompletionParams{
		ID:         uuid.New(),
		ActivityID: input.ActivityID,
		ModuleID:   input.ModuleID,
		StudentID:  input.StudentID,
		QuizScore:  score,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// insert hit the uniqueness constraint - fetch what's there
			existing, getErr := s.DB.GetCompletion(ctx, database.GetCompletionParams{
				ActivityID: input.ActivityID,
				StudentID:  input.StudentID,
			})
			if getErr != nil {
				return models.CompletionRecord{}, false, fmt.Errorf("failed to load existing completion: %w", getErr)
			}
			log.Printf("Completion already recorded for activity %s student %s", input.ActivityID, input.StudentID)
			return completionFromRow(existing), false, nil
		}
		return models.CompletionRecord{}, false, fmt.Errorf("failed to record completion: %w", err)
	}

	return completionFromRow(row), true, nil
}

// ListAll returns every completion record - the detailed dump teachers
// use as a fallback data source
func (s *CompletionService) ListAll(ctx context.Context) ([]models.CompletionRecord, error) {
	rows, err := s.DB.ListCompletions(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving completions: %w", err)
	}
	return completionsFromRows(rows), nil
}

// ListByStudent returns one student's completions
func (s *CompletionService) ListByStudent(ctx context.Context, studentID string) ([]models.CompletionRecord, error) {
	rows, err := s.DB.ListCompletionsByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student completions: %w", err)
	}
	return completionsFromRows(rows), nil
}

// ListByModule returns all completions within one module
func (s *CompletionService) ListByModule(ctx context.Context, moduleID string) ([]models.CompletionRecord, error) {
	rows, err := s.DB.ListCompletionsByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving module completions: %w", err)
	}
	return completionsFromRows(rows), nil
}

// ListByActivity returns all completions of one activity
func (s *CompletionService) ListByActivity(ctx context.Context, activityID string) ([]models.CompletionRecord, error) {
	rows, err := s.DB.ListCompletionsByActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving activity completions: %w", err)
	}
	return completionsFromRows(rows), nil
}

func completionsFromRows(rows []database.ActivityCompletion) []models.CompletionRecord {
	records := make([]models.CompletionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, completionFromRow(row))
	}
	return records
}
