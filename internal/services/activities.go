package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/models"
)

// ActivityStore is the slice of the query layer this service needs.
// *database.Queries satisfies it; tests plug in an in-memory fake.
type ActivityStore interface {
	ListActivitiesByModule(ctx context.Context, moduleID string) ([]database.Activity, error)
	ListAllActivities(ctx context.Context) ([]database.Activity, error)
	UpsertActivity(ctx context.Context, arg database.UpsertActivityParams) (database.Activity, error)
	DeleteActivity(ctx context.Context, arg database.DeleteActivityParams) (int64, error)
}

// ActivityService handles activity business logic
type ActivityService struct {
	DB ActivityStore // database access
}

// NewActivityService creates service with db dependency
func NewActivityService(db ActivityStore) *ActivityService {
	return &ActivityService{DB: db}
}

// activityFromRow converts a db row to the wire model. Server-fetched
// activities never carry the isNew flag.
func activityFromRow(row database.Activity) models.Activity {
	return models.Activity{
		ID:          row.ID,
		ModuleID:    row.ModuleID,
		Type:        row.Type,
		Title:       row.Title,
		Description: row.Description.String,
		URL:         row.Url.String,
		Completed:   row.Completed,
	}
}

// GetModuleActivities returns all stored activities for one module
func (s *ActivityService) GetModuleActivities(ctx context.Context, moduleID string) ([]models.Activity, error) {
	rows, err := s.DB.ListActivitiesByModule(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving module activities: %w", err)
	}

	// convert db rows to app models - empty list, not nil, so the
	// response always carries an activities array
	activities := make([]models.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, activityFromRow(row))
	}

	return activities, nil
}

// StoreActivity creates or updates one activity by (id, moduleId).
// Completion stays monotonic: a payload with completed=false never
// downgrades a stored completed=true. The isNew flag is dropped here -
// it is client-side display state, not content.
func (s *ActivityService) StoreActivity(ctx context.Context, input models.StoreActivityInput) (models.Activity, error) {
	if err := models.ValidateInput(input); err != nil {
		return models.Activity{}, fmt.Errorf("invalid activity: %w", err)
	}

	row, err := s.DB.UpsertActivity(ctx, database.UpsertActivityParams{
		ID:          input.ID,
		ModuleID:    input.ModuleID,
		Type:        input.Type,
		Title:       input.Title,
		Description: sql.NullString{String: input.Description, Valid: input.Description != ""},
		Url:         sql.NullString{String: input.URL, Valid: input.URL != ""},
		Completed:   input.Completed,
	})
	if err != nil {
		log.Printf("Error storing activity %s: %v", input.ID, err)
		return models.Activity{}, fmt.Errorf("failed to store activity: %w", err)
	}

	return activityFromRow(row), nil
}

// DeleteActivity removes one activity, reporting whether anything was
// actually deleted
func (s *ActivityService) DeleteActivity(ctx context.Context, input models.DeleteActivityInput) (bool, error) {
	if err := models.ValidateInput(input); err != nil {
		return false, fmt.Errorf("invalid delete request: %w", err)
	}

	deleted, err := s.DB.DeleteActivity(ctx, database.DeleteActivityParams{
		ID:       input.ID,
		ModuleID: input.ModuleID,
	})
	if err != nil {
		log.Printf("Error deleting activity %s: %v", input.ID, err)
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}

	return deleted > 0, nil
}

// CountActivities returns the number of stored activities, for stats
func (s *ActivityService) CountActivities(ctx context.Context) (int, error) {
	rows, err := s.DB.ListAllActivities(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list activities: %w", err)
	}
	return len(rows), nil
}
