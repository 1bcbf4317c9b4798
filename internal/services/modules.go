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
	"github.com/google/uuid"
)

// ModuleStore is the query surface needed for module management
type ModuleStore interface {
	ListModules(ctx context.Context) ([]database.Module, error)
	GetModule(ctx context.Context, id string) (database.Module, error)
	CreateModule(ctx context.Context, arg database.CreateModuleParams) (database.Module, error)
	UpdateModule(ctx context.Context, arg database.UpdateModuleParams) (database.Module, error)
	DeleteModule(ctx context.Context, id string) error
	ListAllActivities(ctx context.Context) ([]database.Activity, error)
}

// ModuleService handles all module business logic
type ModuleService struct {
	DB         ModuleStore      // database access
	Activities *ActivityService // for nested activity writes during import
}

// NewModuleService creates service with dependencies
func NewModuleService(db ModuleStore, activities *ActivityService) *ModuleService {
	return &ModuleService{
		DB:         db,
		Activities: activities,
	}
}

func moduleFromRow(row database.Module) models.Module {
	return models.Module{
		ID:          row.ID,
		Title:       row.Title,
		Date:        row.Date,
		Subtitle:    row.Subtitle.String,
		Description: row.Description.String,
		Activities:  []models.Activity{},
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// ListModules retrieves all modules without their activities
func (s *ModuleService) ListModules(ctx context.Context) ([]models.Module, error) {
	rows, err := s.DB.ListModules(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving modules: %w", err)
	}

	modules := make([]models.Module, 0, len(rows))
	for _, row := range rows {
		modules = append(modules, moduleFromRow(row))
	}
	return modules, nil
}

// ListModulesWithActivities retrieves all modules, each carrying its
// activity list. One activities query for everything, grouped by module,
// rather than a query per module.
func (s *ModuleService) ListModulesWithActivities(ctx context.Context) ([]models.Module, error) {
	modules, err := s.ListModules(ctx)
	if err != nil {
		return nil, err
	}

	activityRows, err := s.DB.ListAllActivities(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving activities: %w", err)
	}

	byModule := make(map[string][]models.Activity)
	for _, row := range activityRows {
		byModule[row.ModuleID] = append(byModule[row.ModuleID], activityFromRow(row))
	}

	for i := range modules {
		if acts, ok := byModule[modules[i].ID]; ok {
			modules[i].Activities = acts
		}
	}

	return modules, nil
}

// GetModule retrieves one module with its activities
func (s *ModuleService) GetModule(ctx context.Context, id string) (models.Module, error) {
	row, err := s.DB.GetModule(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Module{}, fmt.Errorf("module not found: %w", err)
		}
		return models.Module{}, fmt.Errorf("error retrieving module: %w", err)
	}

	module := moduleFromRow(row)

	activities, err := s.Activities.GetModuleActivities(ctx, id)
	if err != nil {
		return models.Module{}, err
	}
	module.Activities = activities

	return module, nil
}

// CreateModule makes a new module with validation. A provided id is
// kept as-is (opaque, client-issued ids round-trip), otherwise one is
// generated.
func (s *ModuleService) CreateModule(ctx context.Context, input models.CreateModuleInput) (models.Module, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Module{}, errors.New("module title cannot be empty")
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}

	row, err := s.DB.CreateModule(ctx, database.CreateModuleParams{
		ID:          id,
		Title:       input.Title,
		Date:        input.Date,
		Subtitle:    sql.NullString{String: input.Subtitle, Valid: input.Subtitle != ""},
		Description: sql.NullString{String: input.Description, Valid: input.Description != ""},
	})
	if err != nil {
		log.Printf("Error creating module: %v", err)
		return models.Module{}, fmt.Errorf("failed to create module: %w", err)
	}

	return moduleFromRow(row), nil
}

// UpdateModuleMetadata updates title/date/subtitle/description for a
// module, never the id
func (s *ModuleService) UpdateModuleMetadata(ctx context.Context, moduleID string, input models.UpdateModuleInput) (models.Module, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Module{}, errors.New("module title cannot be empty")
	}

	row, err := s.DB.UpdateModule(ctx, database.UpdateModuleParams{
		ID:          moduleID,
		Title:       input.Title,
		Date:        input.Date,
		Subtitle:    sql.NullString{String: input.Subtitle, Valid: input.Subtitle != ""},
		Description: sql.NullString{String: input.Description, Valid: input.Description != ""},
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Module{}, fmt.Errorf("module not found: %w", err)
		}
		return models.Module{}, fmt.Errorf("error updating module: %w", err)
	}

	return moduleFromRow(row), nil
}

// DeleteModule removes a module from the database
// Activities cascade away with it; completion records are kept as history
func (s *ModuleService) DeleteModule(ctx context.Context, moduleID string) error {
	if err := s.DB.DeleteModule(ctx, moduleID); err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}
	return nil
}

// BatchImportModules imports multiple modules with nested activities.
// Partial failure is fine - each module gets its own error, the rest
// keep importing.
func (s *ModuleService) BatchImportModules(ctx context.Context, inputs []models.ImportModuleInput) ([]models.Module, []error) {
	var imported []models.Module
	var errs []error

	log.Printf("[BatchImportModules] Starting batch import of %d modules", len(inputs))

	for i, input := range inputs {
		log.Printf("[BatchImportModules] Processing module %d/%d: %s", i+1, len(inputs), input.Title)

		if strings.TrimSpace(input.Title) == "" {
			err := fmt.Errorf("title is required for module %d", i+1)
			log.Printf("[BatchImportModules] Error: %v", err)
			errs = append(errs, err)
			continue
		}

		module, err := s.CreateModule(ctx, models.CreateModuleInput{
			ID:          input.ID,
			Title:       input.Title,
			Date:        input.Date,
			Subtitle:    input.Subtitle,
			Description: input.Description,
		})
		if err != nil {
			err = fmt.Errorf("failed to import module '%s': %w", input.Title, err)
			log.Printf("[BatchImportModules] Error: %v", err)
			errs = append(errs, err)
			continue
		}

		for _, actInput := range input.Activities {
			actInput.ModuleID = module.ID
			activity, err := s.Activities.StoreActivity(ctx, actInput)
			if err != nil {
				err = fmt.Errorf("failed to import activity '%s' in module '%s': %w", actInput.Title, input.Title, err)
				log.Printf("[BatchImportModules] Error: %v", err)
				errs = append(errs, err)
				continue
			}
			module.Activities = append(module.Activities, activity)
		}

		log.Printf("[BatchImportModules] Module imported: %s (ID: %s, %d activities)", module.Title, module.ID, len(module.Activities))
		imported = append(imported, module)
	}

	log.Printf("[BatchImportModules] Batch import completed: %d successful, %d failed", len(imported), len(errs))

	return imported, errs
}
