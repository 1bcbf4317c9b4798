package services

import (
	"context"
	"fmt"
	"log"

	"github.com/edulab/learning-platform-backend/pkg/session"
	"github.com/edulab/learning-platform-backend/pkg/task"
)

// AdminStore is the query surface needed for administrative operations
type AdminStore interface {
	FactoryResetDatabase(ctx context.Context) error
}

// AdminService handles administrative operations like factory reset
type AdminService struct {
	DB          AdminStore
	Modules     *ModuleService
	Activities  *ActivityService
	Completions *CompletionService
	Students    *StudentService
}

// NewAdminService creates admin service with its collaborators
func NewAdminService(db AdminStore, modules *ModuleService, activities *ActivityService, completions *CompletionService, students *StudentService) *AdminService {
	return &AdminService{
		DB:          db,
		Modules:     modules,
		Activities:  activities,
		Completions: completions,
		Students:    students,
	}
}

// FactoryResetDatabase clears all data from the database
func (s *AdminService) FactoryResetDatabase(ctx context.Context) error {
	log.Println("Starting factory reset - clearing all database data")

	if err := s.DB.FactoryResetDatabase(ctx); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	// clear the in-memory student selection
	log.Println("Clearing session data")
	if err := session.ClearAllSessions(); err != nil {
		log.Printf("Warning: failed to clear sessions: %v", err)
		// don't fail the whole reset for this
	}

	// clear any running tasks
	log.Println("Clearing task data")
	task.CleanupOld(0) // clear all tasks regardless of age

	log.Println("Factory reset completed successfully")
	return nil
}

// GetDatabaseStats returns basic counts of database contents
func (s *AdminService) GetDatabaseStats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int)

	students, err := s.Students.GetAllStudents(ctx)
	if err != nil {
		log.Printf("Warning: couldn't count students: %v", err)
		stats["students"] = -1
	} else {
		stats["students"] = len(students)
	}

	modules, err := s.Modules.ListModules(ctx)
	if err != nil {
		log.Printf("Warning: couldn't count modules: %v", err)
		stats["modules"] = -1
	} else {
		stats["modules"] = len(modules)
	}

	activityCount, err := s.Activities.CountActivities(ctx)
	if err != nil {
		log.Printf("Warning: couldn't count activities: %v", err)
		stats["activities"] = -1
	} else {
		stats["activities"] = activityCount
	}

	completions, err := s.Completions.ListAll(ctx)
	if err != nil {
		log.Printf("Warning: couldn't count completions: %v", err)
		stats["completions"] = -1
	} else {
		stats["completions"] = len(completions)
	}

	return stats, nil
}
