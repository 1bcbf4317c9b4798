package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/edulab/learning-platform-backend/internal/api/handlers"
	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/services"
	"github.com/edulab/learning-platform-backend/pkg/task"
)

// Server holds all the app components together
type Server struct {
	DB *database.Queries // direct db access - probably should refactor this later

	Router *http.ServeMux // handles routing requests

	// handlers for different parts of the API
	ModuleHandler     *handlers.ModuleHandler
	ActivityHandler   *handlers.ActivityHandler
	CompletionHandler *handlers.CompletionHandler
	StudentHandler    *handlers.StudentHandler
	TaskHandler       *handlers.TaskHandler
	AdminHandler      *handlers.AdminHandler // for admin operations
}

// NewServer wires up all the dependencies and returns a ready-to-use server
func NewServer(db *sql.DB) *Server {
	dbQueries := database.New(db)

	task.Initialize()
	// start cleanup routine in background - cleans old tasks every hour
	go task.CleanupRoutine(1*time.Hour, 24*time.Hour)

	// create service layer instances
	activitySvc := services.NewActivityService(dbQueries)
	moduleSvc := services.NewModuleService(dbQueries, activitySvc)
	completionSvc := services.NewCompletionService(dbQueries)
	studentSvc := services.NewStudentService(dbQueries)
	adminSvc := services.NewAdminService(dbQueries, moduleSvc, activitySvc, completionSvc, studentSvc)

	// wire everything together
	server := &Server{
		DB:                dbQueries,
		Router:            http.NewServeMux(),
		ModuleHandler:     handlers.NewModuleHandler(moduleSvc),
		ActivityHandler:   handlers.NewActivityHandler(activitySvc),
		CompletionHandler: handlers.NewCompletionHandler(completionSvc),
		StudentHandler:    handlers.NewStudentHandler(studentSvc),
		TaskHandler:       handlers.NewTaskHandler(),
		AdminHandler:      handlers.NewAdminHandler(adminSvc),
	}

	server.setupRoutes()
	return server
}

// setupRoutes maps all the endpoints to handler functions
func (s *Server) setupRoutes() {
	s.Router.HandleFunc("/api", s.HelloHandler)

	// module management
	s.Router.HandleFunc("GET /api/modules", s.ModuleHandler.List)
	s.Router.HandleFunc("POST /api/modules", s.ModuleHandler.Create)
	s.Router.HandleFunc("PUT /api/modules/{id}", s.ModuleHandler.Update)
	s.Router.HandleFunc("DELETE /api/modules/{id}", s.ModuleHandler.Delete)
	s.Router.HandleFunc("GET /api/modules-with-activities", s.ModuleHandler.ListWithActivities)
	s.Router.HandleFunc("POST /api/modules/import", s.ModuleHandler.Import)

	// activity storage
	s.Router.HandleFunc("GET /api/module-activities/{moduleId}", s.ActivityHandler.GetModuleActivities)
	s.Router.HandleFunc("POST /api/store-activity", s.ActivityHandler.StoreActivity)
	s.Router.HandleFunc("POST /api/delete-activity", s.ActivityHandler.DeleteActivity)

	// completion tracking
	s.Router.HandleFunc("POST /api/complete-activity", s.CompletionHandler.CompleteActivity)
	s.Router.HandleFunc("GET /api/completions/{studentId}", s.CompletionHandler.GetStudentCompletions)
	s.Router.HandleFunc("GET /api/completions/module/{moduleId}", s.CompletionHandler.GetModuleCompletions)
	s.Router.HandleFunc("GET /api/completions/activity/{activityId}", s.CompletionHandler.GetActivityCompletions)
	// kept at the old static-file path - clients read it as a fallback data source
	s.Router.HandleFunc("GET /api/database/activity_completions.json", s.CompletionHandler.GetCompletionsDump)

	// student roster and selection
	s.Router.HandleFunc("GET /api/student/all", s.StudentHandler.List)
	s.Router.HandleFunc("POST /api/student", s.StudentHandler.Create)
	s.Router.HandleFunc("GET /api/student/current", s.StudentHandler.Current)
	s.Router.HandleFunc("POST /api/student/{id}/select", s.StudentHandler.Select)
	s.Router.HandleFunc("POST /api/student/deselect", s.StudentHandler.Deselect)

	// admin endpoints
	s.Router.HandleFunc("POST /api/admin/factory-reset", s.AdminHandler.FactoryReset)
	s.Router.HandleFunc("GET /api/admin/stats", s.AdminHandler.GetStats)

	// task tracking
	s.Router.HandleFunc("GET /api/tasks", s.TaskHandler.GetTask)
	s.Router.HandleFunc("POST /api/tasks/cleanup", s.TaskHandler.CleanupTasks)
}

// ServeHTTP implements the http.Handler interface
// This allows the server to be used directly with http.ListenAndServe
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Delegate to the router
	s.Router.ServeHTTP(w, r)
}

// HelloHandler is a simple handler for the base API endpoint
// This is kept at the server level as it doesn't require business logic
func (s *Server) HelloHandler(w http.ResponseWriter, r *http.Request) {
	type responseData struct {
		Message string `json:"message"`
	}

	response := responseData{Message: "Learning platform API is running"}
	jsonResponse, _ := json.Marshal(response)
	w.Header().Set("Content-Type", "application/json")
	w.Write(jsonResponse)
}
