package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/internal/services"
	"github.com/edulab/learning-platform-backend/pkg/session"
)

// Response structs for completion endpoints
type CompletionResponse struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message"`
	Completion models.CompletionRecord `json:"completion"`
}

type CompletionListResponse struct {
	Success     bool                      `json:"success"`
	Completions []models.CompletionRecord `json:"completions"`
}

// CompletionDumpResponse mirrors the shape of the old static database
// file so existing clients reading it keep working
type CompletionDumpResponse struct {
	Completions []models.CompletionRecord `json:"completions"`
}

// CompletionHandler processes completion-related HTTP requests
type CompletionHandler struct {
	Service *services.CompletionService // business logic goes through here
}

// NewCompletionHandler creates handler with injected service
func NewCompletionHandler(service *services.CompletionService) *CompletionHandler {
	return &CompletionHandler{Service: service}
}

// CompleteActivity handles POST /api/complete-activity - records that a
// student finished an activity. Duplicate completions come back as
// success with the existing record, never as an error.
func (h *CompletionHandler) CompleteActivity(w http.ResponseWriter, r *http.Request) {
	var input models.CompleteActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.ActivityID == "" || input.ModuleID == "" {
		SendError(w, http.StatusBadRequest, "Activity ID and Module ID are required", nil)
		return
	}

	// no studentId in the body means "whoever is currently selected"
	if input.StudentID == "" {
		input.StudentID = session.GetCurrentStudent()
	}
	if input.StudentID == "" {
		input.StudentID = services.DefaultStudentID
	}

	record, created, err := h.Service.RecordCompletion(r.Context(), input)
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to record completion", err)
		return
	}

	message := "Completion recorded successfully"
	if !created {
		message = "Completion already recorded"
	}

	writeJSON(w, http.StatusOK, CompletionResponse{
		Success:    true,
		Message:    message,
		Completion: record,
	})
}

// GetCompletionsDump handles GET /api/database/activity_completions.json
// The path comes from when completions lived in a static JSON file;
// teacher dashboards still read it as a fallback data source.
func (h *CompletionHandler) GetCompletionsDump(w http.ResponseWriter, r *http.Request) {
	completions, err := h.Service.ListAll(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve completions", err)
		return
	}

	writeJSON(w, http.StatusOK, CompletionDumpResponse{Completions: completions})
}

// GetStudentCompletions handles GET /api/completions/{studentId}
func (h *CompletionHandler) GetStudentCompletions(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 4 || pathParts[3] == "" {
		SendError(w, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	completions, err := h.Service.ListByStudent(r.Context(), pathParts[3])
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve student completions", err)
		return
	}

	writeJSON(w, http.StatusOK, CompletionListResponse{Success: true, Completions: completions})
}

// GetModuleCompletions handles GET /api/completions/module/{moduleId}
func (h *CompletionHandler) GetModuleCompletions(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 5 || pathParts[4] == "" {
		SendError(w, http.StatusBadRequest, "Module ID is required", nil)
		return
	}

	completions, err := h.Service.ListByModule(r.Context(), pathParts[4])
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve module completions", err)
		return
	}

	writeJSON(w, http.StatusOK, CompletionListResponse{Success: true, Completions: completions})
}

// GetActivityCompletions handles GET /api/completions/activity/{activityId}
func (h *CompletionHandler) GetActivityCompletions(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 5 || pathParts[4] == "" {
		SendError(w, http.StatusBadRequest, "Activity ID is required", nil)
		return
	}

	completions, err := h.Service.ListByActivity(r.Context(), pathParts[4])
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve activity completions", err)
		return
	}

	writeJSON(w, http.StatusOK, CompletionListResponse{Success: true, Completions: completions})
}
