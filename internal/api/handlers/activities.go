package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/internal/services"
)

// Response structs for activity endpoints
type ModuleActivitiesResponse struct {
	Success    bool              `json:"success"`
	Activities []models.Activity `json:"activities"`
}

type StoreActivityResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ActivityID string `json:"activityId"`
	Completed  bool   `json:"completed"`
}

type DeleteActivityResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Deleted bool   `json:"deleted"`
}

// ActivityHandler processes activity-related HTTP requests
type ActivityHandler struct {
	Service *services.ActivityService // business logic goes through here
}

// NewActivityHandler creates handler with injected service
func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// GetModuleActivities handles GET /api/module-activities/{moduleId}
// Clients treat a failure and an empty list the same way, but a genuine
// server error still reports 500 with an empty activities array.
func (h *ActivityHandler) GetModuleActivities(w http.ResponseWriter, r *http.Request) {
	// extract module ID from URL path
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 4 || pathParts[3] == "" {
		SendError(w, http.StatusBadRequest, "Module ID is required", nil)
		return
	}
	moduleID := pathParts[3]

	activities, err := h.Service.GetModuleActivities(r.Context(), moduleID)
	if err != nil {
		log.Printf("Error retrieving activities for module %s: %v", moduleID, err)
		writeJSON(w, http.StatusInternalServerError, ModuleActivitiesResponse{
			Success:    false,
			Activities: []models.Activity{},
		})
		return
	}

	writeJSON(w, http.StatusOK, ModuleActivitiesResponse{
		Success:    true,
		Activities: activities,
	})
}

// StoreActivity handles POST /api/store-activity - upserts one activity
func (h *ActivityHandler) StoreActivity(w http.ResponseWriter, r *http.Request) {
	var input models.StoreActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	// basic validation before anything touches the database
	if input.ModuleID == "" {
		SendError(w, http.StatusBadRequest, "Module ID is required", nil)
		return
	}

	activity, err := h.Service.StoreActivity(r.Context(), input)
	if err != nil {
		if strings.Contains(err.Error(), "invalid activity") {
			SendError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		SendError(w, http.StatusInternalServerError, "Failed to save activity data", err)
		return
	}

	writeJSON(w, http.StatusOK, StoreActivityResponse{
		Success:    true,
		Message:    "Activity saved successfully",
		ActivityID: activity.ID,
		Completed:  activity.Completed,
	})
}

// DeleteActivity handles POST /api/delete-activity
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	var input models.DeleteActivityInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.ID == "" || input.ModuleID == "" {
		SendError(w, http.StatusBadRequest, "Activity ID and Module ID are required", nil)
		return
	}

	deleted, err := h.Service.DeleteActivity(r.Context(), input)
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to delete activity", err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteActivityResponse{
		Success: true,
		Message: "Activity deleted successfully",
		Deleted: deleted,
	})
}
