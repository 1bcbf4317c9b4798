package handlers

import (
	"net/http"
	"time"

	"github.com/edulab/learning-platform-backend/pkg/task"
)

// Response structs for task endpoints
type TaskResponse struct {
	Success bool      `json:"success"`
	Data    task.Task `json:"data"`
}

type TaskCleanupResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cleaned int    `json:"cleaned"`
}

// TaskHandler handles task status requests
type TaskHandler struct{}

// NewTaskHandler creates new task handler
func NewTaskHandler() *TaskHandler {
	return &TaskHandler{}
}

// GetTask handles GET /api/tasks?id={taskId} - checks task status
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID := r.URL.Query().Get("id")
	if taskID == "" {
		SendError(w, http.StatusBadRequest, "Task ID is required", nil)
		return
	}

	t, exists := task.Get(taskID)
	if !exists {
		SendError(w, http.StatusNotFound, "Task not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, TaskResponse{Success: true, Data: t})
}

// CleanupTasks handles POST /api/tasks/cleanup - manually cleans old tasks
func (h *TaskHandler) CleanupTasks(w http.ResponseWriter, r *http.Request) {
	// default to 24 hours if not specified
	ageStr := r.URL.Query().Get("age")
	age := 24 * time.Hour

	if ageStr != "" {
		var err error
		age, err = time.ParseDuration(ageStr)
		if err != nil {
			SendError(w, http.StatusBadRequest, "Invalid duration format", err)
			return
		}
	}

	cleaned := task.CleanupOld(age)

	writeJSON(w, http.StatusOK, TaskCleanupResponse{
		Success: true,
		Message: "Cleanup completed",
		Cleaned: cleaned,
	})
}
