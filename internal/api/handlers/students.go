package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/internal/services"
)

// Response structs for student endpoints
type StudentListResponse struct {
	Success  bool             `json:"success"`
	Students []models.Student `json:"students"`
}

type StudentResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Student models.Student `json:"student"`
}

type StudentDeselectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StudentHandler processes student-related HTTP requests
type StudentHandler struct {
	Service *services.StudentService // business logic goes through here
}

// NewStudentHandler creates handler with injected service
func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{Service: service}
}

// List handles GET /api/student/all - returns the full roster
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.Service.GetAllStudents(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve students", err)
		return
	}

	writeJSON(w, http.StatusOK, StudentListResponse{Success: true, Students: students})
}

// Create handles POST /api/student - adds a student to the roster
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateStudentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(input.Name) == "" {
		SendError(w, http.StatusBadRequest, "Student name is required", nil)
		return
	}

	student, err := h.Service.CreateStudent(r.Context(), input)
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to create student", err)
		return
	}

	writeJSON(w, http.StatusCreated, StudentResponse{
		Success: true,
		Message: "Student created successfully",
		Student: student,
	})
}

// Current handles GET /api/student/current - who is selected right now
func (h *StudentHandler) Current(w http.ResponseWriter, r *http.Request) {
	student, err := h.Service.CurrentStudent(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve current student", err)
		return
	}

	writeJSON(w, http.StatusOK, StudentResponse{Success: true, Student: student})
}

// Select handles POST /api/student/{id}/select - switches the current student
func (h *StudentHandler) Select(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 5 || pathParts[3] == "" {
		SendError(w, http.StatusBadRequest, "Student ID is required", nil)
		return
	}

	student, err := h.Service.SelectStudent(r.Context(), pathParts[3])
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendError(w, http.StatusNotFound, "Student not found", nil)
			return
		}
		SendError(w, http.StatusInternalServerError, "Failed to select student", err)
		return
	}

	writeJSON(w, http.StatusOK, StudentResponse{
		Success: true,
		Message: "Student selected",
		Student: student,
	})
}

// Deselect handles POST /api/student/deselect - drops the current
// selection so the platform falls back to the default student
func (h *StudentHandler) Deselect(w http.ResponseWriter, r *http.Request) {
	h.Service.DeselectStudent()

	writeJSON(w, http.StatusOK, StudentDeselectResponse{
		Success: true,
		Message: "Student selection cleared",
	})
}
