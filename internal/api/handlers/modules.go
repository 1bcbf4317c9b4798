package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/internal/services"
	"github.com/edulab/learning-platform-backend/pkg/task"
)

// Response structs for module endpoints
type ModuleListResponse struct {
	Success bool            `json:"success"`
	Modules []models.Module `json:"modules"`
}

type ModuleResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Module  models.Module `json:"module"`
}

type ModuleDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ImportStartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// request/response structs for batch import
type ImportModulesRequest struct {
	Modules []models.ImportModuleInput `json:"modules"`
}

type ImportModulesResult struct {
	SuccessCount    int             `json:"success_count"`
	FailureCount    int             `json:"failure_count"`
	ImportedModules []models.Module `json:"imported_modules"`
	Errors          []string        `json:"errors,omitempty"`
}

// ModuleHandler processes module-related HTTP requests
type ModuleHandler struct {
	Service *services.ModuleService // handles all module business logic
}

// NewModuleHandler creates handler with injected service
func NewModuleHandler(service *services.ModuleService) *ModuleHandler {
	return &ModuleHandler{Service: service}
}

// List handles GET /api/modules - returns all modules
func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.ListModules(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve modules", err)
		return
	}

	writeJSON(w, http.StatusOK, ModuleListResponse{Success: true, Modules: modules})
}

// ListWithActivities handles GET /api/modules-with-activities - returns
// all modules, each carrying its activity list
func (h *ModuleHandler) ListWithActivities(w http.ResponseWriter, r *http.Request) {
	modules, err := h.Service.ListModulesWithActivities(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to retrieve modules", err)
		return
	}

	writeJSON(w, http.StatusOK, ModuleListResponse{Success: true, Modules: modules})
}

// Create handles POST /api/modules - makes a new module
func (h *ModuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.CreateModuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(input.Title) == "" {
		SendError(w, http.StatusBadRequest, "Module title is required", nil)
		return
	}

	module, err := h.Service.CreateModule(r.Context(), input)
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to create module", err)
		return
	}

	writeJSON(w, http.StatusCreated, ModuleResponse{
		Success: true,
		Message: "Module created successfully",
		Module:  module,
	})
}

// Update handles PUT /api/modules/{id} - updates module metadata
func (h *ModuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 4 || pathParts[3] == "" {
		SendError(w, http.StatusBadRequest, "Module ID is required", nil)
		return
	}
	moduleID := pathParts[3]

	var input models.UpdateModuleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(input.Title) == "" {
		SendError(w, http.StatusBadRequest, "Module title is required", nil)
		return
	}

	module, err := h.Service.UpdateModuleMetadata(r.Context(), moduleID, input)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			SendError(w, http.StatusNotFound, "Module not found", nil)
			return
		}
		SendError(w, http.StatusInternalServerError, "Failed to update module", err)
		return
	}

	writeJSON(w, http.StatusOK, ModuleResponse{
		Success: true,
		Message: "Module updated successfully",
		Module:  module,
	})
}

// Delete handles DELETE /api/modules/{id} - removes a module and its activities
func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 4 || pathParts[3] == "" {
		SendError(w, http.StatusBadRequest, "Module ID is required", nil)
		return
	}

	if err := h.Service.DeleteModule(r.Context(), pathParts[3]); err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to delete module", err)
		return
	}

	writeJSON(w, http.StatusOK, ModuleDeleteResponse{
		Success: true,
		Message: "Module deleted successfully",
	})
}

// Import handles POST /api/modules/import - imports multiple modules
// with nested activities as a background task
func (h *ModuleHandler) Import(w http.ResponseWriter, r *http.Request) {
	var request ImportModulesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		SendError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if len(request.Modules) == 0 {
		SendError(w, http.StatusBadRequest, "No modules provided for import", nil)
		return
	}

	// create background task since this might take a while
	taskID := task.Create("module_import")

	// do the actual work in background
	go func() {
		task.SetStatus(taskID, task.StatusProcessing)
		task.SetMessage(taskID, "Starting import of "+strconv.Itoa(len(request.Modules))+" modules")

		// need new context since original request will be done
		ctx := context.Background()

		imported, errs := h.Service.BatchImportModules(ctx, request.Modules)

		result := ImportModulesResult{
			SuccessCount:    len(imported),
			FailureCount:    len(errs),
			ImportedModules: imported,
		}
		for _, err := range errs {
			result.Errors = append(result.Errors, err.Error())
		}

		// update task based on results
		if len(errs) > 0 && len(imported) == 0 {
			task.SetMessage(taskID, "Failed to import any modules")
			task.Fail(taskID, errs[0].Error())
			return
		}
		if len(errs) > 0 {
			task.SetMessage(taskID, "Imported "+strconv.Itoa(len(imported))+" modules with "+strconv.Itoa(len(errs))+" errors")
		} else {
			task.SetMessage(taskID, "Successfully imported "+strconv.Itoa(len(imported))+" modules")
		}
		task.Complete(taskID, result)
	}()

	// return task ID so client can check progress
	writeJSON(w, http.StatusOK, ImportStartResponse{
		Success: true,
		Message: "Import started",
		TaskID:  taskID,
	})
}
