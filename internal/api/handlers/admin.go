package handlers

import (
	"log"
	"net/http"

	"github.com/edulab/learning-platform-backend/internal/services"
)

// Response structs for admin endpoints
type FactoryResetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DatabaseStatsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Stats   map[string]int `json:"stats"`
}

// AdminHandler handles administrative operations
type AdminHandler struct {
	Service *services.AdminService // admin operations go through here
}

// NewAdminHandler creates handler with injected admin service
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

// FactoryReset handles POST /api/admin/factory-reset - clears all database data
func (h *AdminHandler) FactoryReset(w http.ResponseWriter, r *http.Request) {
	log.Println("Factory reset requested")

	if err := h.Service.FactoryResetDatabase(r.Context()); err != nil {
		SendError(w, http.StatusInternalServerError, "Factory reset failed: "+err.Error(), err)
		return
	}

	writeJSON(w, http.StatusOK, FactoryResetResponse{
		Success: true,
		Message: "Database factory reset completed successfully - all data cleared",
	})
}

// GetStats handles GET /api/admin/stats - shows basic database statistics
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.GetDatabaseStats(r.Context())
	if err != nil {
		SendError(w, http.StatusInternalServerError, "Failed to get database stats", err)
		return
	}

	writeJSON(w, http.StatusOK, DatabaseStatsResponse{
		Success: true,
		Message: "Database statistics retrieved",
		Stats:   stats,
	})
}
