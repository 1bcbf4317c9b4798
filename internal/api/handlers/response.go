package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// Common failure envelope - clients check the success flag, not the
// status code, so every JSON body carries it
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON encodes any payload with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// SendError logs the detailed error and sends a structured failure body
func SendError(w http.ResponseWriter, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	} else {
		log.Printf("%s", message)
	}

	writeJSON(w, statusCode, ErrorResponse{
		Success: false,
		Message: message,
	})
}
