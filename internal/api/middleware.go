package api

import (
	"log"
	"net/http"
	"time"
)

// EnableCORS adds CORS headers so the browser frontend can talk to the API
func (s *Server) EnableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// allow all origins for now - should probably restrict this later
		w.Header().Set("Access-Control-Allow-Origin", "*")

		// allow the HTTP methods we use
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		// need this for JSON requests
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// handle preflight requests from browser
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		// pass request along to actual handler
		next.ServeHTTP(w, r)
	})
}

// LogRequests prints one line per request with method, path and duration
func (s *Server) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}
