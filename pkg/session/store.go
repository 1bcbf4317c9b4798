package session

import (
	"context"
	"log"
	"sync"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/google/uuid"
)

// Store tracks which student is currently selected. There is no real
// authentication - the platform shows one student's view at a time.
type Store struct {
	DB             *database.Queries
	mu             sync.RWMutex      // for thread safety
	currentSession *database.Session // cache current selection
}

// global session store - not ideal but works for now
var store *Store

// Initialize sets up the session store with database
func Initialize(db *database.Queries) {
	store = &Store{
		DB:             db,
		currentSession: nil,
	}

	// try to restore the last selection on startup
	go loadActiveSession()
}

// loadActiveSession tries to restore the last active session
func loadActiveSession() {
	if store == nil || store.DB == nil {
		log.Println("Warning: Cannot load active session, session store not initialized")
		return
	}

	session, err := store.DB.GetActiveSession(context.Background())
	if err != nil {
		// no big deal if there's no active session
		return
	}

	store.mu.Lock()
	store.currentSession = &session
	store.mu.Unlock()
}

// SetCurrentStudent records which student is selected
func SetCurrentStudent(studentID string) {
	if store == nil || store.DB == nil {
		log.Println("Warning: Cannot set current student, session store not initialized")
		return
	}

	// only one active selection at a time
	if err := ClearAllSessions(); err != nil {
		log.Printf("Warning: failed to clear old sessions: %v", err)
	}

	sessionID := uuid.New()
	session, err := store.DB.CreateSession(context.Background(), database.CreateSessionParams{
		ID:        sessionID,
		StudentID: studentID,
	})
	if err != nil {
		log.Printf("Error creating session: %v", err)
		return
	}

	store.mu.Lock()
	store.currentSession = &session
	store.mu.Unlock()
}

// GetCurrentStudent returns the selected student id, empty when none
func GetCurrentStudent() string {
	if store == nil {
		return ""
	}

	store.mu.RLock()
	defer store.mu.RUnlock()

	if store.currentSession == nil {
		return ""
	}
	return store.currentSession.StudentID
}

// IsSelected checks whether any student is currently selected
func IsSelected() bool {
	return GetCurrentStudent() != ""
}

// ClearCurrentStudent drops the current selection
func ClearCurrentStudent() {
	if store == nil || store.DB == nil {
		return
	}

	store.mu.RLock()
	session := store.currentSession
	store.mu.RUnlock()

	if session != nil {
		if err := store.DB.DeleteSession(context.Background(), session.ID); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}

	store.mu.Lock()
	store.currentSession = nil
	store.mu.Unlock()
}

// ClearAllSessions removes all sessions from the database
// Used by factory reset and when switching students
func ClearAllSessions() error {
	if store == nil || store.DB == nil {
		return nil
	}

	if err := store.DB.DeleteAllSessions(context.Background()); err != nil {
		return err
	}

	store.mu.Lock()
	store.currentSession = nil
	store.mu.Unlock()

	return nil
}
