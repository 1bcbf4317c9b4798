package task

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status shows what state a task is in
type Status string

const (
	StatusPending    Status = "pending"    // waiting to start
	StatusProcessing Status = "processing" // currently running
	StatusCompleted  Status = "completed"  // finished successfully
	StatusFailed     Status = "failed"     // something went wrong
)

// Task represents a background job that might take a while,
// like a batch module import
type Task struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`                    // what kind of task
	Status       Status      `json:"status"`                  // current state
	Progress     float32     `json:"progress"`                // 0-100 percent done
	CreatedAt    time.Time   `json:"created_at"`              // when it started
	StartedAt    time.Time   `json:"started_at,omitempty"`    // when processing began
	CompletedAt  time.Time   `json:"completed_at,omitempty"`  // when it finished
	Message      string      `json:"message,omitempty"`       // status updates
	ErrorMessage string      `json:"error_message,omitempty"` // what went wrong
	Result       interface{} `json:"result,omitempty"`        // final results
}

// Manager keeps track of all running tasks
type Manager struct {
	tasks map[string]*Task
	mu    sync.RWMutex // for thread safety
}

// global task manager - another singleton but whatever
var manager *Manager

// Initialize sets up the task manager
func Initialize() {
	manager = &Manager{
		tasks: make(map[string]*Task),
	}
}

// Create makes a new task and returns its ID
func Create(taskType string) string {
	if manager == nil {
		Initialize()
	}

	taskID := uuid.New().String()
	t := &Task{
		ID:        taskID,
		Type:      taskType,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	manager.mu.Lock()
	manager.tasks[taskID] = t
	manager.mu.Unlock()

	return taskID
}

// Get retrieves task info by ID. Returns a copy taken under the lock -
// callers can read or encode it while the task keeps running without
// racing the background goroutine that updates it.
func Get(taskID string) (Task, bool) {
	if manager == nil {
		return Task{}, false
	}

	manager.mu.RLock()
	defer manager.mu.RUnlock()

	t, exists := manager.tasks[taskID]
	if !exists {
		return Task{}, false
	}
	return *t, true
}

// update applies fn to the task under lock, no-op when it doesn't exist
func update(taskID string, fn func(*Task)) {
	if manager == nil {
		return
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	if t, exists := manager.tasks[taskID]; exists {
		fn(t)
	}
}

// SetStatus changes the task status
func SetStatus(taskID string, status Status) {
	update(taskID, func(t *Task) {
		t.Status = status
		if status == StatusProcessing && t.StartedAt.IsZero() {
			t.StartedAt = time.Now()
		}
		if status == StatusCompleted || status == StatusFailed {
			t.CompletedAt = time.Now()
		}
	})
}

// SetProgress updates how much of the task is done
func SetProgress(taskID string, progress float32, message string) {
	update(taskID, func(t *Task) {
		t.Progress = progress
		t.Message = message
	})
}

// SetMessage updates the status message
func SetMessage(taskID string, message string) {
	update(taskID, func(t *Task) {
		t.Message = message
	})
}

// Fail marks task as failed with error message
func Fail(taskID string, errorMessage string) {
	update(taskID, func(t *Task) {
		t.Status = StatusFailed
		t.ErrorMessage = errorMessage
		t.CompletedAt = time.Now()
	})
}

// Complete marks task as done with optional result data
func Complete(taskID string, result interface{}) {
	update(taskID, func(t *Task) {
		t.Status = StatusCompleted
		t.Progress = 100
		t.Result = result
		t.CompletedAt = time.Now()
	})
}

// CleanupOld removes finished tasks older than the specified age
func CleanupOld(maxAge time.Duration) int {
	if manager == nil {
		return 0
	}

	manager.mu.Lock()
	defer manager.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	cleaned := 0

	for taskID, t := range manager.tasks {
		// only clean up completed or failed tasks
		if (t.Status == StatusCompleted || t.Status == StatusFailed) &&
			!t.CompletedAt.IsZero() && t.CompletedAt.Before(cutoff) {
			delete(manager.tasks, taskID)
			cleaned++
		}
	}

	return cleaned
}

// CleanupRoutine runs cleanup automatically on a schedule
func CleanupRoutine(interval, maxAge time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		CleanupOld(maxAge)
	}
}
