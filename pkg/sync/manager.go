// Package sync keeps the client's view of learning modules consistent:
// cache on disk, optimistic in-memory state, and the server-stored
// activity lists, reconciled whenever a fetch completes.
package sync

import (
	"context"
	"fmt"
	"log"
	gosync "sync"
	"time"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/pkg/progress"
	"github.com/edulab/learning-platform-backend/pkg/reconcile"
)

// CacheStore is what the manager needs from the local cache
type CacheStore interface {
	LoadModules() []models.Module
	SaveModules(modules []models.Module) error
	LoadSelectedModuleID() string
	SaveSelectedModuleID(id string) error
}

// ActivityStore is what the manager needs from the remote activity store
type ActivityStore interface {
	FetchModuleActivities(ctx context.Context, moduleID string) []models.Activity
	StoreActivity(ctx context.Context, activity models.Activity)
	RecordCompletion(ctx context.Context, studentID, activityID, moduleID string, quizScore *float64) error
	DeleteActivity(ctx context.Context, activityID, moduleID string) error
}

// UpdateFunc is told whenever a module's activity list changes, so the
// view layer can re-render. Injected explicitly - no ambient globals.
type UpdateFunc func(moduleID string, activities []models.Activity)

// Manager owns the client-side module state. Two layers: the optimistic
// in-memory list (user actions apply immediately) and the confirmed
// snapshot from the last successful reconciliation per module. The
// OR-merge guarantees a stale fetch never undoes a completion that
// happened while it was in flight.
type Manager struct {
	mu       gosync.Mutex
	cache    CacheStore
	remote   ActivityStore
	onUpdate UpdateFunc

	studentID string
	modules   []models.Module
	confirmed map[string][]models.Activity // last reconciled state per module
	selected  string
}

// NewManager wires the manager and loads cached state, falling back to
// the seed dataset when the cache is empty or corrupt
func NewManager(cache CacheStore, remote ActivityStore, studentID string, onUpdate UpdateFunc) *Manager {
	m := &Manager{
		cache:     cache,
		remote:    remote,
		onUpdate:  onUpdate,
		studentID: studentID,
		confirmed: make(map[string][]models.Activity),
	}

	modules := cache.LoadModules()
	if modules == nil {
		// nothing usable cached - never crash, start from the seed
		modules = DefaultModules()
	}
	m.modules = modules
	m.selected = cache.LoadSelectedModuleID()

	return m
}

// Modules returns a copy of the current module list
func (m *Manager) Modules() []models.Module {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyModules(m.modules)
}

// SelectedModuleID returns the module the user is looking at
func (m *Manager) SelectedModuleID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected
}

// SelectModule remembers the chosen module and persists the choice
func (m *Manager) SelectModule(id string) {
	m.mu.Lock()
	m.selected = id
	m.mu.Unlock()

	if err := m.cache.SaveSelectedModuleID(id); err != nil {
		log.Printf("Error saving selected module: %v", err)
	}
}

// Refresh fetches one module's server activities and reconciles them
// into the local list. A failed fetch comes back empty and the merge is
// a no-op, so local state survives server trouble untouched.
func (m *Manager) Refresh(ctx context.Context, moduleID string) error {
	fetched := m.remote.FetchModuleActivities(ctx, moduleID)

	m.mu.Lock()
	idx := m.indexOf(moduleID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("unknown module: %s", moduleID)
	}

	merged := reconcile.Merge(m.modules[idx].Activities, fetched)
	m.modules[idx].Activities = merged
	m.confirmed[moduleID] = copyActivities(merged)
	activities := copyActivities(merged)
	m.saveLocked()
	m.mu.Unlock()

	m.notify(moduleID, activities)
	return nil
}

// RefreshAll reconciles every module
func (m *Manager) RefreshAll(ctx context.Context) {
	for _, mod := range m.Modules() {
		if err := m.Refresh(ctx, mod.ID); err != nil {
			log.Printf("Error refreshing module %s: %v", mod.ID, err)
		}
	}
}

// MarkCompleted applies a completion optimistically - the UI flips
// immediately - then tells the server. Completion is monotonic, so a
// repeat click is a no-op.
func (m *Manager) MarkCompleted(ctx context.Context, moduleID, activityID string, quizScore *float64) error {
	m.mu.Lock()
	idx := m.indexOf(moduleID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("unknown module: %s", moduleID)
	}

	found := false
	for i := range m.modules[idx].Activities {
		if m.modules[idx].Activities[i].ID == activityID {
			m.modules[idx].Activities[i].Completed = true
			m.modules[idx].Activities[i].IsNew = false
			found = true
			break
		}
	}
	if !found {
		m.mu.Unlock()
		return fmt.Errorf("unknown activity: %s", activityID)
	}

	activities := copyActivities(m.modules[idx].Activities)
	m.saveLocked()
	m.mu.Unlock()

	m.notify(moduleID, activities)

	// server confirmation is best effort - the optimistic state stands
	// either way, the OR-merge keeps it on the next reconciliation
	if err := m.remote.RecordCompletion(ctx, m.studentID, activityID, moduleID, quizScore); err != nil {
		log.Printf("Error recording completion for activity %s: %v", activityID, err)
	}

	return nil
}

// AddActivity appends a new activity to a module, assigns it a
// client-side id when missing, and syncs it to the server in the
// background manner - a failed sync is caught up by a later store.
func (m *Manager) AddActivity(ctx context.Context, moduleID string, activity models.Activity) (models.Activity, error) {
	if activity.ID == "" {
		activity.ID = fmt.Sprintf("activity_%d", time.Now().UnixMilli())
	}
	activity.ModuleID = moduleID
	activity.IsNew = true

	m.mu.Lock()
	idx := m.indexOf(moduleID)
	if idx < 0 {
		m.mu.Unlock()
		return models.Activity{}, fmt.Errorf("unknown module: %s", moduleID)
	}

	m.modules[idx].Activities = append(m.modules[idx].Activities, activity)
	activities := copyActivities(m.modules[idx].Activities)
	m.saveLocked()
	m.mu.Unlock()

	m.notify(moduleID, activities)
	m.remote.StoreActivity(ctx, activity)

	return activity, nil
}

// RemoveActivity deletes an activity locally and server-side
func (m *Manager) RemoveActivity(ctx context.Context, moduleID, activityID string) error {
	m.mu.Lock()
	idx := m.indexOf(moduleID)
	if idx < 0 {
		m.mu.Unlock()
		return fmt.Errorf("unknown module: %s", moduleID)
	}

	kept := m.modules[idx].Activities[:0:0]
	for _, act := range m.modules[idx].Activities {
		if act.ID != activityID {
			kept = append(kept, act)
		}
	}
	m.modules[idx].Activities = kept

	activities := copyActivities(kept)
	m.saveLocked()
	m.mu.Unlock()

	m.notify(moduleID, activities)

	if err := m.remote.DeleteActivity(ctx, activityID, moduleID); err != nil {
		log.Printf("Error deleting activity %s server-side: %v", activityID, err)
	}

	return nil
}

// ConfirmedActivities returns the last reconciled state for a module,
// nil when it has never been reconciled. Lets callers distinguish
// optimistic state from what the server has acknowledged.
func (m *Manager) ConfirmedActivities(moduleID string) []models.Activity {
	m.mu.Lock()
	defer m.mu.Unlock()

	confirmed, ok := m.confirmed[moduleID]
	if !ok {
		return nil
	}
	return copyActivities(confirmed)
}

// ModuleProgress computes progress for one module
func (m *Manager) ModuleProgress(moduleID string) (progress.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(moduleID)
	if idx < 0 {
		return progress.Summary{}, fmt.Errorf("unknown module: %s", moduleID)
	}
	return progress.ForModule(m.modules[idx]), nil
}

// OverallProgress computes progress across every module
func (m *Manager) OverallProgress() progress.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return progress.Overall(m.modules)
}

// indexOf finds a module position, -1 when absent. Callers hold mu.
func (m *Manager) indexOf(moduleID string) int {
	for i := range m.modules {
		if m.modules[i].ID == moduleID {
			return i
		}
	}
	return -1
}

// saveLocked writes the full collection back to the cache. Callers hold
// mu - saving inside the same critical section as the mutation means
// snapshots reach disk in mutation order, an older state can never
// overwrite a newer one.
func (m *Manager) saveLocked() {
	if err := m.cache.SaveModules(copyModules(m.modules)); err != nil {
		log.Printf("Error saving module cache: %v", err)
	}
}

// notify tells the view layer about the changed module. Runs outside
// the lock so a slow callback never blocks other mutations.
func (m *Manager) notify(moduleID string, activities []models.Activity) {
	if m.onUpdate != nil {
		m.onUpdate(moduleID, activities)
	}
}

func copyActivities(activities []models.Activity) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)
	return out
}

func copyModules(modules []models.Module) []models.Module {
	out := make([]models.Module, len(modules))
	for i, mod := range modules {
		out[i] = mod
		out[i].Activities = copyActivities(mod.Activities)
	}
	return out
}
