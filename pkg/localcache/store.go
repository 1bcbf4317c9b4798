// Package localcache is the client-side persistent store: the last-known
// module collection and the selected module id, written to disk so a
// restart picks up where the user left off. The Go equivalent of the
// browser's two localStorage keys.
package localcache

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/pkg/util"
)

const (
	modulesFile  = "learningModules.json"
	selectedFile = "selectedModuleId"
)

// Store persists the module collection under a directory, one file per key
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, falling back to the
// configured data directory when dir is empty
func NewStore(dir string) *Store {
	if dir == "" {
		dir = util.GetDataDirectory()
	}
	return &Store{dir: dir}
}

// LoadModules returns the cached module collection, or nil when nothing
// usable is stored. Corrupt data is logged and treated exactly like
// missing data - callers fall back to their seed dataset on nil, they
// never crash.
func (s *Store) LoadModules() []models.Module {
	data, err := os.ReadFile(filepath.Join(s.dir, modulesFile))
	if err != nil {
		// no cache yet - perfectly normal on first run
		return nil
	}

	var modules []models.Module
	if err := json.Unmarshal(data, &modules); err != nil {
		log.Printf("Ignoring corrupt module cache: %v", err)
		return nil
	}

	return modules
}

// SaveModules overwrites the entire stored collection. Only call after
// a successful reconciliation or an explicit user edit - persisting
// half-loaded state would poison the next startup.
func (s *Store) SaveModules(modules []models.Module) error {
	if !util.EnsureDirectoryExists(s.dir) {
		return os.ErrPermission
	}

	data, err := json.Marshal(modules)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, modulesFile), data, 0644)
}

// LoadSelectedModuleID returns the last-selected module id, empty when unset
func (s *Store) LoadSelectedModuleID() string {
	data, err := os.ReadFile(filepath.Join(s.dir, selectedFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveSelectedModuleID remembers which module the user is looking at
func (s *Store) SaveSelectedModuleID(id string) error {
	if !util.EnsureDirectoryExists(s.dir) {
		return os.ErrPermission
	}
	return os.WriteFile(filepath.Join(s.dir, selectedFile), []byte(id), 0644)
}
