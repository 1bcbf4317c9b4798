package util

import (
	"os"
)

// GetDataDirectory figures out where client-side cache files live
func GetDataDirectory() string {
	// check container env var first
	dataDir := os.Getenv("INTERNAL_DATA_DIR")
	if dataDir != "" {
		return dataDir
	}

	// fallback to local dev env var
	dataDir = os.Getenv("LEARNING_DATA_DIR")
	if dataDir == "" {
		// last resort - a data dir next to the binary
		dataDir = "data"
	}

	return dataDir
}

// EnsureDirectoryExists creates directory if it doesn't exist
func EnsureDirectoryExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// try to create it
		err = os.MkdirAll(path, 0755)
		if err != nil {
			return false
		}
	}
	return true
}
