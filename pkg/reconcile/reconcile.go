// Package reconcile merges locally-cached and server-fetched activity
// lists into one consistent list. The server is authoritative for
// content, but completion is monotonic: once an activity is completed
// locally, a stale server response must never flip it back.
package reconcile

import (
	"github.com/edulab/learning-platform-backend/internal/models"
)

// Merge combines the locally-held activity list with a freshly fetched
// server list. Rules:
//   - exactly one entry per distinct id from either list
//   - id in both: remote fields win, completed is OR-combined
//   - id only in local (not yet synced): kept unchanged
//   - id only in remote: appended at the end, in server order
//   - local ordering is preserved for entries already known locally
//
// Entries without an id are skipped rather than failing the merge.
// Pure function - callers persist and re-render the result.
func Merge(local, remote []models.Activity) []models.Activity {
	remoteByID := make(map[string]models.Activity, len(remote))
	for _, act := range remote {
		if act.ID == "" {
			continue
		}
		remoteByID[act.ID] = act
	}

	merged := make([]models.Activity, 0, len(local)+len(remote))
	seen := make(map[string]bool, len(local)+len(remote))

	for _, act := range local {
		if act.ID == "" || seen[act.ID] {
			continue
		}
		seen[act.ID] = true

		if rem, ok := remoteByID[act.ID]; ok {
			// server wins on content, completion never downgrades
			rem.Completed = rem.Completed || act.Completed
			// the "Ny" badge is client-side state the server never has
			rem.IsNew = act.IsNew
			merged = append(merged, rem)
		} else {
			merged = append(merged, act)
		}
	}

	// activities other sessions created - append in server order
	for _, act := range remote {
		if act.ID == "" || seen[act.ID] {
			continue
		}
		seen[act.ID] = true
		merged = append(merged, act)
	}

	return merged
}

// MergeModules applies Merge to every module in the local collection,
// looking up the fetched list by module id. Modules without a fetched
// entry are left alone (a failed fetch degrades to a no-op merge).
func MergeModules(local []models.Module, remote map[string][]models.Activity) []models.Module {
	merged := make([]models.Module, len(local))
	for i, mod := range local {
		merged[i] = mod
		if fetched, ok := remote[mod.ID]; ok {
			merged[i].Activities = Merge(mod.Activities, fetched)
		}
	}
	return merged
}
