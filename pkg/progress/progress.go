// Package progress derives completion percentages from module and
// completion data without mutating anything.
package progress

import (
	"math"
	"time"

	"github.com/edulab/learning-platform-backend/internal/models"
)

// Summary is completion progress for one module or across all of them
type Summary struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"` // 0-100, rounded half up
}

// StudentModuleResult is one student's standing within one module
type StudentModuleResult struct {
	CompletedActivityIDs []string   `json:"completed_activity_ids"`
	Percentage           int        `json:"percentage"`
	LatestTimestamp      *time.Time `json:"latest_timestamp,omitempty"`
}

// percentage rounds half up, 0 when total is 0 so empty modules never
// divide by zero
func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ForModule counts a module's completed activities and computes the
// completion percentage
func ForModule(module models.Module) Summary {
	completed := 0
	for _, act := range module.Activities {
		if act.Completed {
			completed++
		}
	}

	return Summary{
		Completed:  completed,
		Total:      len(module.Activities),
		Percentage: percentage(completed, len(module.Activities)),
	}
}

// Overall sums activity counts across all modules first, then computes
// one percentage from the sums. Not an average of per-module
// percentages - that would let tiny modules swing the number.
func Overall(modules []models.Module) Summary {
	completed, total := 0, 0
	for _, mod := range modules {
		sub := ForModule(mod)
		completed += sub.Completed
		total += sub.Total
	}

	return Summary{
		Completed:  completed,
		Total:      total,
		Percentage: percentage(completed, total),
	}
}

// ForStudentModule computes one student's completion within a module
// from server completion records. Records referencing activities no
// longer in the module's list are ignored so deleted activities can't
// inflate the percentage. Nil activity/record slices count as empty.
func ForStudentModule(studentID, moduleID string, activities []models.Activity, records []models.CompletionRecord) StudentModuleResult {
	activityIDs := make(map[string]bool, len(activities))
	for _, act := range activities {
		if act.ID != "" {
			activityIDs[act.ID] = true
		}
	}

	completedIDs := make([]string, 0)
	seen := make(map[string]bool)
	var latest *time.Time

	for _, rec := range records {
		if rec.StudentID != studentID || rec.ModuleID != moduleID {
			continue
		}
		if !activityIDs[rec.ActivityID] {
			continue // stale record for a removed activity
		}

		if !seen[rec.ActivityID] {
			seen[rec.ActivityID] = true
			completedIDs = append(completedIDs, rec.ActivityID)
		}

		// strictly-after comparison: among identical timestamps the
		// earliest-seen record wins
		if latest == nil || rec.Timestamp.After(*latest) {
			ts := rec.Timestamp
			latest = &ts
		}
	}

	return StudentModuleResult{
		CompletedActivityIDs: completedIDs,
		Percentage:           percentage(len(completedIDs), len(activities)),
		LatestTimestamp:      latest,
	}
}
