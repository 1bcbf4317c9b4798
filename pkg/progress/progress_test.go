package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edulab/learning-platform-backend/internal/models"
)

func moduleWith(completed, total int) models.Module {
	activities := make([]models.Activity, total)
	for i := 0; i < total; i++ {
		activities[i] = models.Activity{ID: string(rune('a'+i)) + "1", Completed: i < completed}
	}
	return models.Module{ID: "m", Activities: activities}
}

func TestForModule(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		wantPct          int
	}{
		{name: "empty module", completed: 0, total: 0, wantPct: 0},
		{name: "none completed", completed: 0, total: 4, wantPct: 0},
		{name: "all completed", completed: 4, total: 4, wantPct: 100},
		{name: "one of three rounds down", completed: 1, total: 3, wantPct: 33},
		{name: "two of three rounds up", completed: 2, total: 3, wantPct: 67},
		{name: "half up at the boundary", completed: 1, total: 8, wantPct: 13}, // 12.5 -> 13
		{name: "one of six", completed: 1, total: 6, wantPct: 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ForModule(moduleWith(tt.completed, tt.total))
			assert.Equal(t, tt.completed, got.Completed)
			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.wantPct, got.Percentage)
		})
	}
}

func TestForModule_PercentageStaysInBounds(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for completed := 0; completed <= total; completed++ {
			got := ForModule(moduleWith(completed, total))
			assert.GreaterOrEqual(t, got.Percentage, 0)
			assert.LessOrEqual(t, got.Percentage, 100)
		}
	}
}

// Overall aggregates counts first and divides once. A 1/1 module next
// to a 0/9 module is 10%, not the 50% a percentage average would give.
func TestOverall_AggregatesBeforeDividing(t *testing.T) {
	modules := []models.Module{
		moduleWith(1, 1),
		moduleWith(0, 9),
	}

	got := Overall(modules)

	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 10, got.Percentage)
}

func TestOverall_EmptyAndNoModules(t *testing.T) {
	assert.Equal(t, Summary{}, Overall(nil))
	assert.Equal(t, Summary{}, Overall([]models.Module{}))

	// modules with no activities contribute nothing
	got := Overall([]models.Module{moduleWith(0, 0), moduleWith(2, 4)})
	assert.Equal(t, 50, got.Percentage)
}

func ts(s string) time.Time {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return parsed
}

func rec(studentID, moduleID, activityID string, at time.Time) models.CompletionRecord {
	return models.CompletionRecord{
		StudentID:  studentID,
		ModuleID:   moduleID,
		ActivityID: activityID,
		Timestamp:  at,
	}
}

func TestForStudentModule(t *testing.T) {
	activities := []models.Activity{
		{ID: "a1"}, {ID: "a2"}, {ID: "a3"}, {ID: "a4"},
	}
	records := []models.CompletionRecord{
		rec("1", "module-1", "a1", ts("2026-08-25T10:00:00Z")),
		rec("1", "module-1", "a3", ts("2026-08-26T09:30:00Z")),
		rec("2", "module-1", "a2", ts("2026-08-26T11:00:00Z")), // other student
		rec("1", "module-2", "a4", ts("2026-08-27T08:00:00Z")), // other module
	}

	got := ForStudentModule("1", "module-1", activities, records)

	assert.Equal(t, []string{"a1", "a3"}, got.CompletedActivityIDs)
	assert.Equal(t, 50, got.Percentage)
	if assert.NotNil(t, got.LatestTimestamp) {
		assert.Equal(t, ts("2026-08-26T09:30:00Z"), *got.LatestTimestamp)
	}
}

func TestForStudentModule_IgnoresRecordsForRemovedActivities(t *testing.T) {
	activities := []models.Activity{{ID: "a1"}, {ID: "a2"}}
	records := []models.CompletionRecord{
		rec("1", "module-1", "a1", ts("2026-08-25T10:00:00Z")),
		rec("1", "module-1", "deleted-activity", ts("2026-08-28T10:00:00Z")),
	}

	got := ForStudentModule("1", "module-1", activities, records)

	assert.Equal(t, []string{"a1"}, got.CompletedActivityIDs)
	assert.Equal(t, 50, got.Percentage)
	// the stale record's newer timestamp must not leak through either
	assert.Equal(t, ts("2026-08-25T10:00:00Z"), *got.LatestTimestamp)
}

func TestForStudentModule_DuplicateRecordsCountOnce(t *testing.T) {
	activities := []models.Activity{{ID: "a1"}, {ID: "a2"}}
	records := []models.CompletionRecord{
		rec("1", "module-1", "a1", ts("2026-08-25T10:00:00Z")),
		rec("1", "module-1", "a1", ts("2026-08-26T10:00:00Z")),
	}

	got := ForStudentModule("1", "module-1", activities, records)

	assert.Equal(t, []string{"a1"}, got.CompletedActivityIDs)
	assert.Equal(t, 50, got.Percentage)
	assert.Equal(t, ts("2026-08-26T10:00:00Z"), *got.LatestTimestamp)
}

func TestForStudentModule_NoMatchingRecords(t *testing.T) {
	activities := []models.Activity{{ID: "a1"}}

	got := ForStudentModule("1", "module-1", activities, nil)

	assert.Empty(t, got.CompletedActivityIDs)
	assert.Equal(t, 0, got.Percentage)
	assert.Nil(t, got.LatestTimestamp)
}

func TestForStudentModule_EqualTimestampsKeepEarliestSeen(t *testing.T) {
	same := ts("2026-08-25T10:00:00Z")
	activities := []models.Activity{{ID: "a1"}, {ID: "a2"}}
	records := []models.CompletionRecord{
		rec("1", "module-1", "a1", same),
		rec("1", "module-1", "a2", same),
	}

	got := ForStudentModule("1", "module-1", activities, records)

	assert.Equal(t, same, *got.LatestTimestamp)
	assert.Equal(t, 100, got.Percentage)
}
