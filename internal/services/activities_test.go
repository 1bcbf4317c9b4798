package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/models"
)

// fakeActivityStore keeps activities in insertion order and mimics the
// upsert semantics of the real queries, including the completion OR.
type fakeActivityStore struct {
	rows    []database.Activity
	failAll bool
}

var errStoreDown = errors.New("store down")

func (f *fakeActivityStore) ListActivitiesByModule(_ context.Context, moduleID string) ([]database.Activity, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	out := []database.Activity{}
	for _, row := range f.rows {
		if row.ModuleID == moduleID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeActivityStore) ListAllActivities(_ context.Context) ([]database.Activity, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	return f.rows, nil
}

func (f *fakeActivityStore) UpsertActivity(_ context.Context, arg database.UpsertActivityParams) (database.Activity, error) {
	if f.failAll {
		return database.Activity{}, errStoreDown
	}
	for i, row := range f.rows {
		if row.ID == arg.ID && row.ModuleID == arg.ModuleID {
			f.rows[i] = database.Activity{
				ID:          arg.ID,
				ModuleID:    arg.ModuleID,
				Type:        arg.Type,
				Title:       arg.Title,
				Description: arg.Description,
				Url:         arg.Url,
				Completed:   row.Completed || arg.Completed,
			}
			return f.rows[i], nil
		}
	}
	row := database.Activity{
		ID:          arg.ID,
		ModuleID:    arg.ModuleID,
		Type:        arg.Type,
		Title:       arg.Title,
		Description: arg.Description,
		Url:         arg.Url,
		Completed:   arg.Completed,
	}
	f.rows = append(f.rows, row)
	return row, nil
}

func (f *fakeActivityStore) DeleteActivity(_ context.Context, arg database.DeleteActivityParams) (int64, error) {
	if f.failAll {
		return 0, errStoreDown
	}
	for i, row := range f.rows {
		if row.ID == arg.ID && row.ModuleID == arg.ModuleID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func storeInput(id, moduleID string) models.StoreActivityInput {
	return models.StoreActivityInput{
		ID:       id,
		ModuleID: moduleID,
		Type:     models.ActivityTypePDF,
		Title:    "Reading",
		URL:      "https://example.com/doc.pdf",
	}
}

func TestStoreActivity_CreatesAndReturnsModel(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})

	got, err := svc.StoreActivity(context.Background(), storeInput("a1", "module-1"))

	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)
	assert.Equal(t, "module-1", got.ModuleID)
	assert.Equal(t, models.ActivityTypePDF, got.Type)
	assert.False(t, got.Completed)
}

func TestStoreActivity_ValidationFailures(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})
	tests := []struct {
		name  string
		input models.StoreActivityInput
	}{
		{name: "missing id", input: models.StoreActivityInput{ModuleID: "m", Type: "pdf", Title: "t", URL: "https://x"}},
		{name: "missing module id", input: models.StoreActivityInput{ID: "a", Type: "pdf", Title: "t", URL: "https://x"}},
		{name: "unknown type", input: models.StoreActivityInput{ID: "a", ModuleID: "m", Type: "podcast", Title: "t", URL: "https://x"}},
		{name: "missing title", input: models.StoreActivityInput{ID: "a", ModuleID: "m", Type: "pdf", URL: "https://x"}},
		{name: "missing url for non-quiz", input: models.StoreActivityInput{ID: "a", ModuleID: "m", Type: "pdf", Title: "t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.StoreActivity(context.Background(), tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid activity")
		})
	}
}

func TestStoreActivity_QuizNeedsNoURL(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})

	got, err := svc.StoreActivity(context.Background(), models.StoreActivityInput{
		ID:       "q1",
		ModuleID: "module-1",
		Type:     models.ActivityTypeQuiz,
		Title:    "Grammatik quiz",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ActivityTypeQuiz, got.Type)
	assert.Equal(t, "", got.URL)
}

func TestStoreActivity_UpsertKeepsCompletionMonotonic(t *testing.T) {
	store := &fakeActivityStore{}
	svc := NewActivityService(store)

	completed := storeInput("a1", "module-1")
	completed.Completed = true
	_, err := svc.StoreActivity(context.Background(), completed)
	require.NoError(t, err)

	// same activity re-stored without the flag - must stay completed
	again := storeInput("a1", "module-1")
	again.Title = "Reading (updated)"
	got, err := svc.StoreActivity(context.Background(), again)

	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, "Reading (updated)", got.Title)
	require.Len(t, store.rows, 1)
}

func TestStoreActivity_DropsIsNewFlag(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})

	input := storeInput("a1", "module-1")
	input.IsNew = true
	got, err := svc.StoreActivity(context.Background(), input)

	require.NoError(t, err)
	assert.False(t, got.IsNew)
}

func TestGetModuleActivities(t *testing.T) {
	store := &fakeActivityStore{rows: []database.Activity{
		{ID: "a1", ModuleID: "module-1", Type: "pdf", Title: "One", Url: sql.NullString{String: "https://x", Valid: true}},
		{ID: "b1", ModuleID: "module-2", Type: "link", Title: "Other"},
		{ID: "a2", ModuleID: "module-1", Type: "quiz", Title: "Two", Completed: true},
	}}
	svc := NewActivityService(store)

	got, err := svc.GetModuleActivities(context.Background(), "module-1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "https://x", got[0].URL)
	assert.True(t, got[1].Completed)
}

func TestGetModuleActivities_EmptyNotNil(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})

	got, err := svc.GetModuleActivities(context.Background(), "module-1")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetModuleActivities_StoreError(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{failAll: true})

	_, err := svc.GetModuleActivities(context.Background(), "module-1")

	assert.Error(t, err)
}

func TestDeleteActivity(t *testing.T) {
	store := &fakeActivityStore{rows: []database.Activity{
		{ID: "a1", ModuleID: "module-1", Type: "pdf", Title: "One"},
	}}
	svc := NewActivityService(store)

	deleted, err := svc.DeleteActivity(context.Background(), models.DeleteActivityInput{ID: "a1", ModuleID: "module-1"})
	require.NoError(t, err)
	assert.True(t, deleted)

	// second delete finds nothing
	deleted, err = svc.DeleteActivity(context.Background(), models.DeleteActivityInput{ID: "a1", ModuleID: "module-1"})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteActivity_Validation(t *testing.T) {
	svc := NewActivityService(&fakeActivityStore{})

	_, err := svc.DeleteActivity(context.Background(), models.DeleteActivityInput{ID: "a1"})
	assert.Error(t, err)
}

func TestCountActivities(t *testing.T) {
	store := &fakeActivityStore{rows: []database.Activity{
		{ID: "a1", ModuleID: "m1"}, {ID: "a2", ModuleID: "m2"},
	}}
	svc := NewActivityService(store)

	n, err := svc.CountActivities(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
