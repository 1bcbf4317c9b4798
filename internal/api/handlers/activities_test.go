package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edulab/learning-platform-backend/internal/database"
	"github.com/edulab/learning-platform-backend/internal/models"
	"github.com/edulab/learning-platform-backend/internal/services"
)

// in-memory query layer backing the real services in handler tests
type memActivityStore struct {
	rows []database.Activity
}

func (m *memActivityStore) ListActivitiesByModule(_ context.Context, moduleID string) ([]database.Activity, error) {
	out := []database.Activity{}
	for _, row := range m.rows {
		if row.ModuleID == moduleID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memActivityStore) ListAllActivities(_ context.Context) ([]database.Activity, error) {
	return m.rows, nil
}

func (m *memActivityStore) UpsertActivity(_ context.Context, arg database.UpsertActivityParams) (database.Activity, error) {
	for i, row := range m.rows {
		if row.ID == arg.ID && row.ModuleID == arg.ModuleID {
			m.rows[i].Type = arg.Type
			m.rows[i].Title = arg.Title
			m.rows[i].Description = arg.Description
			m.rows[i].Url = arg.Url
			m.rows[i].Completed = row.Completed || arg.Completed
			return m.rows[i], nil
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
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memActivityStore) DeleteActivity(_ context.Context, arg database.DeleteActivityParams) (int64, error) {
	for i, row := range m.rows {
		if row.ID == arg.ID && row.ModuleID == arg.ModuleID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newActivityHandler(store *memActivityStore) *ActivityHandler {
	return NewActivityHandler(services.NewActivityService(store))
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestGetModuleActivities(t *testing.T) {
	store := &memActivityStore{rows: []database.Activity{
		{ID: "a1", ModuleID: "module-1", Type: "pdf", Title: "Ørneflugt"},
		{ID: "b1", ModuleID: "module-2", Type: "link", Title: "Elsewhere"},
	}}
	h := newActivityHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/module-activities/module-1", nil)
	rec := httptest.NewRecorder()
	h.GetModuleActivities(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ModuleActivitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "a1", resp.Activities[0].ID)
}

func TestGetModuleActivities_UnknownModuleIsEmptySuccess(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/module-activities/ghost", nil)
	rec := httptest.NewRecorder()
	h.GetModuleActivities(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ModuleActivitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Activities)
	assert.Empty(t, resp.Activities)
}

func TestGetModuleActivities_MissingID(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/module-activities/", nil)
	rec := httptest.NewRecorder()
	h.GetModuleActivities(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreActivity(t *testing.T) {
	store := &memActivityStore{}
	h := newActivityHandler(store)

	rec := postJSON(t, h.StoreActivity, "/api/store-activity", models.StoreActivityInput{
		ID:       "activity_1724746800000",
		ModuleID: "module-1",
		Type:     "link",
		Title:    "Ny aktivitet",
		URL:      "https://example.com",
		IsNew:    true,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp StoreActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "activity_1724746800000", resp.ActivityID)
	require.Len(t, store.rows, 1)
}

func TestStoreActivity_MissingModuleID(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	rec := postJSON(t, h.StoreActivity, "/api/store-activity", models.StoreActivityInput{
		ID: "a1", Type: "pdf", Title: "t", URL: "https://x",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestStoreActivity_InvalidType(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	rec := postJSON(t, h.StoreActivity, "/api/store-activity", models.StoreActivityInput{
		ID: "a1", ModuleID: "module-1", Type: "vhs", Title: "t", URL: "https://x",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreActivity_BadBody(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/store-activity", bytes.NewReader([]byte("{nope")))
	rec := httptest.NewRecorder()
	h.StoreActivity(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreActivity_ReUploadKeepsCompletion(t *testing.T) {
	store := &memActivityStore{}
	h := newActivityHandler(store)

	first := models.StoreActivityInput{
		ID: "a1", ModuleID: "module-1", Type: "pdf", Title: "t", URL: "https://x", Completed: true,
	}
	postJSON(t, h.StoreActivity, "/api/store-activity", first)

	second := first
	second.Completed = false
	rec := postJSON(t, h.StoreActivity, "/api/store-activity", second)

	var resp StoreActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Completed)
}

func TestDeleteActivity(t *testing.T) {
	store := &memActivityStore{rows: []database.Activity{
		{ID: "a1", ModuleID: "module-1", Type: "pdf", Title: "t"},
	}}
	h := newActivityHandler(store)

	rec := postJSON(t, h.DeleteActivity, "/api/delete-activity", models.DeleteActivityInput{
		ID: "a1", ModuleID: "module-1",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp DeleteActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Deleted)
	assert.Empty(t, store.rows)

	// deleting again succeeds but reports deleted=false
	rec = postJSON(t, h.DeleteActivity, "/api/delete-activity", models.DeleteActivityInput{
		ID: "a1", ModuleID: "module-1",
	})
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Deleted)
}

func TestDeleteActivity_MissingFields(t *testing.T) {
	h := newActivityHandler(&memActivityStore{})

	rec := postJSON(t, h.DeleteActivity, "/api/delete-activity", models.DeleteActivityInput{ID: "a1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
