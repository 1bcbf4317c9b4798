// Package activityclient is the thin HTTP client the sync layer uses to
// talk to the activity store. Fetch failures degrade to empty results -
// the reconciler treats "failed" and "empty" identically, so callers
// never need to branch on transport errors.
package activityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/edulab/learning-platform-backend/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client wraps the activity store HTTP API
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL ("http://host:8080").
// A zero timeout gets the default - fetches should never hang on the
// browser-default forever.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type fetchActivitiesResponse struct {
	Success    bool              `json:"success"`
	Activities []models.Activity `json:"activities"`
}

// FetchModuleActivities returns the server-stored activities for one
// module. Any failure - network, non-2xx, bad JSON - is logged and
// comes back as an empty list so the merge degrades to a no-op.
func (c *Client) FetchModuleActivities(ctx context.Context, moduleID string) []models.Activity {
	url := fmt.Sprintf("%s/api/module-activities/%s", c.baseURL, moduleID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Error building activities request for module %s: %v", moduleID, err)
		return []models.Activity{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Error fetching activities for module %s: %v", moduleID, err)
		return []models.Activity{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Fetching activities for module %s returned status %d", moduleID, resp.StatusCode)
		return []models.Activity{}
	}

	var data fetchActivitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Error decoding activities for module %s: %v", moduleID, err)
		return []models.Activity{}
	}
	if !data.Success || data.Activities == nil {
		return []models.Activity{}
	}

	return data.Activities
}

// StoreActivity pushes one activity to the server. Fire-and-forget:
// the optimistic local update already happened, a failed sync only gets
// logged and the next reconciliation catches up.
func (c *Client) StoreActivity(ctx context.Context, activity models.Activity) {
	if err := c.postJSON(ctx, "/api/store-activity", activity, nil); err != nil {
		log.Printf("Error storing activity %s: %v", activity.ID, err)
	}
}

type completionRequest struct {
	ActivityID string   `json:"activityId"`
	ModuleID   string   `json:"moduleId"`
	StudentID  string   `json:"studentId,omitempty"`
	QuizScore  *float64 `json:"quizScore,omitempty"`
}

// RecordCompletion tells the server a student finished an activity.
// The server ignores duplicates, so callers just fire it on every
// completion click without pre-checking.
func (c *Client) RecordCompletion(ctx context.Context, studentID, activityID, moduleID string, quizScore *float64) error {
	body := completionRequest{
		ActivityID: activityID,
		ModuleID:   moduleID,
		StudentID:  studentID,
		QuizScore:  quizScore,
	}
	return c.postJSON(ctx, "/api/complete-activity", body, nil)
}

type deleteActivityRequest struct {
	ID       string `json:"id"`
	ModuleID string `json:"moduleId"`
}

// DeleteActivity removes a previously synced activity server-side
func (c *Client) DeleteActivity(ctx context.Context, activityID, moduleID string) error {
	body := deleteActivityRequest{ID: activityID, ModuleID: moduleID}
	return c.postJSON(ctx, "/api/delete-activity", body, nil)
}

type completionsDumpResponse struct {
	Completions []models.CompletionRecord `json:"completions"`
}

// FetchCompletions pulls the full completion record dump - the fallback
// data source for per-student progress views. Empty on any failure.
func (c *Client) FetchCompletions(ctx context.Context) []models.CompletionRecord {
	url := c.baseURL + "/api/database/activity_completions.json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Error building completions request: %v", err)
		return []models.CompletionRecord{}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("Error fetching completions: %v", err)
		return []models.CompletionRecord{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Fetching completions returned status %d", resp.StatusCode)
		return []models.CompletionRecord{}
	}

	var data completionsDumpResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		log.Printf("Error decoding completions: %v", err)
		return []models.CompletionRecord{}
	}
	if data.Completions == nil {
		return []models.CompletionRecord{}
	}

	return data.Completions
}

// postJSON sends a JSON body and optionally decodes the response into out
func (c *Client) postJSON(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
