package database

import (
	"context"
	"database/sql"
)

const listActivitiesByModule = `
SELECT id, module_id, type, title, description, url, completed, created_at, updated_at
FROM activities
WHERE module_id = $1
ORDER BY created_at, id
`

// ListActivitiesByModule returns a module's activities in insertion order
func (q *Queries) ListActivitiesByModule(ctx context.Context, moduleID string) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, listActivitiesByModule, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.ModuleID, &a.Type, &a.Title, &a.Description, &a.Url, &a.Completed, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

const listAllActivities = `
SELECT id, module_id, type, title, description, url, completed, created_at, updated_at
FROM activities
ORDER BY module_id, created_at, id
`

// ListAllActivities returns every stored activity across all modules
func (q *Queries) ListAllActivities(ctx context.Context) ([]Activity, error) {
	rows, err := q.db.QueryContext(ctx, listAllActivities)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.ModuleID, &a.Type, &a.Title, &a.Description, &a.Url, &a.Completed, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

const upsertActivity = `
INSERT INTO activities (id, module_id, type, title, description, url, completed)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id, module_id) DO UPDATE SET
    type        = EXCLUDED.type,
    title       = EXCLUDED.title,
    description = EXCLUDED.description,
    url         = EXCLUDED.url,
    completed   = activities.completed OR EXCLUDED.completed,
    updated_at  = now()
RETURNING id, module_id, type, title, description, url, completed, created_at, updated_at
`

type UpsertActivityParams struct {
	ID          string
	ModuleID    string
	Type        string
	Title       string
	Description sql.NullString
	Url         sql.NullString
	Completed   bool
}

// UpsertActivity inserts or updates by (id, module_id). The OR on
// completed keeps completion monotonic: a stale payload with
// completed=false never downgrades a stored true.
func (q *Queries) UpsertActivity(ctx context.Context, arg UpsertActivityParams) (Activity, error) {
	var a Activity
	err := q.db.QueryRowContext(ctx, upsertActivity,
		arg.ID, arg.ModuleID, arg.Type, arg.Title, arg.Description, arg.Url, arg.Completed).
		Scan(&a.ID, &a.ModuleID, &a.Type, &a.Title, &a.Description, &a.Url, &a.Completed, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

const deleteActivity = `
DELETE FROM activities WHERE id = $1 AND module_id = $2
`

type DeleteActivityParams struct {
	ID       string
	ModuleID string
}

// DeleteActivity removes one activity, returning how many rows went away
func (q *Queries) DeleteActivity(ctx context.Context, arg DeleteActivityParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteActivity, arg.ID, arg.ModuleID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
