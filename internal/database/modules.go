package database

import (
	"context"
	"database/sql"
)

const listModules = `
SELECT id, title, date, subtitle, description, created_at, updated_at
FROM modules
ORDER BY created_at, id
`

// ListModules returns all modules in creation order
func (q *Queries) ListModules(ctx context.Context) ([]Module, error) {
	rows, err := q.db.QueryContext(ctx, listModules)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []Module
	for rows.Next() {
		var m Module
		if err := rows.Scan(&m.ID, &m.Title, &m.Date, &m.Subtitle, &m.Description, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

const getModule = `
SELECT id, title, date, subtitle, description, created_at, updated_at
FROM modules
WHERE id = $1
`

// GetModule fetches a single module by id
func (q *Queries) GetModule(ctx context.Context, id string) (Module, error) {
	var m Module
	err := q.db.QueryRowContext(ctx, getModule, id).
		Scan(&m.ID, &m.Title, &m.Date, &m.Subtitle, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const createModule = `
INSERT INTO modules (id, title, date, subtitle, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, title, date, subtitle, description, created_at, updated_at
`

type CreateModuleParams struct {
	ID          string
	Title       string
	Date        string
	Subtitle    sql.NullString
	Description sql.NullString
}

// CreateModule inserts a new module record
func (q *Queries) CreateModule(ctx context.Context, arg CreateModuleParams) (Module, error) {
	var m Module
	err := q.db.QueryRowContext(ctx, createModule,
		arg.ID, arg.Title, arg.Date, arg.Subtitle, arg.Description).
		Scan(&m.ID, &m.Title, &m.Date, &m.Subtitle, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const updateModule = `
UPDATE modules
SET title = $2, date = $3, subtitle = $4, description = $5, updated_at = now()
WHERE id = $1
RETURNING id, title, date, subtitle, description, created_at, updated_at
`

type UpdateModuleParams struct {
	ID          string
	Title       string
	Date        string
	Subtitle    sql.NullString
	Description sql.NullString
}

// UpdateModule rewrites module metadata, the id never changes
func (q *Queries) UpdateModule(ctx context.Context, arg UpdateModuleParams) (Module, error) {
	var m Module
	err := q.db.QueryRowContext(ctx, updateModule,
		arg.ID, arg.Title, arg.Date, arg.Subtitle, arg.Description).
		Scan(&m.ID, &m.Title, &m.Date, &m.Subtitle, &m.Description, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const deleteModule = `
DELETE FROM modules WHERE id = $1
`

// DeleteModule removes a module, activities cascade via foreign key
func (q *Queries) DeleteModule(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteModule, id)
	return err
}
