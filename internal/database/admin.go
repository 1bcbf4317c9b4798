package database

import (
	"context"
)

const factoryReset = `
TRUNCATE activity_completions, sessions, activities, modules, students
`

// FactoryResetDatabase wipes all application data in one statement
func (q *Queries) FactoryResetDatabase(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, factoryReset)
	return err
}
