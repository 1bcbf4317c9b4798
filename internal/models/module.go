package models

import (
	"database/sql"
)

// Module represents a unit of course content ("forløb") holding an
// ordered list of activities
type Module struct {
	ID string `json:"id"` // opaque stable identifier, never regenerated

	Title       string `json:"title"`                 // module name
	Date        string `json:"date,omitempty"`        // display date, free text ("ti 27/8")
	Subtitle    string `json:"subtitle,omitempty"`    // secondary heading
	Description string `json:"description,omitempty"` // what this module covers

	Activities []Activity `json:"activities"` // display order

	// timestamps - only set on server-fetched modules
	CreatedAt sql.NullTime `json:"created_at,omitempty"`
	UpdatedAt sql.NullTime `json:"updated_at,omitempty"`
}

// CreateModuleInput is what we expect when creating a new module
type CreateModuleInput struct {
	ID          string `json:"id,omitempty"` // optional, generated when empty
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

// UpdateModuleInput is what we expect when updating module metadata
type UpdateModuleInput struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date,omitempty"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description,omitempty"`
}

// ImportModuleInput carries a module plus nested activities for batch import
type ImportModuleInput struct {
	ID          string               `json:"id,omitempty"`
	Title       string               `json:"title"`
	Date        string               `json:"date,omitempty"`
	Subtitle    string               `json:"subtitle,omitempty"`
	Description string               `json:"description,omitempty"`
	Activities  []StoreActivityInput `json:"activities,omitempty"`
}
