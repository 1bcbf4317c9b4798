package models

import (
	"github.com/go-playground/validator/v10"
)

// Activity types we know how to render - closed set
const (
	ActivityTypePDF     = "pdf"
	ActivityTypeWord    = "word"
	ActivityTypeYoutube = "youtube"
	ActivityTypeLink    = "link"
	ActivityTypeImage   = "image"
	ActivityTypeQuiz    = "quiz"
	ActivityTypeFile    = "file"
)

// Activity is a single piece of content or task within a module.
// IDs are opaque strings - server-issued or client-generated as
// activity_<timestamp> - and must round-trip untouched.
type Activity struct {
	ID       string `json:"id"`                 // unique within the module's list
	ModuleID string `json:"moduleId,omitempty"` // which module this belongs to

	Type        string `json:"type"`                  // pdf, youtube, quiz, etc.
	Title       string `json:"title"`                 // display name
	Description string `json:"description,omitempty"` // what this activity is about
	URL         string `json:"url,omitempty"`         // content link, empty for quiz drafts

	Completed bool `json:"completed"` // monotonic - once true, never back to false

	// IsNew drives the "Ny" badge on the client. Never persisted server-side.
	IsNew bool `json:"isNew,omitempty"`
}

// StoreActivityInput is what we expect on POST /api/store-activity
type StoreActivityInput struct {
	ID          string `json:"id" validate:"required"`
	ModuleID    string `json:"moduleId" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=pdf word youtube link image quiz file"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty" validate:"required_unless=Type quiz"`
	Completed   bool   `json:"completed"`

	// accepted from clients but intentionally dropped before storage
	IsNew bool `json:"isNew,omitempty"`
}

// DeleteActivityInput is what we expect on POST /api/delete-activity
type DeleteActivityInput struct {
	ID       string `json:"id" validate:"required"`
	ModuleID string `json:"moduleId" validate:"required"`
}

// shared validator instance - handlers/services call ValidateInput on
// request structs before touching any state
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateInput checks struct validation tags and returns the first
// violation found, nil when the input is fine
func ValidateInput(input interface{}) error {
	return validate.Struct(input)
}
