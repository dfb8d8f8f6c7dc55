package types

import "github.com/google/uuid"

// ProjectID identifies a project persisted by the backend.
type ProjectID string

// String returns the string form of the project identifier.
func (id ProjectID) String() string { return string(id) }

// EntityID identifies a contact, document or task. New entities carry a
// client-generated UUID until the backend assigns its own identifier.
type EntityID string

// String returns the string form of the entity identifier.
func (id EntityID) String() string { return string(id) }

// NewEntityID returns a fresh client-generated identifier.
func NewEntityID() EntityID { return EntityID(uuid.NewString()) }

// DraftKey is the fixed key under which the wizard snapshot is stored.
const DraftKey = "liendesk.wizard.draft"

// MaxUploadBytes is the client-side upload limit (10 MB).
const MaxUploadBytes int64 = 10 * 1024 * 1024

// Option is a master-data entry (country, state, project type, role,
// customer type, task action) as served by the backend.
type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
