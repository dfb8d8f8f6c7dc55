package types

import "strings"

// Contact is a person or company attached to a project. The customer of a
// project is also a Contact.
type Contact struct {
	ID        EntityID `json:"id"`
	IsNew     bool     `json:"is_new"`
	Role      string   `json:"role,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Company   string   `json:"company,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// Name returns "First Last", falling back to the company.
func (c Contact) Name() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Company
	}
	return name
}

// IsZero reports whether no contact data has been entered.
func (c Contact) IsZero() bool {
	return c.FirstName == "" && c.LastName == "" && c.Company == "" && c.Email == "" && c.Phone == ""
}

// SaveProjectContactRequest is the body of POST /save-project-contact.
type SaveProjectContactRequest struct {
	ProjectID ProjectID `json:"project_id"`
	Contact   Contact   `json:"contact"`
}
