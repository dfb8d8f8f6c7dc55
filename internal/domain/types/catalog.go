package types

// StatesRequest is the body of POST /states.
type StatesRequest struct {
	CountryID string `json:"country_id"`
}

// RoleCustomersRequest is the body of POST /check-project-roles-customers.
type RoleCustomersRequest struct {
	RoleID        string `json:"role_id"`
	ProjectTypeID string `json:"project_type_id,omitempty"`
}

// Catalog bundles the master data needed by the Details step.
type Catalog struct {
	Countries     []Option `json:"countries"`
	States        []Option `json:"states,omitempty"`
	ProjectTypes  []Option `json:"project_types"`
	Roles         []Option `json:"roles"`
	CustomerTypes []Option `json:"customer_types,omitempty"`
}

// NameOf returns the name of the option with id, or id itself.
func NameOf(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Name
		}
	}
	return id
}
