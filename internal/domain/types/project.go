package types

// ContractTotals is the contract as sent to the backend, with the derived
// amounts filled in.
type ContractTotals struct {
	ContractSection
	RevisedCost   Money `json:"revised_cost"`
	UnpaidBalance Money `json:"unpaid_balance"`
}

// NewContractTotals derives the totals of c.
func NewContractTotals(c ContractSection) ContractTotals {
	return ContractTotals{
		ContractSection: c,
		RevisedCost:     c.RevisedCost(),
		UnpaidBalance:   c.UnpaidBalance(),
	}
}

// Project is a persisted lien project as exchanged with the backend. It is
// the body of POST /save-project and the reply of GET /projects/info.
type Project struct {
	ID          ProjectID          `json:"id,omitempty"`
	CustomerID  EntityID           `json:"customer_id,omitempty"`
	Details     DetailsSection     `json:"details"`
	Dates       DatesSection       `json:"dates"`
	Description DescriptionSection `json:"description"`
	Contract    ContractTotals     `json:"contract"`
	Signature   SignatureSection   `json:"signature"`

	Customer  *Contact   `json:"customer,omitempty"`
	Contacts  []Contact  `json:"contacts,omitempty"`
	Documents []Document `json:"documents,omitempty"`
	Tasks     []Task     `json:"tasks,omitempty"`
}

// ProjectFromDraft converts a finished draft into the save-project payload.
// Sub-entities are saved through their own endpoints and are left out.
func ProjectFromDraft(d Draft) Project {
	return Project{
		ID:          d.ProjectID,
		CustomerID:  d.Contacts.Customer.ID,
		Details:     d.Details,
		Dates:       d.Dates,
		Description: d.Description,
		Contract:    NewContractTotals(d.Contract),
		Signature:   d.Signature,
	}
}

// Draft hydrates a wizard draft from a persisted project so it can be
// edited. Every sub-entity is marked as already persisted.
func (p Project) Draft() Draft {
	d := Draft{
		ProjectID:   p.ID,
		Details:     p.Details,
		Dates:       p.Dates,
		Description: p.Description,
		Contract:    p.Contract.ContractSection,
		Signature:   p.Signature,
	}
	if p.Customer != nil {
		d.Contacts.Customer = *p.Customer
		d.Contacts.Customer.IsNew = false
	}
	for _, c := range p.Contacts {
		c.IsNew = false
		d.Contacts.Contacts = append(d.Contacts.Contacts, c)
	}
	for _, doc := range p.Documents {
		doc.IsNew = false
		d.Documents.Documents = append(d.Documents.Documents, doc)
	}
	for _, t := range p.Tasks {
		t.IsNew = false
		d.Tasks.Tasks = append(d.Tasks.Tasks, t)
	}
	return d
}

// ProjectSummary is one entry of the user's active project list.
type ProjectSummary struct {
	ID   ProjectID `json:"id"`
	Name string    `json:"name"`
}
