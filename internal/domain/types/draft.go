package types

// Furnishing date keys sent in DeadlineRequest.FurnishingDates.
const (
	FirstFurnishingKey = "first_furnishing_date"
	LastFurnishingKey  = "last_furnishing_date"
)

// PendingFile is a local file staged for upload. Only its path and
// metadata are kept; the contents are read at upload time.
type PendingFile struct {
	ID   EntityID `json:"id"`
	Name string   `json:"name"`
	Path string   `json:"path"`
	Size int64    `json:"size"`
}

// UploadSection is the Upload step's slice of the draft.
type UploadSection struct {
	Files []PendingFile `json:"files,omitempty"`
}

// DetailsSection is the Details step's slice of the draft.
type DetailsSection struct {
	ProjectName    string `json:"project_name"`
	JobNumber      string `json:"job_number,omitempty"`
	CountryID      string `json:"country_id"`
	StateID        string `json:"state_id"`
	ProjectTypeID  string `json:"project_type_id"`
	RoleID         string `json:"role_id"`
	CustomerTypeID string `json:"customer_type_id"`
}

// DatesSection is the Dates step's slice of the draft.
type DatesSection struct {
	StartDate           Date              `json:"start_date"`
	EndDate             Date              `json:"end_date"`
	EndDateEstimated    bool              `json:"end_date_estimated,omitempty"`
	FirstFurnishingDate Date              `json:"first_furnishing_date"`
	LastFurnishingDate  Date              `json:"last_furnishing_date"`
	RemedyDates         map[string]Date   `json:"remedy_dates,omitempty"`
	RemedyFields        []RemedyDateField `json:"remedy_fields,omitempty"`
}

// FurnishingDates returns every set furnishing/remedy date keyed for the
// deadline calculation.
func (s DatesSection) FurnishingDates() map[string]Date {
	out := make(map[string]Date, len(s.RemedyDates)+2)
	for k, v := range s.RemedyDates {
		if !v.IsZero() {
			out[k] = v
		}
	}
	if !s.FirstFurnishingDate.IsZero() {
		out[FirstFurnishingKey] = s.FirstFurnishingDate
	}
	if !s.LastFurnishingDate.IsZero() {
		out[LastFurnishingKey] = s.LastFurnishingDate
	}
	return out
}

// DescriptionSection is the Description step's slice of the draft.
type DescriptionSection struct {
	JobAddress  string `json:"job_address"`
	City        string `json:"city"`
	County      string `json:"county,omitempty"`
	Zip         string `json:"zip,omitempty"`
	Description string `json:"description,omitempty"`
}

// ContractSection is the Contract step's slice of the draft. Revised cost
// and unpaid balance are derived, never stored.
type ContractSection struct {
	BaseAmount       Money `json:"base_amount"`
	AdditionalAmount Money `json:"additional_amount"`
	PaymentsReceived Money `json:"payments_received"`
	ContractDate     Date  `json:"contract_date"`
}

// RevisedCost is base + additional.
func (c ContractSection) RevisedCost() Money { return c.BaseAmount + c.AdditionalAmount }

// UnpaidBalance is revised cost − payments received.
func (c ContractSection) UnpaidBalance() Money { return c.RevisedCost() - c.PaymentsReceived }

// ContactsSection is the Contacts step's slice of the draft.
type ContactsSection struct {
	Customer          Contact    `json:"customer"`
	Contacts          []Contact  `json:"contacts,omitempty"`
	RemovedContactIDs []EntityID `json:"removed_contact_ids,omitempty"`
}

// DocumentsSection is the Documents step's slice of the draft.
type DocumentsSection struct {
	Documents          []Document `json:"documents,omitempty"`
	RemovedDocumentIDs []EntityID `json:"removed_document_ids,omitempty"`
}

// DeadlinesSection caches the last deadline list fetched for the draft.
type DeadlinesSection struct {
	Items     []Deadline `json:"items,omitempty"`
	FetchedOn Date       `json:"fetched_on"`
}

// TasksSection is the Tasks step's slice of the draft.
type TasksSection struct {
	Tasks          []Task     `json:"tasks,omitempty"`
	RemovedTaskIDs []EntityID `json:"removed_task_ids,omitempty"`
}

// SignatureSection is the Info Sheet step's slice of the draft.
type SignatureSection struct {
	SignerName  string `json:"signer_name"`
	SignerTitle string `json:"signer_title,omitempty"`
	SignedOn    Date   `json:"signed_on"`
	Accepted    bool   `json:"accepted"`
}

// Draft is the in-progress project assembled across wizard steps. Each
// step owns one section; sections of unvisited steps hold zero values.
type Draft struct {
	ProjectID     ProjectID `json:"project_id,omitempty"`
	ServerDraftID string    `json:"server_draft_id,omitempty"`

	Upload      UploadSection      `json:"upload"`
	Details     DetailsSection     `json:"details"`
	Dates       DatesSection       `json:"dates"`
	Description DescriptionSection `json:"description"`
	Contract    ContractSection    `json:"contract"`
	Contacts    ContactsSection    `json:"contacts"`
	Documents   DocumentsSection   `json:"documents"`
	Deadlines   DeadlinesSection   `json:"deadlines"`
	Tasks       TasksSection       `json:"tasks"`
	Signature   SignatureSection   `json:"signature"`
}

// Patch is a top-level partial update of a Draft. Nil sections are left
// untouched by Apply.
type Patch struct {
	ServerDraftID *string

	Upload      *UploadSection
	Details     *DetailsSection
	Dates       *DatesSection
	Description *DescriptionSection
	Contract    *ContractSection
	Contacts    *ContactsSection
	Documents   *DocumentsSection
	Deadlines   *DeadlinesSection
	Tasks       *TasksSection
	Signature   *SignatureSection
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.ServerDraftID == nil && p.Upload == nil && p.Details == nil && p.Dates == nil &&
		p.Description == nil && p.Contract == nil && p.Contacts == nil && p.Documents == nil &&
		p.Deadlines == nil && p.Tasks == nil && p.Signature == nil
}

// Apply returns d with every non-nil section of p replacing the
// corresponding section (shallow merge at the top level).
func (d Draft) Apply(p Patch) Draft {
	if p.ServerDraftID != nil {
		d.ServerDraftID = *p.ServerDraftID
	}
	if p.Upload != nil {
		d.Upload = *p.Upload
	}
	if p.Details != nil {
		d.Details = *p.Details
	}
	if p.Dates != nil {
		d.Dates = *p.Dates
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Contract != nil {
		d.Contract = *p.Contract
	}
	if p.Contacts != nil {
		d.Contacts = *p.Contacts
	}
	if p.Documents != nil {
		d.Documents = *p.Documents
	}
	if p.Deadlines != nil {
		d.Deadlines = *p.Deadlines
	}
	if p.Tasks != nil {
		d.Tasks = *p.Tasks
	}
	if p.Signature != nil {
		d.Signature = *p.Signature
	}
	return d
}

// DeadlineRequest builds the deadline calculation request from the draft.
func (d Draft) DeadlineRequest() DeadlineRequest {
	return DeadlineRequest{
		State:           d.Details.StateID,
		ProjectType:     d.Details.ProjectTypeID,
		Role:            d.Details.RoleID,
		CustomerType:    d.Details.CustomerTypeID,
		FurnishingDates: d.Dates.FurnishingDates(),
	}
}

// RemedyDatesRequest builds the remedy-date schedule request from the draft.
func (d Draft) RemedyDatesRequest() RemedyDatesRequest {
	return RemedyDatesRequest{
		State:        d.Details.StateID,
		ProjectType:  d.Details.ProjectTypeID,
		Role:         d.Details.RoleID,
		CustomerType: d.Details.CustomerTypeID,
	}
}

// Snapshot is what the draft store persists: the draft, the current step
// and the highest step reached.
type Snapshot struct {
	Data    Draft `json:"data"`
	Step    Step  `json:"step"`
	MaxStep Step  `json:"max_step,omitempty"`
}

// Normalize clamps Step into range and defaults MaxStep to Step.
func (s Snapshot) Normalize() Snapshot {
	if !s.Step.Valid() {
		s.Step = FirstStep
	}
	if !s.MaxStep.Valid() || s.MaxStep < s.Step {
		s.MaxStep = s.Step
	}
	return s
}

// SaveStepRequest is the body of POST /projects/wizard/save-step.
type SaveStepRequest struct {
	DraftID string `json:"draft_id,omitempty"`
	Step    Step   `json:"step"`
	Data    Draft  `json:"data"`
}

// SaveStepResponse is the reply of POST /projects/wizard/save-step.
type SaveStepResponse struct {
	DraftID string `json:"draft_id"`
}
