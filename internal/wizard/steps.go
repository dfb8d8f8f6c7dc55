package wizard

import (
	"fmt"
	"strconv"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

var (
	detailsSec = section[domain.DetailsSection]{
		get:   func(d domain.Draft) domain.DetailsSection { return d.Details },
		patch: func(s domain.DetailsSection) domain.Patch { return domain.Patch{Details: &s} },
	}
	datesSec = section[domain.DatesSection]{
		get:   func(d domain.Draft) domain.DatesSection { return d.Dates },
		patch: func(s domain.DatesSection) domain.Patch { return domain.Patch{Dates: &s} },
	}
	descriptionSec = section[domain.DescriptionSection]{
		get:   func(d domain.Draft) domain.DescriptionSection { return d.Description },
		patch: func(s domain.DescriptionSection) domain.Patch { return domain.Patch{Description: &s} },
	}
	contractSec = section[domain.ContractSection]{
		get:   func(d domain.Draft) domain.ContractSection { return d.Contract },
		patch: func(s domain.ContractSection) domain.Patch { return domain.Patch{Contract: &s} },
	}
	contactsSec = section[domain.ContactsSection]{
		get:   func(d domain.Draft) domain.ContactsSection { return d.Contacts },
		patch: func(s domain.ContactsSection) domain.Patch { return domain.Patch{Contacts: &s} },
	}
	signatureSec = section[domain.SignatureSection]{
		get:   func(d domain.Draft) domain.SignatureSection { return d.Signature },
		patch: func(s domain.SignatureSection) domain.Patch { return domain.Patch{Signature: &s} },
	}
)

// -----------------------------------------------------------------------------
// 1. Upload
// -----------------------------------------------------------------------------

type uploadUnit struct{}

func (uploadUnit) Step() domain.Step           { return domain.StepUpload }
func (uploadUnit) Title() string               { return "Upload contract documents" }
func (uploadUnit) Fields(domain.Draft) []Field { return nil }
func (uploadUnit) Validate(d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	for _, f := range d.Upload.Files {
		if f.Size > domain.MaxUploadBytes {
			fe.Add("files", (&errors.FileTooLargeError{Name: f.Name, Size: f.Size, Limit: domain.MaxUploadBytes}).Error())
		}
	}
	return fe
}

// -----------------------------------------------------------------------------
// 2. Details
// -----------------------------------------------------------------------------

type detailsUnit struct{}

func (detailsUnit) Step() domain.Step { return domain.StepDetails }
func (detailsUnit) Title() string     { return "Project details" }

func (detailsUnit) Fields(domain.Draft) []Field {
	return []Field{
		textField(detailsSec, "project_name", "Project name", true, func(s *domain.DetailsSection) *string { return &s.ProjectName }),
		textField(detailsSec, "job_number", "Job number", false, func(s *domain.DetailsSection) *string { return &s.JobNumber }),
		textField(detailsSec, "country", "Country", true, func(s *domain.DetailsSection) *string { return &s.CountryID }, clearState),
		textField(detailsSec, "state", "State", true, func(s *domain.DetailsSection) *string { return &s.StateID }),
		textField(detailsSec, "project_type", "Project type", true, func(s *domain.DetailsSection) *string { return &s.ProjectTypeID }),
		textField(detailsSec, "role", "Your role", true, func(s *domain.DetailsSection) *string { return &s.RoleID }, clearCustomerType),
		textField(detailsSec, "customer_type", "Customer type", true, func(s *domain.DetailsSection) *string { return &s.CustomerTypeID }),
	}
}

// The state list depends on the country and the customer type list on the
// role, so changing the parent resets the child selection.
func clearState(s *domain.DetailsSection)        { s.StateID = "" }
func clearCustomerType(s *domain.DetailsSection) { s.CustomerTypeID = "" }

func (u detailsUnit) Validate(d domain.Draft) errors.FieldErrors {
	return requireFields(u.Fields(d), d)
}

// -----------------------------------------------------------------------------
// 3. Dates
// -----------------------------------------------------------------------------

// MinEstimatedContractDays is the shortest estimated contract span.
const MinEstimatedContractDays = 90

// EstimateEndDate estimates the project end date from the start date and
// the first furnishing date: start + max(2 × gap, 90) days, where gap is
// the number of days from start to first furnishing.
func EstimateEndDate(start, firstFurnishing domain.Date) domain.Date {
	span := 2 * start.DaysUntil(firstFurnishing)
	if span < MinEstimatedContractDays {
		span = MinEstimatedContractDays
	}
	return start.AddDays(span)
}

// applyEstimate fills an unset end date once both inputs are known. An end
// date that already has a value is never recomputed.
func applyEstimate(s *domain.DatesSection) {
	if s.StartDate.IsZero() || s.FirstFurnishingDate.IsZero() || !s.EndDate.IsZero() {
		return
	}
	s.EndDate = EstimateEndDate(s.StartDate, s.FirstFurnishingDate)
	s.EndDateEstimated = true
}

func markEndDateEntered(s *domain.DatesSection) { s.EndDateEstimated = false }

type datesUnit struct{}

func (datesUnit) Step() domain.Step { return domain.StepDates }
func (datesUnit) Title() string     { return "Project dates" }

func (datesUnit) Fields(d domain.Draft) []Field {
	fields := []Field{
		dateField(datesSec, "start_date", "Start date", true, func(s *domain.DatesSection) *domain.Date { return &s.StartDate }, applyEstimate),
		dateField(datesSec, domain.FirstFurnishingKey, "First furnishing date", true, func(s *domain.DatesSection) *domain.Date { return &s.FirstFurnishingDate }, applyEstimate),
		dateField(datesSec, "end_date", "End date", false, func(s *domain.DatesSection) *domain.Date { return &s.EndDate }, markEndDateEntered),
		dateField(datesSec, domain.LastFurnishingKey, "Last furnishing date", false, func(s *domain.DatesSection) *domain.Date { return &s.LastFurnishingDate }),
	}
	for _, rf := range d.Dates.RemedyFields {
		if rf.ID == domain.FirstFurnishingKey || rf.ID == domain.LastFurnishingKey {
			continue
		}
		fields = append(fields, remedyDateField(rf))
	}
	return fields
}

func remedyDateField(rf domain.RemedyDateField) Field {
	id := rf.ID
	return Field{
		Key: id, Label: rf.Label, Required: rf.Required,
		Get: func(d domain.Draft) string { return d.Dates.RemedyDates[id].String() },
		Set: func(d domain.Draft, raw string) (domain.Patch, error) {
			v, err := domain.ParseDate(raw)
			if err != nil {
				return domain.Patch{}, err
			}
			s := d.Dates
			dates := make(map[string]domain.Date, len(s.RemedyDates)+1)
			for k, old := range s.RemedyDates {
				dates[k] = old
			}
			if v.IsZero() {
				delete(dates, id)
			} else {
				dates[id] = v
			}
			s.RemedyDates = dates
			return domain.Patch{Dates: &s}, nil
		},
	}
}

func (u datesUnit) Validate(d domain.Draft) errors.FieldErrors {
	fe := requireFields(u.Fields(d), d)
	s := d.Dates
	for _, rf := range s.RemedyFields {
		if rf.ID == domain.LastFurnishingKey && rf.Required && s.LastFurnishingDate.IsZero() {
			fe.Add(rf.ID, "is required")
		}
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		fe.Add("end_date", "must not be before the start date")
	}
	if !s.FirstFurnishingDate.IsZero() && !s.LastFurnishingDate.IsZero() && s.LastFurnishingDate.Before(s.FirstFurnishingDate) {
		fe.Add(domain.LastFurnishingKey, "must not be before the first furnishing date")
	}
	return fe
}

// -----------------------------------------------------------------------------
// 4. Description
// -----------------------------------------------------------------------------

type descriptionUnit struct{}

func (descriptionUnit) Step() domain.Step { return domain.StepDescription }
func (descriptionUnit) Title() string     { return "Job site" }

func (descriptionUnit) Fields(domain.Draft) []Field {
	return []Field{
		textField(descriptionSec, "job_address", "Job address", true, func(s *domain.DescriptionSection) *string { return &s.JobAddress }),
		textField(descriptionSec, "city", "City", true, func(s *domain.DescriptionSection) *string { return &s.City }),
		textField(descriptionSec, "county", "County", false, func(s *domain.DescriptionSection) *string { return &s.County }),
		textField(descriptionSec, "zip", "ZIP code", false, func(s *domain.DescriptionSection) *string { return &s.Zip }),
		textField(descriptionSec, "description", "Description of work", false, func(s *domain.DescriptionSection) *string { return &s.Description }),
	}
}

func (u descriptionUnit) Validate(d domain.Draft) errors.FieldErrors {
	fe := requireFields(u.Fields(d), d)
	if z := d.Description.Zip; z != "" && !zipPattern.MatchString(z) {
		fe.Add("zip", "must be 5 digits or ZIP+4")
	}
	return fe
}

// -----------------------------------------------------------------------------
// 5. Contract
// -----------------------------------------------------------------------------

type contractUnit struct{}

func (contractUnit) Step() domain.Step { return domain.StepContract }
func (contractUnit) Title() string     { return "Contract amounts" }

func (contractUnit) Fields(domain.Draft) []Field {
	return []Field{
		moneyField(contractSec, "base_amount", "Base contract amount", true, func(s *domain.ContractSection) *domain.Money { return &s.BaseAmount }),
		moneyField(contractSec, "additional_amount", "Change orders", false, func(s *domain.ContractSection) *domain.Money { return &s.AdditionalAmount }),
		moneyField(contractSec, "payments_received", "Payments received", false, func(s *domain.ContractSection) *domain.Money { return &s.PaymentsReceived }),
		dateField(contractSec, "contract_date", "Contract date", false, func(s *domain.ContractSection) *domain.Date { return &s.ContractDate }),
		derivedField("revised_cost", "Revised cost", func(d domain.Draft) string { return d.Contract.RevisedCost().String() }),
		derivedField("unpaid_balance", "Unpaid balance", func(d domain.Draft) string { return d.Contract.UnpaidBalance().String() }),
	}
}

func (contractUnit) Validate(d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	c := d.Contract
	if c.BaseAmount <= 0 {
		fe.Add("base_amount", "must be greater than zero")
	}
	if c.PaymentsReceived < 0 {
		fe.Add("payments_received", "must not be negative")
	}
	if c.RevisedCost() < 0 {
		fe.Add("additional_amount", "change orders cannot exceed the base amount")
	}
	return fe
}

// -----------------------------------------------------------------------------
// 6. Contacts
// -----------------------------------------------------------------------------

// ensureCustomerID gives a customer entered for the first time a client id.
func ensureCustomerID(s *domain.ContactsSection) {
	if s.Customer.ID == "" && !s.Customer.IsZero() {
		s.Customer.ID = domain.NewEntityID()
		s.Customer.IsNew = true
	}
}

type contactsUnit struct{}

func (contactsUnit) Step() domain.Step { return domain.StepContacts }
func (contactsUnit) Title() string     { return "Customer and contacts" }

func (contactsUnit) Fields(domain.Draft) []Field {
	return []Field{
		textField(contactsSec, "customer_company", "Customer company", true, func(s *domain.ContactsSection) *string { return &s.Customer.Company }, ensureCustomerID),
		textField(contactsSec, "customer_first_name", "Customer first name", false, func(s *domain.ContactsSection) *string { return &s.Customer.FirstName }, ensureCustomerID),
		textField(contactsSec, "customer_last_name", "Customer last name", false, func(s *domain.ContactsSection) *string { return &s.Customer.LastName }, ensureCustomerID),
		textField(contactsSec, "customer_email", "Customer email", false, func(s *domain.ContactsSection) *string { return &s.Customer.Email }, ensureCustomerID),
		textField(contactsSec, "customer_phone", "Customer phone", false, func(s *domain.ContactsSection) *string { return &s.Customer.Phone }, ensureCustomerID),
		textField(contactsSec, "customer_address", "Customer address", false, func(s *domain.ContactsSection) *string { return &s.Customer.Address }, ensureCustomerID),
		derivedField("contacts", "Additional contacts", func(d domain.Draft) string { return strconv.Itoa(len(d.Contacts.Contacts)) }),
	}
}

func (u contactsUnit) Validate(d domain.Draft) errors.FieldErrors {
	fe := requireFields(u.Fields(d), d)
	checkContact(&fe, "customer_", d.Contacts.Customer)
	for i, c := range d.Contacts.Contacts {
		prefix := fmt.Sprintf("contacts[%d].", i)
		if c.Name() == "" {
			fe.Add(prefix+"name", "a name or company is required")
		}
		checkContact(&fe, prefix, c)
	}
	return fe
}

// -----------------------------------------------------------------------------
// 7. Documents
// -----------------------------------------------------------------------------

type documentsUnit struct{}

func (documentsUnit) Step() domain.Step { return domain.StepDocuments }
func (documentsUnit) Title() string     { return "Project documents" }

func (documentsUnit) Fields(domain.Draft) []Field {
	return []Field{
		derivedField("documents", "Documents", func(d domain.Draft) string { return strconv.Itoa(len(d.Documents.Documents)) }),
	}
}

func (documentsUnit) Validate(d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	for i, doc := range d.Documents.Documents {
		if doc.IsNew && doc.Size > domain.MaxUploadBytes {
			fe.Add(fmt.Sprintf("documents[%d]", i), (&errors.FileTooLargeError{Name: doc.Name, Size: doc.Size, Limit: domain.MaxUploadBytes}).Error())
		}
	}
	return fe
}

// -----------------------------------------------------------------------------
// 8. Deadlines
// -----------------------------------------------------------------------------

type deadlinesUnit struct{}

func (deadlinesUnit) Step() domain.Step { return domain.StepDeadlines }
func (deadlinesUnit) Title() string     { return "Lien deadlines" }

func (deadlinesUnit) Fields(domain.Draft) []Field {
	return []Field{
		derivedField("deadlines", "Deadlines", func(d domain.Draft) string { return strconv.Itoa(len(d.Deadlines.Items)) }),
		derivedField("fetched_on", "Calculated on", func(d domain.Draft) string { return d.Deadlines.FetchedOn.String() }),
	}
}

// Deadlines are informational; the step never blocks.
func (deadlinesUnit) Validate(domain.Draft) errors.FieldErrors { return nil }

// -----------------------------------------------------------------------------
// 9. Tasks
// -----------------------------------------------------------------------------

type tasksUnit struct{}

func (tasksUnit) Step() domain.Step { return domain.StepTasks }
func (tasksUnit) Title() string     { return "Follow-up tasks" }

func (tasksUnit) Fields(domain.Draft) []Field {
	return []Field{
		derivedField("tasks", "Tasks", func(d domain.Draft) string { return strconv.Itoa(len(d.Tasks.Tasks)) }),
	}
}

func (tasksUnit) Validate(d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	for i, t := range d.Tasks.Tasks {
		prefix := fmt.Sprintf("tasks[%d].", i)
		fe.Required(prefix+"name", t.Name)
		if t.DueDate.IsZero() {
			fe.Add(prefix+"due_date", "is required")
		}
	}
	return fe
}

// -----------------------------------------------------------------------------
// 10. Summary
// -----------------------------------------------------------------------------

type summaryUnit struct{}

func (summaryUnit) Step() domain.Step { return domain.StepSummary }
func (summaryUnit) Title() string     { return "Review" }

func (summaryUnit) Fields(domain.Draft) []Field {
	return []Field{
		derivedField("project_name", "Project", func(d domain.Draft) string { return d.Details.ProjectName }),
		derivedField("job_address", "Job site", func(d domain.Draft) string { return d.Description.JobAddress }),
		derivedField("customer", "Customer", func(d domain.Draft) string { return d.Contacts.Customer.Name() }),
		derivedField("revised_cost", "Revised cost", func(d domain.Draft) string { return d.Contract.RevisedCost().String() }),
		derivedField("unpaid_balance", "Unpaid balance", func(d domain.Draft) string { return d.Contract.UnpaidBalance().String() }),
		derivedField("next_deadline", "Next deadline", func(d domain.Draft) string { return nextDeadline(d.Deadlines.Items) }),
	}
}

func (summaryUnit) Validate(domain.Draft) errors.FieldErrors { return nil }

func nextDeadline(items []domain.Deadline) string {
	var next *domain.Deadline
	for i := range items {
		if items[i].DaysRemaining < 0 {
			continue
		}
		if next == nil || items[i].DaysRemaining < next.DaysRemaining {
			next = &items[i]
		}
	}
	if next == nil {
		return ""
	}
	return fmt.Sprintf("%s on %s", next.Title, next.Date)
}

// -----------------------------------------------------------------------------
// 11. Info sheet
// -----------------------------------------------------------------------------

type infoSheetUnit struct{}

func (infoSheetUnit) Step() domain.Step { return domain.StepInfoSheet }
func (infoSheetUnit) Title() string     { return "Information sheet" }

func stampSignedOn(s *domain.SignatureSection) {
	if s.SignedOn.IsZero() {
		s.SignedOn = domain.Today()
	}
}

func (infoSheetUnit) Fields(domain.Draft) []Field {
	return []Field{
		textField(signatureSec, "signer_name", "Signed by", true, func(s *domain.SignatureSection) *string { return &s.SignerName }, stampSignedOn),
		textField(signatureSec, "signer_title", "Title", false, func(s *domain.SignatureSection) *string { return &s.SignerTitle }),
		dateField(signatureSec, "signed_on", "Date", false, func(s *domain.SignatureSection) *domain.Date { return &s.SignedOn }),
		boolField(signatureSec, "accepted", "I confirm the information is accurate", true, func(s *domain.SignatureSection) *bool { return &s.Accepted }),
	}
}

func (infoSheetUnit) Validate(d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	fe.Required("signer_name", d.Signature.SignerName)
	if !d.Signature.Accepted {
		fe.Add("accepted", "must be confirmed before submitting")
	}
	return fe
}

// requireFields reports every required editable field with a blank value.
func requireFields(fields []Field, d domain.Draft) errors.FieldErrors {
	var fe errors.FieldErrors
	for _, f := range fields {
		if f.Required && !f.ReadOnly() {
			fe.Required(f.Key, f.Get(d))
		}
	}
	return fe
}
