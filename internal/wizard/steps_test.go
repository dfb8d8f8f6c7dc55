package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

func fieldByKey(t *testing.T, u Unit, d domain.Draft, key string) Field {
	t.Helper()
	for _, f := range u.Fields(d) {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("unit %s has no field %s", u.Step(), key)
	return Field{}
}

func set(t *testing.T, u Unit, d domain.Draft, key, raw string) domain.Draft {
	t.Helper()
	p, err := fieldByKey(t, u, d, key).Set(d, raw)
	require.NoError(t, err)
	return d.Apply(p)
}

func TestUnits_CoverEveryStepInOrder(t *testing.T) {
	us := Units()
	require.Len(t, us, int(domain.LastStep))
	for i, u := range us {
		assert.Equal(t, domain.Step(i+1), u.Step())
		assert.NotEmpty(t, u.Title())
	}
	assert.Nil(t, UnitFor(0))
}

func TestEstimateEndDate(t *testing.T) {
	start := domain.NewDate(2024, 1, 1)
	// gap of 19 days doubles to 38, below the 90 day floor
	assert.Equal(t, "2024-03-31", EstimateEndDate(start, domain.NewDate(2024, 1, 20)).String())
	assert.Equal(t, "2024-03-31", EstimateEndDate(start, domain.NewDate(2024, 1, 11)).String())
	// gap of 60 days doubles to 120
	assert.Equal(t, "2024-04-30", EstimateEndDate(start, domain.NewDate(2024, 3, 1)).String())
}

func TestDates_EstimateFromStartAndFirstFurnishing(t *testing.T) {
	u := UnitFor(domain.StepDates)
	d := set(t, u, domain.Draft{}, "start_date", "2024-01-01")
	d = set(t, u, d, domain.FirstFurnishingKey, "2024-01-20")
	assert.Equal(t, "2024-03-31", d.Dates.EndDate.String())
}

func TestDates_EstimateFillsOnlyUnsetEndDate(t *testing.T) {
	u := UnitFor(domain.StepDates)
	d := set(t, u, domain.Draft{}, "start_date", "2024-01-01")
	assert.True(t, d.Dates.EndDate.IsZero())

	d = set(t, u, d, domain.FirstFurnishingKey, "2024-01-05")
	assert.Equal(t, "2024-03-31", d.Dates.EndDate.String())
	assert.True(t, d.Dates.EndDateEstimated)

	d = set(t, u, d, "start_date", "2023-06-01")
	assert.Equal(t, "2024-03-31", d.Dates.EndDate.String(), "existing end date is not recomputed")

	d = set(t, u, d, "end_date", "2024-05-01")
	assert.False(t, d.Dates.EndDateEstimated)
}

func TestDates_Validate(t *testing.T) {
	u := UnitFor(domain.StepDates)
	fe := u.Validate(domain.Draft{})
	_, ok := fe.Get("start_date")
	assert.True(t, ok)

	d := domain.Draft{Dates: domain.DatesSection{
		StartDate:           domain.NewDate(2024, 2, 1),
		EndDate:             domain.NewDate(2024, 1, 1),
		FirstFurnishingDate: domain.NewDate(2024, 2, 1),
		LastFurnishingDate:  domain.NewDate(2024, 1, 15),
		RemedyFields:        []domain.RemedyDateField{{ID: "notice_date", Label: "Notice sent", Required: true}},
	}}
	fe = u.Validate(d)
	_, ok = fe.Get("end_date")
	assert.True(t, ok)
	_, ok = fe.Get(domain.LastFurnishingKey)
	assert.True(t, ok)
	_, ok = fe.Get("notice_date")
	assert.True(t, ok, "required remedy date")

	d = set(t, u, d, "notice_date", "2024-02-10")
	assert.Equal(t, "2024-02-10", d.Dates.RemedyDates["notice_date"].String())
	_, ok = u.Validate(d).Get("notice_date")
	assert.False(t, ok)
}

func TestDetails_ParentChangeResetsChild(t *testing.T) {
	u := UnitFor(domain.StepDetails)
	d := domain.Draft{Details: domain.DetailsSection{CountryID: "US", StateID: "TX", RoleID: "sub", CustomerTypeID: "gc"}}
	d = set(t, u, d, "country", "CA")
	assert.Empty(t, d.Details.StateID)
	d = set(t, u, d, "role", "gc")
	assert.Empty(t, d.Details.CustomerTypeID)
}

func TestContract_FieldsAndValidation(t *testing.T) {
	u := UnitFor(domain.StepContract)
	d := set(t, u, domain.Draft{}, "base_amount", "1,000")
	d = set(t, u, d, "additional_amount", "200")
	d = set(t, u, d, "payments_received", "300")

	assert.Equal(t, "1200.00", fieldByKey(t, u, d, "revised_cost").Get(d))
	assert.Equal(t, "900.00", fieldByKey(t, u, d, "unpaid_balance").Get(d))
	assert.True(t, fieldByKey(t, u, d, "unpaid_balance").ReadOnly())
	assert.Empty(t, u.Validate(d))

	fe := u.Validate(domain.Draft{})
	_, ok := fe.Get("base_amount")
	assert.True(t, ok)
}

func TestContacts_Validate(t *testing.T) {
	u := UnitFor(domain.StepContacts)
	d := set(t, u, domain.Draft{}, "customer_company", "Acme GC")
	assert.NotEmpty(t, d.Contacts.Customer.ID)
	assert.True(t, d.Contacts.Customer.IsNew)
	assert.Empty(t, u.Validate(d))

	d = set(t, u, d, "customer_email", "not-an-email")
	d = set(t, u, d, "customer_phone", "12")
	fe := u.Validate(d)
	_, ok := fe.Get("customer_email")
	assert.True(t, ok)
	_, ok = fe.Get("customer_phone")
	assert.True(t, ok)
}

func TestValidEmailAndPhone(t *testing.T) {
	assert.True(t, ValidEmail("pat@example.com"))
	assert.False(t, ValidEmail("pat@"))
	assert.True(t, ValidPhone("+1 (512) 555-0100"))
	assert.True(t, ValidPhone("512-555-0100"))
	assert.False(t, ValidPhone("call me"))
}

func TestUpload_RejectsOversizeFiles(t *testing.T) {
	ctx := context.Background()
	c := New()
	err := StageFiles(ctx, c,
		domain.PendingFile{Name: "small.pdf", Size: 1024},
		domain.PendingFile{Name: "huge.pdf", Size: domain.MaxUploadBytes + 1},
		domain.PendingFile{Name: "edge.pdf", Size: domain.MaxUploadBytes},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileTooLarge)
	assert.Contains(t, err.Error(), "huge.pdf")

	files := c.Draft().Upload.Files
	require.Len(t, files, 2)
	assert.Equal(t, "small.pdf", files[0].Name)
	assert.Equal(t, "edge.pdf", files[1].Name)
	assert.Empty(t, UnitFor(domain.StepUpload).Validate(c.Draft()))

	require.NoError(t, UnstageFile(ctx, c, files[0].ID))
	assert.Len(t, c.Draft().Upload.Files, 1)
}

func TestItems_RemoveTracksPersistedIDs(t *testing.T) {
	ctx := context.Background()
	c := ForProject(domain.Project{
		ID:        "p-1",
		Contacts:  []domain.Contact{{ID: "c-old", FirstName: "Old"}},
		Documents: []domain.Document{{ID: "d-old", Name: "lien.pdf"}},
		Tasks:     []domain.Task{{ID: "t-old", Name: "Call", DueDate: domain.NewDate(2024, 1, 1)}},
	})

	newID, err := AddContact(ctx, c, domain.Contact{Company: "Supplier Co"})
	require.NoError(t, err)
	require.NoError(t, RemoveContact(ctx, c, newID))
	require.NoError(t, RemoveContact(ctx, c, "c-old"))
	assert.Empty(t, c.Draft().Contacts.Contacts)
	assert.Equal(t, []domain.EntityID{"c-old"}, c.Draft().Contacts.RemovedContactIDs)

	require.NoError(t, RemoveDocument(ctx, c, "d-old"))
	assert.Equal(t, []domain.EntityID{"d-old"}, c.Draft().Documents.RemovedDocumentIDs)

	require.NoError(t, RemoveTask(ctx, c, "t-old"))
	assert.Equal(t, []domain.EntityID{"t-old"}, c.Draft().Tasks.RemovedTaskIDs)

	assert.ErrorIs(t, RemoveTask(ctx, c, "missing"), errors.ErrNotFound)
}

func TestItems_AddValidates(t *testing.T) {
	ctx := context.Background()
	c := New()

	_, err := AddContact(ctx, c, domain.Contact{Email: "bad"})
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	_, err = AddTask(ctx, c, domain.Task{Name: "Send notice"})
	assert.ErrorIs(t, err, errors.ErrStepIncomplete)

	id, err := AddTask(ctx, c, domain.Task{Name: "Send notice", DueDate: domain.NewDate(2024, 2, 1)})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.True(t, c.Draft().Tasks.Tasks[0].IsNew)

	_, err = AddDocument(ctx, c, domain.PendingFile{Name: "big.zip", Size: domain.MaxUploadBytes + 1})
	assert.ErrorIs(t, err, errors.ErrFileTooLarge)
}

func TestInfoSheet_RequiresAcceptance(t *testing.T) {
	u := UnitFor(domain.StepInfoSheet)
	d := set(t, u, domain.Draft{}, "signer_name", "Pat Doe")
	assert.False(t, d.Signature.SignedOn.IsZero())
	_, ok := u.Validate(d).Get("accepted")
	assert.True(t, ok)

	d = set(t, u, d, "accepted", "yes")
	assert.Empty(t, u.Validate(d))
}
