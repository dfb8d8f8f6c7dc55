package types_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain/types"
)

func TestDate_ParseAndJSON(t *testing.T) {
	d, err := types.ParseDate("2024-01-20")
	require.NoError(t, err)
	assert.Equal(t, types.NewDate(2024, time.January, 20), d)
	assert.Equal(t, 19, types.NewDate(2024, time.January, 1).DaysUntil(d))

	b, err := json.Marshal(struct {
		D types.Date `json:"d"`
		Z types.Date `json:"z"`
	}{D: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-01-20","z":""}`, string(b))

	var back struct {
		D types.Date `json:"d"`
		T types.Date `json:"t"`
		N types.Date `json:"n"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-01-20","t":"2024-02-01T10:00:00Z","n":null}`), &back))
	assert.Equal(t, d, back.D)
	assert.Equal(t, types.NewDate(2024, time.February, 1), back.T)
	assert.True(t, back.N.IsZero())

	_, err = types.ParseDate("01/20/2024")
	assert.Error(t, err)
	blank, err := types.ParseDate(" ")
	require.NoError(t, err)
	assert.True(t, blank.IsZero())
}

func TestMoney_ParseAndFormat(t *testing.T) {
	tests := []struct {
		in   string
		want types.Money
		str  string
	}{
		{"1000", 100000, "1000.00"},
		{"1,200.5", 120050, "1200.50"},
		{"$ 99.99", 9999, "99.99"},
		{"-3", -300, "-3.00"},
		{".07", 7, "0.07"},
		{"", 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := types.ParseMoney(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}

	for _, bad := range []string{"1.234", "abc", "12x", "1.-5", "1.+5", "--5", "+5", "92233720368547758", "99999999999999999999"} {
		_, err := types.ParseMoney(bad)
		assert.Error(t, err, bad)
	}

	largest, err := types.ParseMoney("92233720368547757.99")
	require.NoError(t, err)
	assert.Equal(t, types.Money(9223372036854775799), largest)
}

func TestContract_Derivations(t *testing.T) {
	c := types.ContractSection{BaseAmount: 100000, AdditionalAmount: 20000, PaymentsReceived: 30000}
	assert.Equal(t, "1200.00", c.RevisedCost().String())
	assert.Equal(t, "900.00", c.UnpaidBalance().String())

	totals := types.NewContractTotals(c)
	b, err := json.Marshal(totals)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_amount":1000.00,"additional_amount":200.00,"payments_received":300.00,
		"contract_date":"","revised_cost":1200.00,"unpaid_balance":900.00}`, string(b))
}

func TestUrgencyFor(t *testing.T) {
	assert.Equal(t, types.UrgencySafe, types.UrgencyFor(31))
	assert.Equal(t, types.UrgencySoon, types.UrgencyFor(30))
	assert.Equal(t, types.UrgencySoon, types.UrgencyFor(0))
	assert.Equal(t, types.UrgencyOverdue, types.UrgencyFor(-1))
	assert.Equal(t, "overdue", types.Deadline{DaysRemaining: -5}.Urgency().String())
}

func TestParseStep(t *testing.T) {
	s, err := types.ParseStep("3")
	require.NoError(t, err)
	assert.Equal(t, types.StepDates, s)

	s, err = types.ParseStep("Info-Sheet")
	require.NoError(t, err)
	assert.Equal(t, types.StepInfoSheet, s)

	_, err = types.ParseStep("12")
	assert.Error(t, err)
	_, err = types.ParseStep("billing")
	assert.Error(t, err)

	assert.Len(t, types.Steps(), 11)
	assert.Equal(t, "step(0)", types.Step(0).String())
}

func TestDraft_ApplyIsShallowMerge(t *testing.T) {
	base := types.Draft{
		Details:     types.DetailsSection{ProjectName: "Main St", StateID: "TX"},
		Description: types.DescriptionSection{JobAddress: "1 Main St", City: "Austin"},
	}

	got := base.Apply(types.Patch{Details: &types.DetailsSection{ProjectName: "Elm St"}})

	assert.Equal(t, "Elm St", got.Details.ProjectName)
	assert.Empty(t, got.Details.StateID, "a patched section is replaced, not merged")
	assert.Equal(t, base.Description, got.Description)
	assert.Equal(t, "Main St", base.Details.ProjectName, "Apply must not mutate the receiver")

	assert.True(t, types.Patch{}.IsEmpty())
	assert.Equal(t, base, base.Apply(types.Patch{}))
}

func TestDraft_DeadlineRequest(t *testing.T) {
	d := types.Draft{
		Details: types.DetailsSection{StateID: "TX", ProjectTypeID: "private", RoleID: "sub", CustomerTypeID: "gc"},
		Dates: types.DatesSection{
			FirstFurnishingDate: types.NewDate(2024, time.January, 20),
			RemedyDates:         map[string]types.Date{"completion_date": types.NewDate(2024, time.June, 1), "unset": {}},
		},
	}
	req := d.DeadlineRequest()
	assert.Equal(t, "TX", req.State)
	assert.Equal(t, map[string]types.Date{
		types.FirstFurnishingKey: types.NewDate(2024, time.January, 20),
		"completion_date":        types.NewDate(2024, time.June, 1),
	}, req.FurnishingDates)
}

func TestSnapshot_Normalize(t *testing.T) {
	assert.Equal(t, types.Snapshot{Step: 4, MaxStep: 4}, types.Snapshot{Step: 4}.Normalize())
	assert.Equal(t, types.Snapshot{Step: 1, MaxStep: 1}, types.Snapshot{Step: 99}.Normalize())
	assert.Equal(t, types.Snapshot{Step: 2, MaxStep: 6}, types.Snapshot{Step: 2, MaxStep: 6}.Normalize())
}

func TestProject_DraftRoundTrip(t *testing.T) {
	p := types.Project{
		ID:       "p-9",
		Details:  types.DetailsSection{ProjectName: "Bridge"},
		Contract: types.NewContractTotals(types.ContractSection{BaseAmount: 5000}),
		Customer: &types.Contact{ID: "c-1", Company: "Acme", IsNew: true},
		Contacts: []types.Contact{{ID: "c-2", FirstName: "Ann", IsNew: true}},
		Tasks:    []types.Task{{ID: "t-1", Name: "Send notice", IsNew: true}},
	}
	d := p.Draft()
	assert.Equal(t, types.ProjectID("p-9"), d.ProjectID)
	assert.False(t, d.Contacts.Customer.IsNew)
	assert.False(t, d.Contacts.Contacts[0].IsNew)
	assert.False(t, d.Tasks.Tasks[0].IsNew)

	back := types.ProjectFromDraft(d)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, types.EntityID("c-1"), back.CustomerID)
	assert.Equal(t, p.Contract, back.Contract)
}
