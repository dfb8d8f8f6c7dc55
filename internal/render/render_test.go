package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/wizard"
)

func TestDeadlines(t *testing.T) {
	out := Deadlines([]domain.Deadline{
		{Title: "Claim of lien", Date: domain.NewDate(2024, 1, 10), DaysRemaining: -3, Requirement: "Record it."},
		{Title: "Notice", Date: domain.NewDate(2024, 1, 20), DaysRemaining: 0},
		{Title: "Bond claim", Date: domain.NewDate(2024, 6, 1), DaysRemaining: 120},
	})
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "overdue")
	assert.Contains(t, lines[0], "3 days overdue")
	assert.Contains(t, lines[1], "Record it.")
	assert.Contains(t, lines[2], "soon")
	assert.Contains(t, lines[2], "due today")
	assert.Contains(t, lines[3], "safe")
	assert.Contains(t, lines[3], "2024-06-01")

	assert.Contains(t, Deadlines(nil), "No deadlines")
}

func TestProgress(t *testing.T) {
	out := Progress(domain.StepDates, domain.StepContract)
	assert.Contains(t, out, "[3 dates]")
	assert.Contains(t, out, "5 contract")
	assert.Contains(t, out, "11 info-sheet")
}

func TestUnit_ShowsErrors(t *testing.T) {
	d := domain.Draft{Contract: domain.ContractSection{BaseAmount: 120000, PaymentsReceived: 30000}}
	fe := errors.FieldErrors{}
	fe.Add("payments_received", "must not be negative")
	fe.Add("contacts[0].email", "invalid email")

	out := Unit(wizard.UnitFor(domain.StepContract), d, fe)
	assert.Contains(t, out, "Step 5")
	assert.Contains(t, out, "1200.00")
	assert.Contains(t, out, "900.00")
	assert.Contains(t, out, "(derived)")
	assert.Contains(t, out, "must not be negative")
	assert.Contains(t, out, "invalid email")
}

func TestSummary(t *testing.T) {
	d := domain.Draft{
		Details:  domain.DetailsSection{ProjectName: "Tower", StateID: "TX", CountryID: "US"},
		Contract: domain.ContractSection{BaseAmount: 100000, AdditionalAmount: 20000, PaymentsReceived: 30000},
	}
	out := Summary(d)
	assert.Contains(t, out, "Tower")
	assert.Contains(t, out, "TX, US")
	assert.Contains(t, out, "1200.00")
	assert.Contains(t, out, "900.00")
}
