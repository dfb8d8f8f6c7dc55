package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liendesk/internal/domain"
	"liendesk/internal/wizard"
)

type fakeDeadlines struct {
	calls  int
	items  [][]domain.Deadline // returned per call, in order
	fields []domain.RemedyDateField
}

func (f *fakeDeadlines) Calculate(context.Context, domain.DeadlineRequest) ([]domain.Deadline, error) {
	i := min(f.calls, len(f.items)-1)
	f.calls++
	return f.items[i], nil
}

func (f *fakeDeadlines) RequiredDates(context.Context, domain.RemedyDatesRequest) ([]domain.RemedyDateField, error) {
	return f.fields, nil
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func keyPress(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// at returns a controller moved to step s without validation.
func at(t *testing.T, s domain.Step) *wizard.Controller {
	t.Helper()
	ctrl := wizard.New()
	for ctrl.Step() < s {
		require.NoError(t, ctrl.Next(context.Background()))
	}
	return ctrl
}

func fillDetails(t *testing.T, ctrl *wizard.Controller) {
	t.Helper()
	sec := domain.DetailsSection{
		ProjectName:    "Tower",
		CountryID:      "US",
		StateID:        "TX",
		ProjectTypeID:  "commercial",
		RoleID:         "sub",
		CustomerTypeID: "gc",
	}
	require.NoError(t, ctrl.Update(context.Background(), domain.Patch{Details: &sec}))
}

func TestModel_TypingAndTabAppliesField(t *testing.T) {
	ctrl := at(t, domain.StepDetails)
	m := New(context.Background(), ctrl, nil)

	m, _ = press(t, m, runes("Tower"), keyPress(tea.KeyTab))

	assert.Equal(t, "Tower", ctrl.Draft().Details.ProjectName)
	assert.Equal(t, 1, m.focus)
}

func TestModel_ContinueIsGated(t *testing.T) {
	ctrl := at(t, domain.StepDetails)
	m := New(context.Background(), ctrl, nil)

	m, _ = press(t, m, keyPress(tea.KeyCtrlN))

	assert.Equal(t, domain.StepDetails, ctrl.Step())
	_, ok := m.errs.Get("project_name")
	assert.True(t, ok)
	assert.Contains(t, m.View(), "Complete the highlighted fields")

	fillDetails(t, ctrl)
	m = New(context.Background(), ctrl, nil)
	_, _ = press(t, m, keyPress(tea.KeyCtrlN))
	assert.Equal(t, domain.StepDates, ctrl.Step())
}

func TestModel_EnteringDatesFetchesRemedyFields(t *testing.T) {
	ctrl := at(t, domain.StepDetails)
	fillDetails(t, ctrl)
	svc := &fakeDeadlines{fields: []domain.RemedyDateField{{ID: "notice_date", Label: "Notice date", Required: true}}}
	m := New(context.Background(), ctrl, svc)

	m, cmd := press(t, m, keyPress(tea.KeyCtrlN))
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())

	assert.Equal(t, svc.fields, ctrl.Draft().Dates.RemedyFields)
	var keys []string
	for _, f := range m.fields {
		keys = append(keys, f.Key)
	}
	assert.Contains(t, keys, "notice_date")
}

func TestModel_StaleDeadlinesAreDropped(t *testing.T) {
	ctrl := at(t, domain.StepDeadlines)
	older := []domain.Deadline{{Title: "Old", DaysRemaining: 3}}
	newer := []domain.Deadline{{Title: "New", DaysRemaining: 40}}
	svc := &fakeDeadlines{items: [][]domain.Deadline{older, newer}}
	m := New(context.Background(), ctrl, svc)

	first := m.fetchDeadlines()
	second := m.fetchDeadlines()
	staleMsg, freshMsg := first(), second()

	m, _ = press(t, m, freshMsg)
	assert.Equal(t, newer, ctrl.Draft().Deadlines.Items)

	// The older request answering late must not overwrite the newer result.
	_, _ = press(t, m, staleMsg)
	assert.Equal(t, newer, ctrl.Draft().Deadlines.Items)
}

func TestModel_EditInvalidatesInFlightFetch(t *testing.T) {
	ctrl := at(t, domain.StepDates)
	svc := &fakeDeadlines{fields: []domain.RemedyDateField{{ID: "notice_date", Label: "Notice date"}}}
	m := New(context.Background(), ctrl, svc)

	fetch := m.fetchRemedyFields()
	m, _ = press(t, m, runes("2024-01-15"), keyPress(tea.KeyTab))
	_, _ = press(t, m, fetch())

	assert.Empty(t, ctrl.Draft().Dates.RemedyFields)
	assert.Equal(t, "2024-01-15", ctrl.Draft().Dates.StartDate.String())
}

func TestModel_GoToReachedStep(t *testing.T) {
	ctrl := at(t, domain.StepContract)
	m := New(context.Background(), ctrl, nil)

	m, _ = press(t, m, keyPress(tea.KeyCtrlG), runes("2"), keyPress(tea.KeyEnter))
	assert.Equal(t, domain.StepDetails, ctrl.Step())

	// Steps beyond the furthest reached stay locked.
	m, _ = press(t, m, keyPress(tea.KeyCtrlG), runes("9"), keyPress(tea.KeyEnter))
	assert.Equal(t, domain.StepDetails, ctrl.Step())
	assert.NotEmpty(t, m.status)
}

func TestModel_SubmitOnlyFromInfoSheet(t *testing.T) {
	ctrl := at(t, domain.StepSummary)
	m := New(context.Background(), ctrl, nil)

	m, cmd := press(t, m, keyPress(tea.KeyCtrlT))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.status)
	assert.False(t, m.pending)
}

func TestModel_CancelResetsWizard(t *testing.T) {
	ctrl := at(t, domain.StepDetails)
	fillDetails(t, ctrl)
	m := New(context.Background(), ctrl, nil)

	m, _ = press(t, m, keyPress(tea.KeyCtrlX))

	assert.Equal(t, domain.StepUpload, ctrl.Step())
	assert.Empty(t, ctrl.Draft().Details.ProjectName)
	assert.Contains(t, m.status, "cancelled")
}
