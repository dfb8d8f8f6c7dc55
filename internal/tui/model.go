package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/render"
	"liendesk/internal/wizard"
)

// -----------------------------------------------------------------------------
// Messages
// -----------------------------------------------------------------------------

type deadlinesMsg struct {
	gen   int
	items []domain.Deadline
	err   error
}

type remedyFieldsMsg struct {
	gen    int
	fields []domain.RemedyDateField
	err    error
}

type savedMsg struct{ err error }

type submittedMsg struct {
	id  domain.ProjectID
	err error
}

// -----------------------------------------------------------------------------
// Model
// -----------------------------------------------------------------------------

// Model is the bubbletea model for one wizard session.
type Model struct {
	ctx       context.Context
	ctrl      *wizard.Controller
	deadlines domain.DeadlineService
	keys      keyMap

	fields []wizard.Field // editable fields of the current step
	inputs []textinput.Model
	focus  int

	errs    errors.FieldErrors
	status  string
	gen     int
	pending bool

	jumping bool
	jump    textinput.Model

	quitting  bool
	submitted domain.ProjectID
}

// New builds a model over ctrl. deadlines may be nil, in which case the
// remedy and deadline steps show whatever the draft already holds.
func New(ctx context.Context, ctrl *wizard.Controller, deadlines domain.DeadlineService) Model {
	jump := textinput.New()
	jump.Placeholder = "step number or name"
	jump.CharLimit = 16
	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		deadlines: deadlines,
		keys:      defaultKeyMap(),
		jump:      jump,
	}
	m.loadStep()
	return m
}

// Run starts the full-screen program and blocks until the user leaves.
// It returns the project id when the wizard was submitted.
func Run(ctx context.Context, ctrl *wizard.Controller, deadlines domain.DeadlineService) (domain.ProjectID, error) {
	p := tea.NewProgram(New(ctx, ctrl, deadlines), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	return final.(Model).submitted, nil
}

// Init fetches whatever the starting step needs.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.enterStep())
}

// loadStep rebuilds the inputs from the current step and draft.
func (m *Model) loadStep() {
	d := m.ctrl.Draft()
	m.fields, m.inputs = nil, nil
	for _, f := range m.ctrl.Unit().Fields(d) {
		if f.ReadOnly() {
			continue
		}
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = f.Label
		in.SetValue(f.Get(d))
		m.fields = append(m.fields, f)
		m.inputs = append(m.inputs, in)
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	m.errs = nil
}

// enterStep returns the background fetch the current step depends on.
func (m *Model) enterStep() tea.Cmd {
	switch m.ctrl.Step() {
	case domain.StepDates:
		if m.ctrl.Draft().Details.StateID != "" {
			return m.fetchRemedyFields()
		}
	case domain.StepDeadlines:
		return m.fetchDeadlines()
	}
	return nil
}

func (m *Model) fetchDeadlines() tea.Cmd {
	if m.deadlines == nil {
		return nil
	}
	m.gen++
	m.pending = true
	gen, ctx, svc, req := m.gen, m.ctx, m.deadlines, m.ctrl.Draft().DeadlineRequest()
	return func() tea.Msg {
		items, err := svc.Calculate(ctx, req)
		return deadlinesMsg{gen: gen, items: items, err: err}
	}
}

func (m *Model) fetchRemedyFields() tea.Cmd {
	if m.deadlines == nil {
		return nil
	}
	m.gen++
	m.pending = true
	gen, ctx, svc, req := m.gen, m.ctx, m.deadlines, m.ctrl.Draft().RemedyDatesRequest()
	return func() tea.Msg {
		fields, err := svc.RequiredDates(ctx, req)
		return remedyFieldsMsg{gen: gen, fields: fields, err: err}
	}
}

// commit applies every input whose text differs from the draft. Each
// applied edit invalidates in-flight fetches.
func (m *Model) commit() bool {
	ok := true
	for i, f := range m.fields {
		raw := m.inputs[i].Value()
		if raw == f.Get(m.ctrl.Draft()) {
			continue
		}
		m.gen++
		if err := wizard.SetField(m.ctx, m.ctrl, f.Key, raw); err != nil {
			ok = false
			m.addError(f.Key, err)
		}
	}
	return ok
}

func (m *Model) addError(field string, err error) {
	var fe errors.FieldError
	if errors.As(err, &fe) {
		m.errs = append(m.errs, fe)
		return
	}
	m.errs = append(m.errs, errors.FieldError{Field: field, Message: err.Error()})
}

func (m *Model) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

// moved reloads the step after navigation and starts its fetches.
func (m *Model) moved() tea.Cmd {
	m.loadStep()
	m.status = ""
	return m.enterStep()
}

// Update handles key presses and fetch results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.jumping {
			return m.updateJump(msg)
		}
		return m.updateKeys(msg)

	case deadlinesMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pending = false
		if msg.err != nil {
			m.status = errors.UserMessage(msg.err)
			return m, nil
		}
		if err := wizard.SetDeadlines(m.ctx, m.ctrl, msg.items, domain.Today()); err != nil {
			m.status = errors.UserMessage(err)
		}
		return m, nil

	case remedyFieldsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pending = false
		if msg.err != nil {
			m.status = errors.UserMessage(msg.err)
			return m, nil
		}
		m.commit()
		if err := wizard.SetRemedyFields(m.ctx, m.ctrl, msg.fields); err != nil {
			m.status = errors.UserMessage(err)
			return m, nil
		}
		focus := m.focus
		m.loadStep()
		m.setFocus(focus)
		return m, nil

	case savedMsg:
		m.pending = false
		if msg.err != nil {
			m.status = errors.UserMessage(msg.err)
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case submittedMsg:
		m.pending = false
		if msg.err != nil {
			var fe errors.FieldErrors
			if errors.As(msg.err, &fe) {
				m.errs = fe
			}
			m.status = errors.UserMessage(msg.err)
			return m, nil
		}
		m.submitted = msg.id
		m.quitting = true
		return m, tea.Quit
	}
	return m.updateInput(msg)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.commit()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextField):
		m.commit()
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.commit()
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.keys.Commit):
		m.errs = nil
		if m.commit() {
			m.setFocus(m.focus + 1)
		}
		return m, m.afterEdit()

	case key.Matches(msg, m.keys.Continue):
		m.errs = nil
		if !m.commit() {
			return m, nil
		}
		if err := wizard.Continue(m.ctx, m.ctrl); err != nil {
			var fe errors.FieldErrors
			if errors.As(err, &fe) {
				m.errs = fe
				m.status = "Complete the highlighted fields to continue."
			} else {
				m.status = errors.UserMessage(err)
			}
			return m, nil
		}
		return m, m.moved()

	case key.Matches(msg, m.keys.Back):
		m.commit()
		if err := m.ctrl.Back(m.ctx); err != nil {
			m.status = errors.UserMessage(err)
			return m, nil
		}
		return m, m.moved()

	case key.Matches(msg, m.keys.GoTo):
		m.commit()
		m.jumping = true
		m.jump.SetValue("")
		return m, m.jump.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.fetchDeadlines()

	case key.Matches(msg, m.keys.Save):
		m.commit()
		m.pending = true
		m.status = "Saving draft..."
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg { return savedMsg{err: ctrl.SaveAndExit(ctx)} }

	case key.Matches(msg, m.keys.Submit):
		if m.ctrl.Step() != domain.StepInfoSheet {
			m.status = errors.UserMessage(errors.ErrNotAtFinalStep)
			return m, nil
		}
		if !m.commit() {
			return m, nil
		}
		m.pending = true
		m.status = "Submitting..."
		ctx, ctrl := m.ctx, m.ctrl
		return m, func() tea.Msg {
			id, err := ctrl.Submit(ctx)
			return submittedMsg{id: id, err: err}
		}

	case key.Matches(msg, m.keys.Cancel):
		if err := m.ctrl.Cancel(m.ctx); err != nil {
			m.status = errors.UserMessage(err)
			return m, nil
		}
		cmd := m.moved()
		m.status = "Wizard cancelled; draft discarded."
		return m, cmd
	}
	return m.updateInput(msg)
}

// afterEdit refetches remedy fields when an edit on the dates step may have
// changed them.
func (m *Model) afterEdit() tea.Cmd {
	if m.ctrl.Step() == domain.StepDates && m.ctrl.Draft().Details.StateID != "" && len(m.ctrl.Draft().Dates.RemedyFields) == 0 {
		return m.fetchRemedyFields()
	}
	return nil
}

func (m Model) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.jumping = false
		m.jump.Blur()
		return m, nil
	case tea.KeyEnter:
		m.jumping = false
		m.jump.Blur()
		step, err := domain.ParseStep(strings.TrimSpace(m.jump.Value()))
		if err == nil {
			err = m.ctrl.GoTo(m.ctx, step)
		}
		if err != nil {
			m.status = errors.UserMessage(err)
			return m, nil
		}
		return m, m.moved()
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// -----------------------------------------------------------------------------
// View
// -----------------------------------------------------------------------------

// View renders the progress strip, the current step and the key help.
func (m Model) View() string {
	if m.quitting {
		if m.submitted != "" {
			return fmt.Sprintf("Project %s submitted.\n", m.submitted)
		}
		return ""
	}
	d := m.ctrl.Draft()
	u := m.ctrl.Unit()

	var b strings.Builder
	b.WriteString(render.Progress(m.ctrl.Step(), m.ctrl.MaxReached()))
	b.WriteString("\n\n")
	b.WriteString(render.Title.Render(fmt.Sprintf("Step %d: %s", int(u.Step()), u.Title())))
	if m.ctrl.Editing() {
		b.WriteString(render.Muted.Render("  (editing)"))
	}
	b.WriteString("\n\n")

	i := 0
	for _, f := range u.Fields(d) {
		label := f.Label
		if f.Required {
			label += " *"
		}
		line := render.Label.Render(fmt.Sprintf("%-26s", label))
		if f.ReadOnly() {
			line += " " + render.Muted.Render(orDash(f.Get(d)))
		} else if i < len(m.inputs) {
			line += " " + m.inputs[i].View()
			i++
		}
		if msg, ok := m.errs.Get(f.Key); ok {
			line += "  " + render.Error.Render(msg)
		}
		b.WriteString(line + "\n")
	}
	for _, e := range m.errs {
		if !m.hasField(u, d, e.Field) {
			b.WriteString(render.Error.Render(e.Error()) + "\n")
		}
	}

	switch m.ctrl.Step() {
	case domain.StepDeadlines:
		b.WriteString("\n" + render.Deadlines(d.Deadlines.Items) + "\n")
	case domain.StepSummary:
		b.WriteString("\n" + render.Summary(d) + "\n")
	}

	if m.jumping {
		b.WriteString("\nGo to step: " + m.jump.View() + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + render.Muted.Render(m.status) + "\n")
	}
	if m.pending {
		b.WriteString(render.Muted.Render("working...") + "\n")
	}
	k := m.keys
	b.WriteString("\n" + render.Muted.Render(k.help(k.NextField, k.Commit, k.Continue, k.Back, k.GoTo, k.Refresh, k.Save, k.Submit, k.Cancel, k.Quit)))
	return b.String()
}

func (m Model) hasField(u wizard.Unit, d domain.Draft, key string) bool {
	for _, f := range u.Fields(d) {
		if f.Key == key {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
