package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/wizard"
)

// Deadlines renders one line per deadline, coloured by urgency.
func Deadlines(items []domain.Deadline) string {
	if len(items) == 0 {
		return Muted.Render("No deadlines for these inputs.")
	}
	titleW := 0
	for _, d := range items {
		titleW = max(titleW, lipgloss.Width(d.Title))
	}
	var b strings.Builder
	for _, d := range items {
		style := UrgencyStyle(d.Urgency())
		date := d.Date.String()
		if date == "" {
			date = "----------"
		}
		fmt.Fprintf(&b, "%s  %-*s  %s  %s\n",
			style.Render(fmt.Sprintf("%-7s", d.Urgency())),
			titleW, d.Title,
			date,
			style.Render(daysLabel(d.DaysRemaining)),
		)
		if d.Requirement != "" {
			fmt.Fprintf(&b, "         %s\n", Muted.Render(d.Requirement))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func daysLabel(n int) string {
	switch {
	case n < 0:
		return fmt.Sprintf("%d days overdue", -n)
	case n == 0:
		return "due today"
	case n == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", n)
	}
}

// Progress renders the step strip: the current step highlighted, reached
// steps plain and the rest muted.
func Progress(current, maxReached domain.Step) string {
	parts := make([]string, 0, len(domain.Steps()))
	for _, s := range domain.Steps() {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s == current:
			parts = append(parts, StepCurrent.Render("["+label+"]"))
		case s <= maxReached:
			parts = append(parts, StepVisited.Render(label))
		default:
			parts = append(parts, StepLocked.Render(label))
		}
	}
	return strings.Join(parts, Muted.Render(" › "))
}

// Unit renders the fields of u for d with any errors next to them.
func Unit(u wizard.Unit, d domain.Draft, fe errors.FieldErrors) string {
	var b strings.Builder
	b.WriteString(Title.Render(fmt.Sprintf("Step %d: %s", int(u.Step()), u.Title())))
	b.WriteString("\n")
	fields := u.Fields(d)
	keyW := 0
	for _, f := range fields {
		keyW = max(keyW, len(f.Key))
	}
	for _, f := range fields {
		marker := " "
		if f.Required {
			marker = "*"
		}
		val := f.Get(d)
		if val == "" {
			val = Muted.Render("-")
		}
		line := fmt.Sprintf("%s %-*s  %s", marker, keyW, f.Key, val)
		if f.ReadOnly() {
			line += Muted.Render("  (derived)")
		}
		if msg, ok := fe.Get(f.Key); ok {
			line += "  " + Error.Render(msg)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	// Errors on keys that are not fields (e.g. contacts[1].email).
	for _, e := range fe {
		if !hasField(fields, e.Field) {
			b.WriteString(Error.Render(e.Error()))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func hasField(fields []wizard.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Summary renders the draft the way the Summary step presents it.
func Summary(d domain.Draft) string {
	rows := [][2]string{
		{"Project", d.Details.ProjectName},
		{"Job number", d.Details.JobNumber},
		{"Jurisdiction", strings.Trim(d.Details.StateID+", "+d.Details.CountryID, ", ")},
		{"Role", d.Details.RoleID + " for " + d.Details.CustomerTypeID},
		{"Dates", d.Dates.StartDate.String() + " to " + d.Dates.EndDate.String()},
		{"Furnishing", d.Dates.FirstFurnishingDate.String() + " to " + d.Dates.LastFurnishingDate.String()},
		{"Address", strings.Trim(d.Description.JobAddress+", "+d.Description.City, ", ")},
		{"Revised cost", d.Contract.RevisedCost().String()},
		{"Unpaid balance", d.Contract.UnpaidBalance().String()},
		{"Customer", d.Contacts.Customer.Name()},
		{"Contacts", fmt.Sprint(len(d.Contacts.Contacts))},
		{"Documents", fmt.Sprint(len(d.Documents.Documents) + len(d.Upload.Files))},
		{"Tasks", fmt.Sprint(len(d.Tasks.Tasks))},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", Label.Render(fmt.Sprintf("%-15s", r[0])), r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}
