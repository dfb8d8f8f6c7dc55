package wizard

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
)

// Field is a typed accessor over one value of a step's draft section.
// Set turns a raw user entry into a top-level Patch; read-only (derived)
// fields have a nil Set.
type Field struct {
	Key      string
	Label    string
	Required bool
	Get      func(d domain.Draft) string
	Set      func(d domain.Draft, raw string) (domain.Patch, error)
}

// ReadOnly reports whether the field is derived.
func (f Field) ReadOnly() bool { return f.Set == nil }

// Unit is one wizard step. A unit reads only its own section of the draft
// and owns the step's validity gate.
type Unit interface {
	Step() domain.Step
	Title() string
	// Fields lists the scalar values the step edits or displays. List-valued
	// sections (contacts, documents, tasks) are edited through the item
	// helpers instead.
	Fields(d domain.Draft) []Field
	// Validate returns the field errors that keep the step from continuing.
	Validate(d domain.Draft) errors.FieldErrors
}

var units = map[domain.Step]Unit{
	domain.StepUpload:      uploadUnit{},
	domain.StepDetails:     detailsUnit{},
	domain.StepDates:       datesUnit{},
	domain.StepDescription: descriptionUnit{},
	domain.StepContract:    contractUnit{},
	domain.StepContacts:    contactsUnit{},
	domain.StepDocuments:   documentsUnit{},
	domain.StepDeadlines:   deadlinesUnit{},
	domain.StepTasks:       tasksUnit{},
	domain.StepSummary:     summaryUnit{},
	domain.StepInfoSheet:   infoSheetUnit{},
}

// UnitFor returns the unit for step s, or nil when s is out of range.
func UnitFor(s domain.Step) Unit { return units[s] }

// Units returns every unit in step order.
func Units() []Unit {
	out := make([]Unit, 0, len(units))
	for _, s := range domain.Steps() {
		out = append(out, units[s])
	}
	return out
}

// Continue is the "Continue" affordance: the current unit validates the
// draft and the controller advances only when the step is complete.
func Continue(ctx context.Context, c *Controller) error {
	if fe := c.Unit().Validate(c.Draft()); len(fe) > 0 {
		return fe
	}
	return c.Next(ctx)
}

// LookupField finds key among the current step's editable fields.
func LookupField(c *Controller, key string) (Field, error) {
	key = strings.TrimSpace(key)
	for _, f := range c.Unit().Fields(c.Draft()) {
		if f.Key == key {
			if f.ReadOnly() {
				return Field{}, fmt.Errorf("%s is derived and cannot be set", key)
			}
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("step %q has no field %q", c.Step(), key)
}

// SetField parses raw into the current step's field key and applies it.
func SetField(ctx context.Context, c *Controller, key, raw string) error {
	f, err := LookupField(c, key)
	if err != nil {
		return err
	}
	patch, err := f.Set(c.Draft(), raw)
	if err != nil {
		return errors.FieldError{Field: key, Message: err.Error()}
	}
	return c.Update(ctx, patch)
}

// ValidateAll runs every gated unit and returns the first incomplete step.
func ValidateAll(d domain.Draft) (domain.Step, errors.FieldErrors) {
	for _, u := range Units() {
		if fe := u.Validate(d); len(fe) > 0 {
			return u.Step(), fe
		}
	}
	return 0, nil
}

// -----------------------------------------------------------------------------
// Field builders
// -----------------------------------------------------------------------------

// section pairs a draft section accessor with the patch that replaces it.
type section[S any] struct {
	get   func(domain.Draft) S
	patch func(S) domain.Patch
}

func textField[S any](sec section[S], key, label string, required bool, at func(*S) *string, after ...func(*S)) Field {
	return Field{
		Key: key, Label: label, Required: required,
		Get: func(d domain.Draft) string {
			s := sec.get(d)
			return *at(&s)
		},
		Set: func(d domain.Draft, raw string) (domain.Patch, error) {
			s := sec.get(d)
			*at(&s) = strings.TrimSpace(raw)
			for _, fn := range after {
				fn(&s)
			}
			return sec.patch(s), nil
		},
	}
}

func dateField[S any](sec section[S], key, label string, required bool, at func(*S) *domain.Date, after ...func(*S)) Field {
	return Field{
		Key: key, Label: label, Required: required,
		Get: func(d domain.Draft) string {
			s := sec.get(d)
			return at(&s).String()
		},
		Set: func(d domain.Draft, raw string) (domain.Patch, error) {
			v, err := domain.ParseDate(raw)
			if err != nil {
				return domain.Patch{}, err
			}
			s := sec.get(d)
			*at(&s) = v
			for _, fn := range after {
				fn(&s)
			}
			return sec.patch(s), nil
		},
	}
}

func moneyField[S any](sec section[S], key, label string, required bool, at func(*S) *domain.Money) Field {
	return Field{
		Key: key, Label: label, Required: required,
		Get: func(d domain.Draft) string {
			s := sec.get(d)
			return at(&s).String()
		},
		Set: func(d domain.Draft, raw string) (domain.Patch, error) {
			v, err := domain.ParseMoney(raw)
			if err != nil {
				return domain.Patch{}, err
			}
			s := sec.get(d)
			*at(&s) = v
			return sec.patch(s), nil
		},
	}
}

func boolField[S any](sec section[S], key, label string, required bool, at func(*S) *bool) Field {
	return Field{
		Key: key, Label: label, Required: required,
		Get: func(d domain.Draft) string {
			s := sec.get(d)
			if *at(&s) {
				return "yes"
			}
			return "no"
		},
		Set: func(d domain.Draft, raw string) (domain.Patch, error) {
			v, err := parseBool(raw)
			if err != nil {
				return domain.Patch{}, err
			}
			s := sec.get(d)
			*at(&s) = v
			return sec.patch(s), nil
		},
	}
}

func derivedField(key, label string, get func(domain.Draft) string) Field {
	return Field{Key: key, Label: label, Get: get}
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes":
		return true, nil
	case "n", "no", "":
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("want yes or no, got %q", raw)
	}
	return v, nil
}

// -----------------------------------------------------------------------------
// Format checks
// -----------------------------------------------------------------------------

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\s\-().]{5,18}[0-9]$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool { return emailPattern.MatchString(strings.TrimSpace(s)) }

// ValidPhone reports whether s looks like a phone number.
func ValidPhone(s string) bool { return phonePattern.MatchString(strings.TrimSpace(s)) }

func checkContact(fe *errors.FieldErrors, prefix string, c domain.Contact) {
	if c.Email != "" && !ValidEmail(c.Email) {
		fe.Add(prefix+"email", "invalid email format")
	}
	if c.Phone != "" && !ValidPhone(c.Phone) {
		fe.Add(prefix+"phone", "invalid phone format")
	}
}
