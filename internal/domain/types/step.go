package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Step identifies one screen of the project wizard. Steps are ordered;
// the numeric value is the 1-based position shown to the user.
type Step int

const (
	StepUpload Step = iota + 1
	StepDetails
	StepDates
	StepDescription
	StepContract
	StepContacts
	StepDocuments
	StepDeadlines
	StepTasks
	StepSummary
	StepInfoSheet
)

// FirstStep and LastStep bound the wizard.
const (
	FirstStep = StepUpload
	LastStep  = StepInfoSheet
)

var stepNames = [...]string{
	StepUpload:      "upload",
	StepDetails:     "details",
	StepDates:       "dates",
	StepDescription: "description",
	StepContract:    "contract",
	StepContacts:    "contacts",
	StepDocuments:   "documents",
	StepDeadlines:   "deadlines",
	StepTasks:       "tasks",
	StepSummary:     "summary",
	StepInfoSheet:   "info-sheet",
}

// Steps returns every step in order.
func Steps() []Step {
	out := make([]Step, 0, int(LastStep))
	for s := FirstStep; s <= LastStep; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s is within FirstStep..LastStep.
func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

// String returns the step's short name, e.g. "dates".
func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// ParseStep accepts a step number ("3") or name ("dates").
func ParseStep(v string) (Step, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if n, err := strconv.Atoi(v); err == nil {
		s := Step(n)
		if !s.Valid() {
			return 0, fmt.Errorf("step %d is outside %d..%d", n, FirstStep, LastStep)
		}
		return s, nil
	}
	for s := FirstStep; s <= LastStep; s++ {
		if stepNames[s] == v {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", v)
}
