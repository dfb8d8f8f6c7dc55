package types

// Urgency buckets a deadline by the days left before it.
type Urgency int

const (
	// UrgencySafe means more than 30 days remain.
	UrgencySafe Urgency = iota
	// UrgencySoon means 0 to 30 days remain.
	UrgencySoon
	// UrgencyOverdue means the date has passed.
	UrgencyOverdue
)

// SoonThresholdDays is the largest daysRemaining still considered "soon".
const SoonThresholdDays = 30

// UrgencyFor buckets daysRemaining: >30 safe, 0..30 soon, <0 overdue.
func UrgencyFor(daysRemaining int) Urgency {
	switch {
	case daysRemaining < 0:
		return UrgencyOverdue
	case daysRemaining <= SoonThresholdDays:
		return UrgencySoon
	default:
		return UrgencySafe
	}
}

// String returns "safe", "soon" or "overdue".
func (u Urgency) String() string {
	switch u {
	case UrgencySoon:
		return "soon"
	case UrgencyOverdue:
		return "overdue"
	default:
		return "safe"
	}
}

// DeadlineRequest is the body of POST /deadline-info.
type DeadlineRequest struct {
	State           string          `json:"state"`
	ProjectType     string          `json:"project_type"`
	Role            string          `json:"role"`
	CustomerType    string          `json:"customer_type"`
	FurnishingDates map[string]Date `json:"furnishing_dates"`
}

// Deadline is one remedy date computed by the backend.
type Deadline struct {
	Title         string `json:"title"`
	Date          Date   `json:"date"`
	DaysRemaining int    `json:"daysRemaining"`
	Requirement   string `json:"requirement"`
}

// Urgency buckets the deadline.
func (d Deadline) Urgency() Urgency { return UrgencyFor(d.DaysRemaining) }

// RemedyDatesRequest is the body of POST /remedy-dates.
type RemedyDatesRequest struct {
	State        string `json:"state"`
	ProjectType  string `json:"project_type"`
	Role         string `json:"role"`
	CustomerType string `json:"customer_type"`
}

// RemedyDateField is a furnishing date input the backend needs for a
// jurisdiction, e.g. "last_furnishing_date".
type RemedyDateField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
}
