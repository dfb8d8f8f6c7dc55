package backend

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"

	"liendesk/internal/domain"
)

//go:embed seed.toml
var defaultSeed string

type seedOption struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type seedState struct {
	Country string `toml:"country"`
	ID      string `toml:"id"`
	Name    string `toml:"name"`
}

type seedRole struct {
	ID        string   `toml:"id"`
	Name      string   `toml:"name"`
	Customers []string `toml:"customers"`
}

type seedRoleOverride struct {
	Role        string   `toml:"role"`
	ProjectType string   `toml:"project_type"`
	Customers   []string `toml:"customers"`
}

type seedRemedyField struct {
	State    string `toml:"state"`
	ID       string `toml:"id"`
	Label    string `toml:"label"`
	Required bool   `toml:"required"`
}

// rule is one fixture deadline: Days after the Anchor furnishing date. An
// empty filter list matches everything.
type rule struct {
	Title        string   `toml:"title"`
	Requirement  string   `toml:"requirement"`
	Anchor       string   `toml:"anchor"`
	Days         int      `toml:"days"`
	States       []string `toml:"states"`
	Roles        []string `toml:"roles"`
	ProjectTypes []string `toml:"project_types"`
}

func (r rule) matches(state, role, projectType string) bool {
	in := func(list []string, v string) bool { return len(list) == 0 || slices.Contains(list, v) }
	return in(r.States, state) && in(r.Roles, role) && in(r.ProjectTypes, projectType)
}

// Seed is the master data and remedy rule table the backend serves.
type Seed struct {
	Countries     []seedOption       `toml:"country"`
	States        []seedState        `toml:"state"`
	ProjectTypes  []seedOption       `toml:"project_type"`
	Roles         []seedRole         `toml:"role"`
	RoleOverrides []seedRoleOverride `toml:"role_override"`
	CustomerTypes []seedOption       `toml:"customer_type"`
	TaskActions   []seedOption       `toml:"task_action"`
	RemedyFields  []seedRemedyField  `toml:"remedy_field"`
	Rules         []rule             `toml:"rule"`
}

// ParseSeed decodes a TOML seed document.
func ParseSeed(data string) (*Seed, error) {
	var s Seed
	md, err := toml.Decode(data, &s)
	if err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, fmt.Errorf("decode seed: unknown key %s", undec[0])
	}
	for _, r := range s.Rules {
		if r.Anchor == "" || r.Title == "" {
			return nil, fmt.Errorf("decode seed: rule %q needs a title and an anchor", r.Title)
		}
	}
	return &s, nil
}

// DefaultSeed returns the embedded seed.
func DefaultSeed() *Seed {
	s, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return s
}

func options(in []seedOption) []domain.Option {
	out := make([]domain.Option, 0, len(in))
	for _, o := range in {
		out = append(out, domain.Option{ID: o.ID, Name: o.Name})
	}
	return out
}

func (s *Seed) countries() []domain.Option    { return options(s.Countries) }
func (s *Seed) projectTypes() []domain.Option { return options(s.ProjectTypes) }
func (s *Seed) taskActions() []domain.Option  { return options(s.TaskActions) }

func (s *Seed) roles() []domain.Option {
	out := make([]domain.Option, 0, len(s.Roles))
	for _, r := range s.Roles {
		out = append(out, domain.Option{ID: r.ID, Name: r.Name})
	}
	return out
}

func (s *Seed) states(country string) []domain.Option {
	out := []domain.Option{}
	for _, st := range s.States {
		if st.Country == country {
			out = append(out, domain.Option{ID: st.ID, Name: st.Name})
		}
	}
	return out
}

func (s *Seed) hasState(id string) bool {
	return slices.ContainsFunc(s.States, func(st seedState) bool { return st.ID == id })
}

// customerTypes returns the customer types allowed for role, honouring a
// project-type override. An unknown role yields ok=false.
func (s *Seed) customerTypes(role, projectType string) ([]domain.Option, bool) {
	i := slices.IndexFunc(s.Roles, func(r seedRole) bool { return r.ID == role })
	if i < 0 {
		return nil, false
	}
	ids := s.Roles[i].Customers
	for _, o := range s.RoleOverrides {
		if o.Role == role && o.ProjectType == projectType {
			ids = o.Customers
		}
	}
	out := make([]domain.Option, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Option{ID: id, Name: domain.NameOf(options(s.CustomerTypes), id)})
	}
	return out, true
}

func (s *Seed) remedyFields(state string) []domain.RemedyDateField {
	out := []domain.RemedyDateField{}
	for _, f := range s.RemedyFields {
		if f.State == state {
			out = append(out, domain.RemedyDateField{ID: f.ID, Label: f.Label, Required: f.Required})
		}
	}
	return out
}

// deadlines applies the rule table to req relative to today. Rules whose
// anchor date is missing are skipped.
func (s *Seed) deadlines(req domain.DeadlineRequest, today domain.Date) []domain.Deadline {
	out := []domain.Deadline{}
	for _, r := range s.Rules {
		if !r.matches(req.State, req.Role, req.ProjectType) {
			continue
		}
		anchor, ok := req.FurnishingDates[r.Anchor]
		if !ok || anchor.IsZero() {
			continue
		}
		due := anchor.AddDays(r.Days)
		out = append(out, domain.Deadline{
			Title:         r.Title,
			Date:          due,
			DaysRemaining: today.DaysUntil(due),
			Requirement:   r.Requirement,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
