package contact

import (
	"context"
	"strings"

	"github.com/sahilm/fuzzy"

	"liendesk/internal/domain"
)

// Service lists project contacts and searches them client-side.
type Service struct {
	gw domain.ContactGateway
}

// New returns a contact service.
func New(gw domain.ContactGateway) *Service { return &Service{gw: gw} }

// List returns the contacts of project id, or every contact of the account
// when id is empty.
func (s *Service) List(ctx context.Context, id domain.ProjectID) ([]domain.Contact, error) {
	return s.gw.ProjectContacts(ctx, id)
}

// Search lists contacts and ranks them against query.
func (s *Service) Search(ctx context.Context, id domain.ProjectID, query string) ([]domain.Contact, error) {
	all, err := s.List(ctx, id)
	if err != nil {
		return nil, err
	}
	return Match(all, query), nil
}

// Match returns the contacts fuzzily matching query, best match first. An
// empty query returns contacts unchanged.
func Match(contacts []domain.Contact, query string) []domain.Contact {
	query = strings.TrimSpace(query)
	if query == "" {
		return contacts
	}
	matches := fuzzy.FindFrom(query, searchable(contacts))
	out := make([]domain.Contact, 0, len(matches))
	for _, m := range matches {
		out = append(out, contacts[m.Index])
	}
	return out
}

// searchable exposes the name, company and email of each contact to fuzzy.
type searchable []domain.Contact

func (s searchable) String(i int) string {
	c := s[i]
	return strings.Join([]string{c.Name(), c.Company, c.Email}, " ")
}

func (s searchable) Len() int { return len(s) }
