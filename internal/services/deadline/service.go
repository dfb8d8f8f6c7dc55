package deadline

import (
	"context"
	"sort"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/logging"
)

// Service fetches lien and bond-claim deadlines from the backend.
type Service struct {
	gw     domain.DeadlineGateway
	logger *logging.Logger
}

// New returns a deadline service.
func New(gw domain.DeadlineGateway, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Service{gw: gw, logger: logger.WithComponent("deadline")}
}

// Calculate returns the remedy deadlines for req ordered by date.
func (s *Service) Calculate(ctx context.Context, req domain.DeadlineRequest) ([]domain.Deadline, error) {
	if fe := validate(req.State, req.ProjectType, req.Role, req.CustomerType); len(fe) > 0 {
		return nil, fe
	}
	if len(req.FurnishingDates) == 0 {
		return nil, errors.FieldErrors{{Field: domain.FirstFurnishingKey, Message: "is required"}}
	}
	items, err := s.gw.DeadlineInfo(ctx, req)
	if err != nil {
		return nil, err
	}
	Sort(items)
	s.logger.Debug("deadlines calculated", "state", req.State, "count", len(items))
	return items, nil
}

// RequiredDates returns the furnishing date inputs the jurisdiction needs.
func (s *Service) RequiredDates(ctx context.Context, req domain.RemedyDatesRequest) ([]domain.RemedyDateField, error) {
	if fe := validate(req.State, req.ProjectType, req.Role, req.CustomerType); len(fe) > 0 {
		return nil, fe
	}
	return s.gw.RemedyDates(ctx, req)
}

func validate(state, projectType, role, customerType string) errors.FieldErrors {
	var fe errors.FieldErrors
	fe.Required("state", state)
	fe.Required("project_type", projectType)
	fe.Required("role", role)
	fe.Required("customer_type", customerType)
	return fe
}

// Sort orders deadlines by date, then title. Undated deadlines go last.
func Sort(items []domain.Deadline) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Date.IsZero() != b.Date.IsZero():
			return b.Date.IsZero()
		case a.Date != b.Date:
			return a.Date.Before(b.Date)
		}
		return a.Title < b.Title
	})
}

// Buckets groups deadlines by urgency, keeping their order.
func Buckets(items []domain.Deadline) map[domain.Urgency][]domain.Deadline {
	out := make(map[domain.Urgency][]domain.Deadline, 3)
	for _, d := range items {
		out[d.Urgency()] = append(out[d.Urgency()], d)
	}
	return out
}

// Compile-time assertion that Service implements domain.DeadlineService.
var _ domain.DeadlineService = (*Service)(nil)
