package catalog

import (
	"context"

	"liendesk/internal/domain"
)

// Service loads the master data the Details step chooses from.
type Service struct {
	gw domain.CatalogGateway
}

// New returns a catalog service.
func New(gw domain.CatalogGateway) *Service { return &Service{gw: gw} }

// Load fetches the option lists for d. States need a country and customer
// types need a role; those lists stay empty until the parent is chosen.
func (s *Service) Load(ctx context.Context, d domain.DetailsSection) (domain.Catalog, error) {
	var c domain.Catalog
	var err error
	if c.Countries, err = s.gw.Countries(ctx); err != nil {
		return c, err
	}
	if c.ProjectTypes, err = s.gw.ProjectTypes(ctx); err != nil {
		return c, err
	}
	if c.Roles, err = s.gw.ProjectRoles(ctx); err != nil {
		return c, err
	}
	if d.CountryID != "" {
		if c.States, err = s.gw.States(ctx, d.CountryID); err != nil {
			return c, err
		}
	}
	if d.RoleID != "" {
		req := domain.RoleCustomersRequest{RoleID: d.RoleID, ProjectTypeID: d.ProjectTypeID}
		if c.CustomerTypes, err = s.gw.CustomerTypes(ctx, req); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Options returns the choices for a Details field key, or nil when the
// field is free text.
func Options(c domain.Catalog, key string) []domain.Option {
	switch key {
	case "country":
		return c.Countries
	case "state":
		return c.States
	case "project_type":
		return c.ProjectTypes
	case "role":
		return c.Roles
	case "customer_type":
		return c.CustomerTypes
	}
	return nil
}
