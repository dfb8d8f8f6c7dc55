package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List master data: countries, states, project types and roles",
	}

	list := func(use, short string, args cobra.PositionalArgs, fetch func(ctx context.Context, args []string) ([]domain.Option, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  args,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := login(); err != nil {
					return err
				}
				opts, err := fetch(cmd.Context(), args)
				if err != nil {
					return err
				}
				return emit(cmd, opts, func(w io.Writer) {
					for _, o := range opts {
						fmt.Fprintf(w, "%-14s %s\n", o.ID, o.Name)
					}
				})
			},
		}
	}

	var projectType string
	customers := list("customer-types <role>", "Customer types allowed for a role", cobra.ExactArgs(1),
		func(ctx context.Context, args []string) ([]domain.Option, error) {
			return appCtx.Gateway.CustomerTypes(ctx, domain.RoleCustomersRequest{RoleID: args[0], ProjectTypeID: projectType})
		})
	customers.Flags().StringVar(&projectType, "project-type", "", "project type id; some roles depend on it")

	cmd.AddCommand(
		list("countries", "List countries", cobra.NoArgs, func(ctx context.Context, _ []string) ([]domain.Option, error) {
			return appCtx.Gateway.Countries(ctx)
		}),
		list("states <country>", "List states of a country", cobra.ExactArgs(1), func(ctx context.Context, args []string) ([]domain.Option, error) {
			return appCtx.Gateway.States(ctx, args[0])
		}),
		list("project-types", "List project types", cobra.NoArgs, func(ctx context.Context, _ []string) ([]domain.Option, error) {
			return appCtx.Gateway.ProjectTypes(ctx)
		}),
		list("roles", "List project roles", cobra.NoArgs, func(ctx context.Context, _ []string) ([]domain.Option, error) {
			return appCtx.Gateway.ProjectRoles(ctx)
		}),
		customers,
	)
	return cmd
}
