package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/render"
)

func projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Show saved projects",
	}

	show := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its contacts, documents and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			p, err := appCtx.Gateway.ProjectInfo(cmd.Context(), domain.ProjectID(args[0]))
			if err != nil {
				return err
			}
			return emit(cmd, p, func(w io.Writer) {
				fmt.Fprintln(w, render.Title.Render(p.Details.ProjectName)+" "+render.Muted.Render(p.ID.String()))
				fmt.Fprintln(w, render.Summary(p.Draft()))
			})
		},
	}

	recent := &cobra.Command{
		Use:   "recent",
		Short: "List projects recently created or edited here",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := appCtx.Authenticate()
			if err != nil {
				return err
			}
			return emit(cmd, sess.ActiveProjects, func(w io.Writer) {
				for _, p := range sess.ActiveProjects {
					fmt.Fprintf(w, "%s  %s\n", p.ID, p.Name)
				}
			})
		},
	}

	cmd.AddCommand(show, recent)
	return cmd
}
