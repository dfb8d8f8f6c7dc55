package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/render"
	documentsvc "liendesk/internal/services/document"
)

// Commands over records already saved on the server: contacts, documents
// and tasks.

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List and search saved contacts",
	}

	var project string
	printContacts := func(cmd *cobra.Command, cs []domain.Contact) error {
		return emit(cmd, cs, func(w io.Writer) {
			for _, c := range cs {
				fmt.Fprintf(w, "%s  %-10s %-24s %s\n", c.ID, c.Role, c.Name(), render.Muted.Render(c.Email))
			}
		})
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List contacts of a project, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			cs, err := appCtx.Contacts.List(cmd.Context(), domain.ProjectID(project))
			if err != nil {
				return err
			}
			return printContacts(cmd, cs)
		},
	}

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search contacts by name, company or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			cs, err := appCtx.Contacts.Search(cmd.Context(), domain.ProjectID(project), args[0])
			if err != nil {
				return err
			}
			return printContacts(cmd, cs)
		},
	}

	cmd.PersistentFlags().StringVar(&project, "project", "", "limit to one project id")
	cmd.AddCommand(list, search)
	return cmd
}

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List, upload and delete project documents",
	}

	var match string
	list := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List documents of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			docs, err := appCtx.Gateway.Documents(cmd.Context(), domain.ProjectID(args[0]))
			if err != nil {
				return err
			}
			if docs, err = documentsvc.Filter(docs, match); err != nil {
				return err
			}
			return emit(cmd, docs, func(w io.Writer) {
				for _, d := range docs {
					fmt.Fprintf(w, "%s  %-32s %8d  %s\n", d.ID, d.Name, d.Size, render.Muted.Render(d.Type))
				}
			})
		},
	}
	list.Flags().StringVar(&match, "match", "", "glob over document names, e.g. '*.pdf'")

	upload := &cobra.Command{
		Use:   "upload <project-id> <file>...",
		Short: "Upload files to a project",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			accepted, rejected := appCtx.Documents.Stage(args[1:]...)
			if len(rejected) > 0 {
				return rejected[0]
			}
			docs, err := appCtx.Documents.Upload(cmd.Context(), domain.ProjectID(args[0]), accepted)
			if err != nil {
				return err
			}
			return emit(cmd, docs, func(w io.Writer) {
				for _, d := range docs {
					fmt.Fprintf(w, "Uploaded %s (%s)\n", d.Name, d.ID)
				}
			})
		},
	}

	del := &cobra.Command{
		Use:   "delete <project-id> <document-id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			req := domain.DeleteDocumentRequest{ProjectID: domain.ProjectID(args[0]), DocumentID: domain.EntityID(args[1])}
			if err := appCtx.Gateway.DeleteDocument(cmd.Context(), req); err != nil {
				return err
			}
			outln(cmd, "Document deleted")
			return nil
		},
	}

	cmd.AddCommand(list, upload, del)
	return cmd
}

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and count follow-up tasks",
	}

	var filter domain.TaskFilter
	var project string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			filter.ProjectID = domain.ProjectID(project)
			tasks, err := appCtx.Gateway.Tasks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			today := domain.Today()
			return emit(cmd, tasks, func(w io.Writer) {
				for _, t := range tasks {
					state := "open"
					switch {
					case t.Completed:
						state = "done"
					case t.DueDate.Before(today):
						state = render.Error.Render("overdue")
					}
					fmt.Fprintf(w, "%s  %s  %-7s %s\n", t.ID, t.DueDate, state, t.Name)
				}
			})
		},
	}
	list.Flags().StringVar(&filter.Search, "search", "", "match name or notes")
	list.Flags().BoolVar(&filter.Open, "open", false, "only tasks not completed")

	count := &cobra.Command{
		Use:   "count",
		Short: "Count total, open and overdue tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			n, err := appCtx.Gateway.TaskCount(cmd.Context(), domain.ProjectID(project))
			if err != nil {
				return err
			}
			return emit(cmd, n, func(w io.Writer) {
				fmt.Fprintf(w, "%d tasks, %d open, %d overdue\n", n.Total, n.Open, n.Overdue)
			})
		},
	}

	show := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			t, err := appCtx.Gateway.Task(cmd.Context(), domain.EntityID(args[0]))
			if err != nil {
				return err
			}
			return emit(cmd, t, func(w io.Writer) {
				fmt.Fprintf(w, "%s\n  due %s  project %s\n", render.Label.Render(t.Name), t.DueDate, t.ProjectID)
				if t.Notes != "" {
					fmt.Fprintln(w, "  "+t.Notes)
				}
			})
		},
	}

	actions := &cobra.Command{
		Use:   "actions",
		Short: "List task action types",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			opts, err := appCtx.Gateway.TaskActions(cmd.Context())
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

	cmd.PersistentFlags().StringVar(&project, "project", "", "limit to one project id")
	cmd.AddCommand(list, count, show, actions)
	return cmd
}
