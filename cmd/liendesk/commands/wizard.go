package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/render"
	"liendesk/internal/wizard"
)

func wizardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Create a project step by step",
		Long: `The new-project wizard has eleven steps. Every change is saved to the
local draft store, so each subcommand picks up where the last one left off.
"next" only advances when the current step is complete; "goto" can jump to
any step already reached.`,
	}
	cmd.AddCommand(
		wizardStartCmd(),
		wizardStatusCmd(),
		wizardShowCmd(),
		wizardSetCmd(),
		wizardNextCmd(),
		wizardBackCmd(),
		wizardGotoCmd(),
		wizardDeadlinesCmd(),
		wizardSaveExitCmd(),
		wizardCancelCmd(),
		wizardSubmitCmd(),
		wizardStageCmd(),
		wizardUnstageCmd(),
		wizardContactCmd(),
		wizardDocumentCmd(),
		wizardTaskCmd(),
		wizardRunCmd(),
		wizardTUICmd(),
		wizardEditCmd(),
	)
	return cmd
}

// openWizard resumes the local draft. The session is loaded when present so
// remote calls (server drafts, fetches) carry the token; withSession makes
// it mandatory.
func openWizard(cmd *cobra.Command, withSession bool) (*wizard.Controller, error) {
	if err := login(); err != nil && withSession {
		return nil, err
	}
	return appCtx.Wizard(cmd.Context())
}

func printStatus(cmd *cobra.Command, c *wizard.Controller) error {
	d := c.Draft()
	fe := c.Unit().Validate(d)
	view := struct {
		Step       domain.Step `json:"step"`
		Name       string      `json:"name"`
		MaxReached domain.Step `json:"max_reached"`
		Complete   bool        `json:"complete"`
		Project    string      `json:"project,omitempty"`
		ProjectID  string      `json:"project_id,omitempty"`
	}{c.Step(), c.Step().String(), c.MaxReached(), len(fe) == 0, d.Details.ProjectName, d.ProjectID.String()}
	return emit(cmd, view, func(w io.Writer) {
		fmt.Fprintln(w, render.Progress(c.Step(), c.MaxReached()))
		fmt.Fprintf(w, "Step %d of %d: %s\n", int(c.Step()), len(domain.Steps()), c.Unit().Title())
		if len(fe) > 0 {
			fmt.Fprintln(w, render.Muted.Render("Incomplete: "+fe.Error()))
		}
	})
}

func printUnit(cmd *cobra.Command, c *wizard.Controller, fe errors.FieldErrors) error {
	d := c.Draft()
	return emit(cmd, d, func(w io.Writer) {
		fmt.Fprintln(w, render.Unit(c.Unit(), d, fe))
		switch c.Step() {
		case domain.StepUpload:
			for _, f := range d.Upload.Files {
				fmt.Fprintf(w, "  %s  %s (%d bytes)\n", f.ID, f.Name, f.Size)
			}
		case domain.StepContacts:
			for _, ct := range d.Contacts.Contacts {
				fmt.Fprintf(w, "  %s  %-10s %s %s\n", ct.ID, ct.Role, ct.Name(), render.Muted.Render(ct.Email))
			}
		case domain.StepDocuments:
			for _, doc := range d.Documents.Documents {
				fmt.Fprintf(w, "  %s  %s\n", doc.ID, doc.Name)
			}
		case domain.StepDeadlines:
			fmt.Fprintln(w, render.Deadlines(d.Deadlines.Items))
		case domain.StepTasks:
			for _, t := range d.Tasks.Tasks {
				fmt.Fprintf(w, "  %s  %s  due %s\n", t.ID, t.Name, t.DueDate)
			}
		case domain.StepSummary:
			fmt.Fprintln(w, render.Summary(d))
		}
	})
}

// enterStep runs the fetches a step depends on when a session is available.
// Failures are reported but do not undo the move.
func enterStep(cmd *cobra.Command, c *wizard.Controller) {
	if appCtx.Gateway.Token() == "" {
		return
	}
	var err error
	switch c.Step() {
	case domain.StepDates:
		err = refreshRemedyFields(cmd, c)
	case domain.StepDeadlines:
		err = refreshDeadlines(cmd, c)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", errors.UserMessage(err))
	}
}

func refreshRemedyFields(cmd *cobra.Command, c *wizard.Controller) error {
	fields, err := appCtx.Deadlines.RequiredDates(cmd.Context(), c.Draft().RemedyDatesRequest())
	if err != nil {
		return err
	}
	return wizard.SetRemedyFields(cmd.Context(), c, fields)
}

func refreshDeadlines(cmd *cobra.Command, c *wizard.Controller) error {
	items, err := appCtx.Deadlines.Calculate(cmd.Context(), c.Draft().DeadlineRequest())
	if err != nil {
		return err
	}
	return wizard.SetDeadlines(cmd.Context(), c, items, domain.Today())
}

func wizardStartCmd() *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new project or resume the saved draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			had, err := appCtx.HasDraft(cmd.Context())
			if err != nil {
				return err
			}
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			switch {
			case had && fresh:
				if err := c.Cancel(cmd.Context()); err != nil {
					return err
				}
				outln(cmd, "Previous draft discarded.")
			case had:
				outf(cmd, "Resuming draft at step %d (%s).\n", int(c.Step()), c.Step())
			}
			return printStatus(cmd, c)
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "discard any saved draft first")
	return cmd
}

func wizardStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current step and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return printStatus(cmd, c)
		},
	}
}

func wizardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the fields of the current step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return printUnit(cmd, c, nil)
		},
	}
}

func wizardSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set key=value...",
		Short: "Set fields of the current step",
		Example: `  liendesk wizard set project_name="Harbor Tower" country=US state=TX
  liendesk wizard set start_date=2024-01-15`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			var fe errors.FieldErrors
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("%q: want key=value", arg)
				}
				if err := wizard.SetField(cmd.Context(), c, k, v); err != nil {
					var one errors.FieldError
					if !errors.As(err, &one) {
						return err
					}
					fe = append(fe, one)
				}
			}
			if c.Step() == domain.StepDates && len(c.Draft().Dates.RemedyFields) == 0 {
				enterStep(cmd, c)
			}
			if err := printUnit(cmd, c, fe); err != nil {
				return err
			}
			return fe.Err()
		},
	}
}

func wizardNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Continue to the next step once the current one is complete",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			if err := wizard.Continue(cmd.Context(), c); err != nil {
				var fe errors.FieldErrors
				if errors.As(err, &fe) {
					if perr := printUnit(cmd, c, fe); perr != nil {
						return perr
					}
					return fmt.Errorf("%w: %w", errors.ErrStepIncomplete, fe)
				}
				return err
			}
			enterStep(cmd, c)
			return printUnit(cmd, c, nil)
		},
	}
}

func wizardBackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "back",
		Short: "Go back one step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			if err := c.Back(cmd.Context()); err != nil {
				return err
			}
			return printUnit(cmd, c, nil)
		},
	}
}

func wizardGotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <step>",
		Short: "Jump to a step already reached (number or name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := domain.ParseStep(args[0])
			if err != nil {
				return err
			}
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			if err := c.GoTo(cmd.Context(), step); err != nil {
				return err
			}
			enterStep(cmd, c)
			return printUnit(cmd, c, nil)
		},
	}
}

func wizardDeadlinesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deadlines",
		Short: "Recalculate the lien deadlines for the draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, true)
			if err != nil {
				return err
			}
			if err := refreshDeadlines(cmd, c); err != nil {
				return err
			}
			items := c.Draft().Deadlines.Items
			return emit(cmd, items, func(w io.Writer) {
				fmt.Fprintln(w, render.Deadlines(items))
			})
		},
	}
}

func wizardSaveExitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save-exit",
		Short: "Save the draft to the server to finish later",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, true)
			if err != nil {
				return err
			}
			if err := c.SaveAndExit(cmd.Context()); err != nil {
				return err
			}
			outf(cmd, "Draft saved at step %d (%s).\n", int(c.Step()), c.Step())
			return nil
		},
	}
}

func wizardCancelCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Discard the draft and start over",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				ok, err := askConfirm("Discard the draft? This cannot be undone.", false)
				if err != nil || !ok {
					return err
				}
			}
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			if err := c.Cancel(cmd.Context()); err != nil {
				return err
			}
			outln(cmd, "Draft discarded.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func wizardSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Create the project from the information sheet step",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, true)
			if err != nil {
				return err
			}
			return submit(cmd, c)
		},
	}
}

func submit(cmd *cobra.Command, c *wizard.Controller) error {
	name := c.Draft().Details.ProjectName
	id, err := c.Submit(cmd.Context())
	if err != nil {
		return err
	}
	if err := appCtx.Auth.Remember(domain.ProjectSummary{ID: id, Name: name}); err != nil {
		appCtx.Logger.Warn("remember project", "project_id", id.String(), "error", err)
	}
	outf(cmd, "Project %s saved (%s).\n", name, id)
	return nil
}
