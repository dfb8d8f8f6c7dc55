package commands

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/render"
	catalogsvc "liendesk/internal/services/catalog"
	"liendesk/internal/tui"
	"liendesk/internal/wizard"
)

const (
	choiceContinue = "Continue"
	choiceBack     = "Back"
	choiceSubmit   = "Submit"
	choiceSave     = "Save & exit"
	choiceCancel   = "Cancel wizard"
	choiceQuit     = "Quit (keep local draft)"
)

func wizardRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Walk through the wizard with interactive prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, true)
			if err != nil {
				return err
			}
			return runPrompts(cmd, c)
		},
	}
}

func wizardTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the full-screen wizard",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, true)
			if err != nil {
				return err
			}
			return runTUI(cmd, c)
		},
	}
}

func wizardEditCmd() *cobra.Command {
	var prompts bool
	cmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Edit a saved project in the wizard",
		Long: `Opens an existing project with every step reachable. Edits are held in
memory only and are sent to the server on submit; quitting discards them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := login(); err != nil {
				return err
			}
			c, err := appCtx.EditProject(cmd.Context(), domain.ProjectID(args[0]))
			if err != nil {
				return err
			}
			if prompts {
				return runPrompts(cmd, c)
			}
			return runTUI(cmd, c)
		},
	}
	cmd.Flags().BoolVar(&prompts, "prompts", false, "use line prompts instead of the full-screen wizard")
	return cmd
}

func runTUI(cmd *cobra.Command, c *wizard.Controller) error {
	id, err := tui.Run(cmd.Context(), c, appCtx.Deadlines)
	if err != nil {
		return err
	}
	if id != "" {
		name := c.Draft().Details.ProjectName
		if err := appCtx.Auth.Remember(domain.ProjectSummary{ID: id, Name: name}); err != nil {
			appCtx.Logger.Warn("remember project", "project_id", id.String(), "error", err)
		}
		outf(cmd, "Project %s saved (%s).\n", name, id)
	}
	return nil
}

// runPrompts asks for each field of the current step, then offers the
// navigation choices, until the user submits, saves or quits.
func runPrompts(cmd *cobra.Command, c *wizard.Controller) error {
	ctx := cmd.Context()
	entered := domain.Step(0)
	for {
		if c.Step() != entered {
			entered = c.Step()
			enterStep(cmd, c)
		}
		outln(cmd, "\n"+render.Progress(c.Step(), c.MaxReached()))
		outln(cmd, render.Title.Render(fmt.Sprintf("Step %d: %s", int(c.Step()), c.Unit().Title())))

		if err := askStep(cmd, c); err != nil {
			return quitOnInterrupt(cmd, err)
		}
		if err := printUnit(cmd, c, c.Unit().Validate(c.Draft())); err != nil {
			return err
		}

		choices := []string{choiceContinue}
		if c.Step() == domain.StepInfoSheet {
			choices = []string{choiceSubmit}
		}
		if c.Step() > domain.FirstStep {
			choices = append(choices, choiceBack)
		}
		if !c.Editing() {
			choices = append(choices, choiceSave, choiceCancel)
		}
		choices = append(choices, choiceQuit)

		choice, err := askChoice("Next", choices)
		if err != nil {
			return quitOnInterrupt(cmd, err)
		}
		switch choice {
		case choiceContinue:
			if err := wizard.Continue(ctx, c); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.Error.Render(errors.UserMessage(err)))
			}
		case choiceBack:
			if err := c.Back(ctx); err != nil {
				return err
			}
		case choiceSubmit:
			if err := submit(cmd, c); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.Error.Render(errors.UserMessage(err)))
				continue
			}
			return nil
		case choiceSave:
			if err := c.SaveAndExit(ctx); err != nil {
				return err
			}
			outln(cmd, "Draft saved.")
			return nil
		case choiceCancel:
			ok, err := askConfirm("Discard the draft? This cannot be undone.", false)
			if err != nil {
				return quitOnInterrupt(cmd, err)
			}
			if ok {
				if err := c.Cancel(ctx); err != nil {
					return err
				}
				outln(cmd, "Draft discarded.")
				return nil
			}
		case choiceQuit:
			return nil
		}
	}
}

func quitOnInterrupt(cmd *cobra.Command, err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		outln(cmd, "Interrupted; the draft is kept.")
		return nil
	}
	return err
}

// askStep prompts for every editable field of the current step and for
// the step's list items.
func askStep(cmd *cobra.Command, c *wizard.Controller) error {
	ctx := cmd.Context()
	for _, f := range c.Unit().Fields(c.Draft()) {
		if f.ReadOnly() {
			outf(cmd, "%s: %s\n", f.Label, f.Get(c.Draft()))
			continue
		}
		for {
			raw, err := askField(cmd, c, f)
			if err != nil {
				return err
			}
			if err := wizard.SetField(ctx, c, f.Key, raw); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), render.Error.Render(errors.UserMessage(err)))
				continue
			}
			break
		}
	}

	switch c.Step() {
	case domain.StepUpload:
		return askFiles(cmd, "Contract files to upload (comma separated, blank to skip)", func(fs []domain.PendingFile) error {
			return wizard.StageFiles(ctx, c, fs...)
		})
	case domain.StepDocuments:
		return askFiles(cmd, "Documents to attach (comma separated, blank to skip)", func(fs []domain.PendingFile) error {
			var errs []error
			for _, f := range fs {
				if _, err := wizard.AddDocument(ctx, c, f); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		})
	case domain.StepContacts:
		return askRepeated("Add a project contact?", func() error {
			var ct domain.Contact
			qs := []*survey.Question{
				{Name: "Role", Prompt: &survey.Input{Message: "Role"}},
				{Name: "FirstName", Prompt: &survey.Input{Message: "First name"}},
				{Name: "LastName", Prompt: &survey.Input{Message: "Last name"}},
				{Name: "Company", Prompt: &survey.Input{Message: "Company"}},
				{Name: "Email", Prompt: &survey.Input{Message: "Email"}},
				{Name: "Phone", Prompt: &survey.Input{Message: "Phone"}},
			}
			if err := survey.Ask(qs, &ct, promptIO.opts()...); err != nil {
				return err
			}
			_, err := wizard.AddContact(ctx, c, ct)
			return err
		})
	case domain.StepTasks:
		return askRepeated("Add a follow-up task?", func() error {
			var t domain.Task
			var due string
			if err := askString(&t.Name, "Task", "", true); err != nil {
				return err
			}
			if err := askString(&due, "Due date (YYYY-MM-DD)", "", true); err != nil {
				return err
			}
			d, err := domain.ParseDate(due)
			if err != nil {
				return err
			}
			t.DueDate = d
			_, err = wizard.AddTask(ctx, c, t)
			return err
		})
	}
	return nil
}

// askField offers catalog choices for the Details selects and a text input
// for everything else.
func askField(cmd *cobra.Command, c *wizard.Controller, f wizard.Field) (string, error) {
	current := f.Get(c.Draft())
	if c.Step() == domain.StepDetails {
		cat, err := appCtx.Catalog.Load(cmd.Context(), c.Draft().Details)
		if err != nil {
			return "", err
		}
		if opts := catalogsvc.Options(cat, f.Key); len(opts) > 0 {
			return askOption(f.Label, opts, current)
		}
	}
	label := f.Label
	if f.Required {
		label += " *"
	}
	raw := ""
	err := survey.AskOne(&survey.Input{Message: label, Default: current}, &raw, promptIO.opts()...)
	return raw, err
}

func askFiles(cmd *cobra.Command, message string, add func([]domain.PendingFile) error) error {
	var raw string
	if err := survey.AskOne(&survey.Input{Message: message}, &raw, promptIO.opts()...); err != nil {
		return err
	}
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	accepted, rejected := appCtx.Documents.Stage(paths...)
	if err := add(accepted); err != nil {
		rejected = append(rejected, err)
	}
	for _, err := range rejected {
		fmt.Fprintln(cmd.ErrOrStderr(), render.Error.Render(errors.UserMessage(err)))
	}
	return nil
}

// askRepeated runs add while the user confirms. Field errors from add are
// shown and the item is asked again.
func askRepeated(question string, add func() error) error {
	for {
		more, err := askConfirm(question, false)
		if err != nil || !more {
			return err
		}
		if err := add(); err != nil {
			if errors.Is(err, terminal.InterruptErr) {
				return err
			}
			fmt.Fprintln(promptIO.Err, render.Error.Render(errors.UserMessage(err)))
		}
	}
}
