package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
	"liendesk/internal/errors"
	"liendesk/internal/wizard"
)

// Commands that add to or remove from the list-valued sections of the
// draft: staged uploads, contacts, documents and tasks.

func wizardStageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stage <file>...",
		Short: "Stage contract documents on the upload step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			accepted, rejected := appCtx.Documents.Stage(args...)
			if err := wizard.StageFiles(cmd.Context(), c, accepted...); err != nil {
				rejected = append(rejected, err)
			}
			for _, f := range accepted {
				outf(cmd, "Staged %s (%d bytes)\n", f.Name, f.Size)
			}
			for _, err := range rejected {
				fmt.Fprintln(cmd.ErrOrStderr(), "Rejected:", errors.UserMessage(err))
			}
			if len(rejected) > 0 {
				return errors.Join(rejected...)
			}
			return nil
		},
	}
}

func wizardUnstageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unstage <id>",
		Short: "Remove a staged upload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return wizard.UnstageFile(cmd.Context(), c, domain.EntityID(args[0]))
		},
	}
}

func wizardContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Add or remove project contacts",
	}

	var ct domain.Contact
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a project contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			id, err := wizard.AddContact(cmd.Context(), c, ct)
			if err != nil {
				return err
			}
			outf(cmd, "Added contact %s (%s)\n", ct.Name(), id)
			return nil
		},
	}
	add.Flags().StringVar(&ct.Role, "role", "", "contact role, e.g. owner, lender, surety")
	add.Flags().StringVar(&ct.FirstName, "first", "", "first name")
	add.Flags().StringVar(&ct.LastName, "last", "", "last name")
	add.Flags().StringVar(&ct.Company, "company", "", "company")
	add.Flags().StringVar(&ct.Email, "email", "", "email address")
	add.Flags().StringVar(&ct.Phone, "phone", "", "phone number")
	add.Flags().StringVar(&ct.Address, "address", "", "mailing address")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a project contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return wizard.RemoveContact(cmd.Context(), c, domain.EntityID(args[0]))
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func wizardDocumentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Attach or remove project documents",
	}

	add := &cobra.Command{
		Use:   "add <file>...",
		Short: "Attach local files to the documents step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			accepted, rejected := appCtx.Documents.Stage(args...)
			for _, f := range accepted {
				id, err := wizard.AddDocument(cmd.Context(), c, f)
				if err != nil {
					rejected = append(rejected, err)
					continue
				}
				outf(cmd, "Attached %s (%s)\n", f.Name, id)
			}
			for _, err := range rejected {
				fmt.Fprintln(cmd.ErrOrStderr(), "Rejected:", errors.UserMessage(err))
			}
			return errors.Join(rejected...)
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return wizard.RemoveDocument(cmd.Context(), c, domain.EntityID(args[0]))
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func wizardTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add or remove follow-up tasks",
	}

	var (
		t   domain.Task
		due string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a follow-up task",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if t.DueDate, err = domain.ParseDate(due); err != nil {
				return errors.FieldError{Field: "due_date", Message: err.Error()}
			}
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			id, err := wizard.AddTask(cmd.Context(), c, t)
			if err != nil {
				return err
			}
			outf(cmd, "Added task %s (%s)\n", t.Name, id)
			return nil
		},
	}
	add.Flags().StringVar(&t.Name, "name", "", "task name")
	add.Flags().StringVar(&t.ActionID, "action", "", "task action id (see `liendesk tasks actions`)")
	add.Flags().StringVar(&due, "due", "", "due date, YYYY-MM-DD")
	add.Flags().StringVar(&t.Notes, "notes", "", "notes")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openWizard(cmd, false)
			if err != nil {
				return err
			}
			return wizard.RemoveTask(cmd.Context(), c, domain.EntityID(args[0]))
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}
