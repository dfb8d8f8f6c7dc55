package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"liendesk/internal/app"
	"liendesk/internal/errors"
)

var (
	home       string
	passphrase string
	output     string
	appCtx     *app.App
)

// Execute runs the CLI and prints a user-facing message on failure.
func Execute() error {
	root := newRootCmd()
	if err := run(root); err != nil {
		msg := errors.UserMessage(err)
		if msg == errors.GenericMessage {
			msg = err.Error()
		}
		fmt.Fprintln(root.ErrOrStderr(), "Error:", msg)
		return err
	}
	return nil
}

// run executes root and releases the app context whether or not the
// command succeeded.
func run(root *cobra.Command) error {
	err := root.Execute()
	if appCtx != nil {
		if cerr := appCtx.Close(); cerr != nil && err == nil {
			err = cerr
		}
		appCtx = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "liendesk",
		Short:         "Track construction projects and lien deadlines",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".liendesk")
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}
			if passphrase == "" {
				passphrase = os.Getenv("LIENDESK_PASSPHRASE")
			}
			switch output {
			case outputText, outputJSON, outputYAML:
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", output)
			}

			cfg, err := app.LoadConfig(home)
			if err != nil {
				return err
			}
			w, err := app.NewWire(cfg, passphrase)
			if err != nil {
				return err
			}
			appCtx = app.New(w)
			return nil
		},
	}

	home, passphrase, output, appCtx = "", "", outputText, nil
	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.liendesk)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the stored session (or LIENDESK_PASSPHRASE)")
	root.PersistentFlags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")

	root.AddCommand(
		authCmd(),
		wizardCmd(),
		remediesCmd(),
		catalogCmd(),
		projectsCmd(),
		contactsCmd(),
		documentsCmd(),
		tasksCmd(),
	)
	return root
}

// login puts the stored session on the gateway for commands that call
// authenticated endpoints.
func login() error {
	_, err := appCtx.Authenticate()
	return err
}
