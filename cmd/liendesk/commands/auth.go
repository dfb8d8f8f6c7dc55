package commands

import (
	"io"

	"github.com/spf13/cobra"

	"liendesk/internal/domain"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in, sign up and manage the stored session",
	}
	cmd.AddCommand(loginCmd(), signupCmd(), logoutCmd(), whoamiCmd())
	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session encrypted under the passphrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askString(&email, "Email", "", true); err != nil {
				return err
			}
			if err := askPassword(&password, "Password"); err != nil {
				return err
			}
			sess, err := appCtx.Auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			outf(cmd, "Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func signupCmd() *cobra.Command {
	var req domain.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := askString(&req.Name, "Name", "", true); err != nil {
				return err
			}
			if err := askString(&req.Email, "Email", "", true); err != nil {
				return err
			}
			if err := askPassword(&req.Password, "Password"); err != nil {
				return err
			}
			sess, err := appCtx.Auth.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			outf(cmd, "Account created for %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&req.Company, "company", "", "company name")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session and the wizard draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Logout(cmd.Context()); err != nil {
				return err
			}
			outln(cmd, "Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and recent projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := appCtx.Authenticate()
			if err != nil {
				return err
			}
			view := struct {
				Server         string                  `json:"server"`
				User           domain.User             `json:"user"`
				ActiveProjects []domain.ProjectSummary `json:"active_projects,omitempty"`
			}{sess.ServerURL, sess.User, sess.ActiveProjects}
			return emit(cmd, view, func(w io.Writer) {
				outf(cmd, "%s <%s> on %s\n", sess.User.Name, sess.User.Email, sess.ServerURL)
				for _, p := range sess.ActiveProjects {
					outf(cmd, "  %s  %s\n", p.ID, p.Name)
				}
			})
		},
	}
}
