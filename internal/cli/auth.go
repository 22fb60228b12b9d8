package cli

import (
	"github.com/spf13/cobra"

	"taskdeck-cli/internal/model"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and persist the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Login(cmd.Context(), email, password); err != nil {
				return writeErr(cmd, err)
			}
			id, _ := store.Identity()
			return writeOut(cmd, app, map[string]any{"data": id})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(app *App) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and persist the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := model.ParseRole(role)
			if err != nil {
				return writeErr(cmd, err)
			}
			_, _, store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Signup(cmd.Context(), name, email, password, r); err != nil {
				return writeErr(cmd, err)
			}
			id, _ := store.Identity()
			return writeOut(cmd, app, map[string]any{"data": id})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", string(model.RoleMember), "Requested role (member|admin); the backend has the final say")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session (no network call)",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Logout(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedOut": true}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the locally persisted identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, store, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, ok := store.Identity()
			if !ok {
				return writeErr(cmd, errNotAuthenticated)
			}
			return writeOut(cmd, app, map[string]any{"data": id})
		},
	}
}
