package cli

import (
	"github.com/spf13/cobra"
)

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "Fetch the user directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := vm.RefreshUsers(cmd.Context(), token); err != nil {
				return writeErr(cmd, describe(err))
			}
			return writeOut(cmd, app, map[string]any{"data": vm.Users()})
		},
	}
}

func newAnalyticsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Fetch the precomputed analytics summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, token, err := openViewModel(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := vm.RefreshAnalytics(cmd.Context(), token); err != nil {
				return writeErr(cmd, describe(err))
			}
			sum, _ := vm.Analytics()
			return writeOut(cmd, app, map[string]any{"data": sum})
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective client configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"apiUrl":  cfg.APIURL,
				"dataDir": cfg.DataDir,
			}})
		},
	}
}
