package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskdeck-cli/internal/api"
	"taskdeck-cli/internal/config"
	"taskdeck-cli/internal/format"
	"taskdeck-cli/internal/session"
	"taskdeck-cli/internal/taskview"
	"taskdeck-cli/internal/tui"
)

type App struct {
	APIURL     string
	DataDir    string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Terminal client for the team task backend (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck login --email you@example.com --password secret
  taskdeck tasks list
  taskdeck tasks create --title "Ship it" --priority high
  taskdeck analytics
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Backend base URL (overrides config file and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "Local data dir for the persisted session (overrides config file and "+config.EnvDataDir+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newAnalyticsCmd(app))
	cmd.AddCommand(newConfigCmd(app))

	return cmd
}

// resolveConfig layers flag overrides on top of file/env configuration.
func resolveConfig(app *App) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(app.APIURL) != "" {
		cfg.APIURL = strings.TrimSpace(app.APIURL)
	}
	if strings.TrimSpace(app.DataDir) != "" {
		cfg.DataDir = strings.TrimSpace(app.DataDir)
	}
	return cfg, nil
}

func openSession(app *App) (config.Config, *api.Client, *session.Store, error) {
	cfg, err := resolveConfig(app)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	client := api.New(cfg.APIURL)
	store, err := session.Open(cfg.DataDir, client)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, client, store, nil
}

func runTUI(app *App) error {
	cfg, client, store, err := openSession(app)
	if err != nil {
		return err
	}
	// Stderr shares the terminal with the TUI; diagnostics go to a file.
	logger, closeLog, err := fileLogger(cfg.DataDir)
	if err != nil {
		return err
	}
	defer closeLog()
	vm := taskview.New(client, logger)
	return tui.Run(store, vm, logger)
}

func fileLogger(dataDir string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "taskdeck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	return logger, func() { _ = f.Close() }, nil
}

func stderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
