// Root command for the roster CLI: loads configuration and launches the
// dashboard.
package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rosterhq/roster/internal/api"
	"github.com/rosterhq/roster/internal/config"
	"github.com/rosterhq/roster/internal/paths"
	"github.com/rosterhq/roster/internal/store"
	"github.com/rosterhq/roster/internal/tui"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagBaseURL   string
)

// cfg holds the configuration loaded by PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "roster",
	Short:   "Roster is a terminal dashboard for a users REST API",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}

		cfg, err = config.Load(configDir)
		if err != nil {
			return err
		}

		// The flag outranks both the config file and the environment.
		if flagBaseURL != "" {
			cfg.BaseURL = flagBaseURL
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.NewClient(cfg.BaseURL, nil)
		st := store.New(client)

		program := tea.NewProgram(tui.New(st, cfg), tea.WithAltScreen())
		_, err := program.Run()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "base URL of the users REST API")

	rootCmd.AddCommand(versionCmd)
}
