package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/novaqhq/novaq/internal/api"
	"github.com/novaqhq/novaq/internal/config"
	"github.com/novaqhq/novaq/internal/logger"
	"github.com/novaqhq/novaq/internal/settings"
	"github.com/novaqhq/novaq/internal/state"
	"github.com/novaqhq/novaq/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "novaq",
	Short: "Novaq - terminal project planner with a shared calendar",
	Long: `Novaq organizes projects with embedded calendar events, a smart weekly
planner, quick todos and sticky notes, synced through a novaq server.

Run 'novaq' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// CLI flags override the config file and stick
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024,
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Novaq started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if !client.LoggedIn() {
			return fmt.Errorf("not logged in, run 'novaq auth login' first")
		}

		store, err := settings.OpenDefault()
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}

		projects := state.NewStore()
		poller := state.NewPoller(client, projects, 0)
		defer poller.Stop()

		if err := poller.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(client, projects, poller, store)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Novaq exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// newClient builds an API client from the saved config and session.
func newClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return api.NewClient(cfg)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(todoCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(searchCmd)
}
