package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/plotline/internal/config"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	baseURL    string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "plotline",
	Short: "Plotline - terminal client for the plot listing backend",
	Long: `Plotline browses the property catalog, manages your session and,
for admins, adds, edits and deletes listings.

Run 'plotline' without arguments to launch the interactive console.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Flags override the file and are remembered
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
		if cmd.Flags().Changed("base-url") {
			cfg.BaseURL = baseURL
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
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Plotline started", logger.F("command", cmd.CommandPath()), logger.F("backend", cfg.BaseURL))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		return runConsole(a, a.adminMode(cmd.Context()))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Plotline exiting", logger.F("command", cmd.CommandPath()))
		logger.Close()
	},
}

// runConsole launches the interactive console. Admin tabs are shown only
// when the caller has already passed the admin guard.
func runConsole(a *app, adminMode bool) error {
	logger.Info("Launching console", logger.F("admin", adminMode))
	m := tui.NewModel(tui.Deps{
		Session:   a.session,
		Catalog:   a.catalog,
		Directory: a.directory,
		Creator:   a.client,
		Inquiry:   a.inquiry,
		AdminMode: adminMode,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logger.Error("Console error", logger.F("error", err))
		return fmt.Errorf("failed to run console: %w", err)
	}

	logger.Info("Console exited normally")
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(plotsCmd)
	rootCmd.AddCommand(interestCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(configCmd)
}
