package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long: `Show the active configuration. Persistent flags such as --base-url
and --log-level are saved to ~/.plotline/config.yaml when given.

Examples:
  plotline config
  plotline config --base-url https://api.example.com`,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	fmt.Println("⚙️  Configuration")
	fmt.Printf("   Backend:        %s\n", cfg.BaseURL)
	fmt.Printf("   Timeout:        %s\n", cfg.Timeout)
	fmt.Printf("   Confirm delete: %t\n", cfg.ConfirmDelete)
	fmt.Printf("   Storage:        %s\n", cfg.StoragePath)
	fmt.Printf("   Log level:      %s\n", cfg.LogLevel)
	fmt.Printf("   Log file:       %s\n", cfg.LogFile)
	fmt.Printf("   Log console:    %t\n", cfg.LogConsole)
	return nil
}
