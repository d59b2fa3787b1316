package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [plot-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a property",
	Long: `Delete a property by its ID. The listing shown elsewhere may still
include it until the next refresh.

Examples:
  plotline admin plots delete p1
  plotline admin plots rm p1 --force`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	adminPlotsCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, console, err := openAdmin(cmd.Context(), deleteForce)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("About to delete property %s\n", args[0])
	if res := console.DeleteProperty(cmd.Context(), args[0]); !res.Success() {
		return reportCancel(res.Err)
	}
	return nil
}
