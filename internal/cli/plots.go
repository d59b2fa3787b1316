package cli

import (
	"fmt"

	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var plotsCmd = &cobra.Command{
	Use:     "plots",
	Aliases: []string{"properties"},
	Short:   "Browse the property catalog",
}

var plotsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List properties",
	Long: `List every property, optionally narrowed by a search query.

The query matches name, location or address regardless of case.

Examples:
  plotline plots list
  plotline plots list --query bhubaneswar`,
	RunE: runPlotsList,
}

var plotsShowCmd = &cobra.Command{
	Use:   "show [plot-id]",
	Short: "Show the full record of a property (login required)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlotsShow,
}

var criteria model.Criteria

func init() {
	plotsCmd.AddCommand(plotsListCmd)
	plotsCmd.AddCommand(plotsShowCmd)

	plotsListCmd.Flags().StringVarP(&criteria.Query, "query", "q", "", "Search name, location or address")
	plotsListCmd.Flags().StringVar(&criteria.Status, "status", "", "Status tag")
	plotsListCmd.Flags().StringVar(&criteria.Type, "type", "", "Property type tag")
}

func runPlotsList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if res := a.catalog.FetchProperties(cmd.Context()); !res.Success() {
		return fmt.Errorf("failed to fetch properties: %s", res.Message())
	}

	plots := a.catalog.FilterProperties(criteria)
	if len(plots) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	printPlots(plots, len(a.catalog.All()))
	return nil
}

func runPlotsShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.catalog.FetchPropertyDetails(cmd.Context(), args[0])
	if !res.Success() {
		return fmt.Errorf("failed to fetch property: %s", res.Message())
	}

	printPlot(res.Value)
	return nil
}
