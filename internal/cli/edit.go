package cli

import (
	"fmt"

	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [plot-id]",
	Short: "Edit a property",
	Long: `Edit a property. Fields not given keep their current value.

Examples:
  plotline admin plots edit p1 --price 2600000
  plotline admin plots edit p1 --amenities "Park,  Security ,  , Pool"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var editForm model.PlotForm

func init() {
	adminPlotsCmd.AddCommand(editCmd)
	plotFormFlags(editCmd, &editForm)
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, console, err := openAdmin(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if res := a.catalog.FetchProperties(cmd.Context()); !res.Success() {
		return fmt.Errorf("failed to fetch properties: %s", res.Message())
	}
	current := console.ViewProperty(args[0])
	if !current.Success() {
		return current.Err
	}

	// Start from the stored values, like the pre-populated edit dialog
	form := model.FormFromPlot(current.Value)
	flags := cmd.Flags()
	for name, dst := range map[string]*string{
		"name":        &form.Name,
		"address":     &form.Address,
		"square-feet": &form.SquareFeet,
		"location":    &form.Location,
		"price":       &form.Price,
		"facing":      &form.Facing,
		"boundary":    &form.Boundary,
		"description": &form.Description,
		"amenities":   &form.Amenities,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}

	if res := console.EditProperty(cmd.Context(), args[0], form); !res.Success() {
		return fmt.Errorf("failed to update property: %s", res.Message())
	}
	return nil
}
