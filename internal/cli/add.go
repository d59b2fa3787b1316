package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a property",
	Long: `Add a property with zero or more images.

Examples:
  plotline admin plots add --name "Plot A" --location Bhubaneswar --price 2500000
  plotline admin plots add --name "Plot B" --amenities "Park, Security" --image a.jpg --image b.jpg`,
	RunE: runAdd,
}

var (
	addForm   model.PlotForm
	addImages []string
)

func init() {
	adminPlotsCmd.AddCommand(addCmd)

	plotFormFlags(addCmd, &addForm)
	addCmd.Flags().StringArrayVar(&addImages, "image", nil, "Image file to upload (repeatable)")
	_ = addCmd.MarkFlagRequired("name")
}

// plotFormFlags binds one flag per form field
func plotFormFlags(cmd *cobra.Command, f *model.PlotForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "Property name")
	cmd.Flags().StringVar(&f.Address, "address", "", "Street address")
	cmd.Flags().StringVar(&f.SquareFeet, "square-feet", "", "Area in square feet")
	cmd.Flags().StringVar(&f.Location, "location", "", "Area or city")
	cmd.Flags().StringVar(&f.Price, "price", "", "Price")
	cmd.Flags().StringVar(&f.Facing, "facing", "", "Facing direction")
	cmd.Flags().StringVar(&f.Boundary, "boundary", "", "Boundary construction")
	cmd.Flags().StringVar(&f.Description, "description", "", "Description")
	cmd.Flags().StringVar(&f.Amenities, "amenities", "", "Comma separated amenities")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, console, err := openAdmin(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	uploads := make([]api.Upload, 0, len(addImages))
	for _, path := range addImages {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		uploads = append(uploads, api.Upload{Filename: filepath.Base(path), Content: f})
	}

	res := console.AddProperty(cmd.Context(), addForm, uploads)
	if !res.Success() {
		return fmt.Errorf("failed to add property: %s", res.Message())
	}

	fmt.Printf("✓ Added %q (ID: %s)\n", res.Value.Name, res.Value.ID)
	return nil
}
