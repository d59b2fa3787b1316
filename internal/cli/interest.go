package cli

import (
	"fmt"

	"github.com/existflow/plotline/internal/model"
	"github.com/spf13/cobra"
)

var interestCmd = &cobra.Command{
	Use:   "interest [plot-id]",
	Short: "Tell the seller you are interested in a property",
	Long: `Send a contact request for a property. Missing fields are prompted.

Examples:
  plotline interest p1 --name "Ann" --email ann@example.com --phone 99999`,
	Args: cobra.ExactArgs(1),
	RunE: runInterest,
}

var interestForm model.Inquiry

func init() {
	interestCmd.Flags().StringVar(&interestForm.Name, "name", "", "Your name")
	interestCmd.Flags().StringVar(&interestForm.Email, "email", "", "Your email")
	interestCmd.Flags().StringVar(&interestForm.Phone, "phone", "", "Your phone number")
	interestCmd.Flags().StringVar(&interestForm.Location, "location", "", "Where you are based")
}

func runInterest(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if res := a.catalog.FetchProperties(cmd.Context()); !res.Success() {
		return fmt.Errorf("failed to fetch properties: %s", res.Message())
	}
	plot, ok := findPlot(a.catalog.All(), args[0])
	if !ok {
		return fmt.Errorf("property not found: %s", args[0])
	}

	in := model.InquiryFor(plot)
	in.Name, in.Email, in.Phone, in.Location = interestForm.Name, interestForm.Email, interestForm.Phone, interestForm.Location

	p := newPrompter()
	if in.Name == "" {
		in.Name = p.line("Name: ")
	}
	if in.Email == "" {
		in.Email = p.line("Email: ")
	}
	if in.Phone == "" {
		in.Phone = p.line("Phone: ")
	}

	res := a.inquiry.Submit(cmd.Context(), in)
	if !res.Success() {
		return fmt.Errorf("failed to send inquiry: %s", res.Message())
	}

	fmt.Printf("✅ Thanks %s, the seller of %q will contact you.\n", in.Name, plot.Name)
	return nil
}

func findPlot(plots []model.Plot, id string) (model.Plot, bool) {
	for _, p := range plots {
		if p.ID == id {
			return p, true
		}
	}
	return model.Plot{}, false
}
