package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/plotline/internal/model"
)

func displayName(u model.User) string {
	switch {
	case u.Name != "" && u.Email != "":
		return fmt.Sprintf("%s <%s>", u.Name, u.Email)
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

func printPlots(plots []model.Plot, total int) {
	fmt.Printf("\n🏡 Properties (%d of %d)\n", len(plots), total)
	fmt.Println(strings.Repeat("─", 78))
	for _, p := range plots {
		fmt.Printf("  %-10s  %-24s  %-18s  %12s  %8s\n",
			shortID(p.ID), truncate(p.Name, 24), truncate(p.Location, 18), model.FormatPrice(p.Price), formatArea(p.SquareFeet))
	}
	fmt.Println()
}

func printPlot(p model.Plot) {
	fmt.Printf("🏡 %s\n", p.Name)
	fmt.Printf("   ID:          %s\n", p.ID)
	fmt.Printf("   Location:    %s\n", p.Location)
	fmt.Printf("   Address:     %s\n", p.Address)
	fmt.Printf("   Price:       %s\n", model.FormatPrice(p.Price))
	fmt.Printf("   Area:        %s\n", formatArea(p.SquareFeet))
	if p.Facing != "" {
		fmt.Printf("   Facing:      %s\n", p.Facing)
	}
	if p.Boundary != "" {
		fmt.Printf("   Boundary:    %s\n", p.Boundary)
	}
	if len(p.Amenities) > 0 {
		fmt.Printf("   Amenities:   %s\n", strings.Join(p.Amenities, ", "))
	}
	if p.Description != "" {
		fmt.Printf("\n   %s\n", p.Description)
	}
	for _, img := range p.Gallery() {
		fmt.Printf("   📷 %s\n", img)
	}
}

func formatArea(v float64) string {
	if v == 0 {
		return "-"
	}
	return model.FormatPrice(v) + " ft²"
}

func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
