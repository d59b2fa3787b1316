package tui

import (
	"strings"

	"github.com/existflow/plotline/internal/model"
)

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// rule draws a horizontal line of width n
func rule(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat("─", n)
}

func area(v float64) string {
	if v == 0 {
		return "-"
	}
	return model.FormatPrice(v) + " ft²"
}

// splitPaths turns "a.jpg, b.jpg" into file paths
func splitPaths(s string) []string {
	return model.SplitAmenities(s)
}
