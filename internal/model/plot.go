package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Plot represents one listed parcel or unit
type Plot struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Address     string   `json:"address"`
	Price       float64  `json:"price"`
	SquareFeet  float64  `json:"squareFeet"`
	Facing      string   `json:"facing,omitempty"`
	Boundary    string   `json:"boundary,omitempty"`
	Description string   `json:"description,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Image       string   `json:"image,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Gallery returns every image URI of the plot, falling back to the single
// cover image older records carry
func (p Plot) Gallery() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// PlotPatch is the normalized body sent on create and update
type PlotPatch struct {
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address"`
	SquareFeet  float64  `json:"squareFeet" validate:"gte=0"`
	Location    string   `json:"location"`
	Price       float64  `json:"price" validate:"gte=0"`
	Facing      string   `json:"facing"`
	Boundary    string   `json:"boundary"`
	Description string   `json:"description"`
	Amenities   []string `json:"amenities"`
}

// FormFields flattens the patch into multipart fields, in form order.
// Amenities travel as one comma-joined value.
func (p PlotPatch) FormFields() [][2]string {
	return [][2]string{
		{"name", p.Name},
		{"address", p.Address},
		{"squareFeet", formatNumber(p.SquareFeet)},
		{"location", p.Location},
		{"price", formatNumber(p.Price)},
		{"facing", p.Facing},
		{"boundary", p.Boundary},
		{"description", p.Description},
		{"amenities", JoinAmenities(p.Amenities)},
	}
}

// PlotForm holds the raw text of the add/edit property forms
type PlotForm struct {
	Name        string
	Address     string
	SquareFeet  string
	Location    string
	Price       string
	Facing      string
	Boundary    string
	Description string
	Amenities   string // comma separated
}

// FormFromPlot pre-populates an edit form from an existing plot
func FormFromPlot(p Plot) PlotForm {
	return PlotForm{
		Name:        p.Name,
		Address:     p.Address,
		SquareFeet:  formatNumber(p.SquareFeet),
		Location:    p.Location,
		Price:       formatNumber(p.Price),
		Facing:      p.Facing,
		Boundary:    p.Boundary,
		Description: p.Description,
		Amenities:   strings.Join(p.Amenities, ", "),
	}
}

// Normalize converts the form into a patch: amenities are split and trimmed,
// numeric fields are parsed. An empty numeric field counts as zero.
func (f PlotForm) Normalize() (PlotPatch, error) {
	squareFeet, err := parseNumber("squareFeet", f.SquareFeet)
	if err != nil {
		return PlotPatch{}, err
	}
	price, err := parseNumber("price", f.Price)
	if err != nil {
		return PlotPatch{}, err
	}

	patch := PlotPatch{
		Name:        strings.TrimSpace(f.Name),
		Address:     f.Address,
		SquareFeet:  squareFeet,
		Location:    f.Location,
		Price:       price,
		Facing:      f.Facing,
		Boundary:    f.Boundary,
		Description: f.Description,
		Amenities:   SplitAmenities(f.Amenities),
	}
	if err := Validate(patch); err != nil {
		return PlotPatch{}, err
	}
	return patch, nil
}

// SplitAmenities turns "Park,  Security ,  , Pool" into [Park Security Pool]
func SplitAmenities(s string) []string {
	amenities := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			amenities = append(amenities, item)
		}
	}
	return amenities
}

// JoinAmenities is the inverse of SplitAmenities for lists without blank entries
func JoinAmenities(amenities []string) string {
	return strings.Join(amenities, ",")
}

func parseNumber(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", field, s)
	}
	return v, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatPrice groups thousands: 2500000 -> "2,500,000"
func FormatPrice(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Criteria narrows the catalog view. Empty fields apply no filter.
type Criteria struct {
	Query string
	// Status and Type are carried for the search form; plots have no matching attributes yet.
	Status string
	Type   string
}

// IsEmpty returns true if no dimension is set
func (c Criteria) IsEmpty() bool {
	return c.Query == "" && c.Status == "" && c.Type == ""
}

// Matches reports whether the plot satisfies the criteria. The query is a
// case-insensitive substring match on name, location or address.
func (c Criteria) Matches(p Plot) bool {
	if c.Query == "" {
		return true
	}
	q := strings.ToLower(c.Query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Location), q) ||
		strings.Contains(strings.ToLower(p.Address), q)
}
