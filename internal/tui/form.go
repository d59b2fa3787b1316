package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/plotline/internal/model"
)

type formKind int

const (
	formAddPlot formKind = iota
	formEditPlot
	formInterest
)

// form is a modal of labelled text inputs. One field is focused at a time.
type form struct {
	kind   formKind
	title  string
	target model.Plot
	labels []string
	inputs []textinput.Model
	focus  int
}

var plotLabels = []string{
	"Name", "Address", "Square feet", "Location", "Price",
	"Facing", "Boundary", "Description", "Amenities",
}

func newForm(kind formKind, title string, target model.Plot, labels, values []string) form {
	f := form{kind: kind, title: title, target: target, labels: labels}
	for i := range labels {
		ti := textinput.New()
		ti.CharLimit = 512
		ti.Width = 40
		if i < len(values) {
			ti.SetValue(values[i])
		}
		f.inputs = append(f.inputs, ti)
	}
	f.inputs[0].Focus()
	return f
}

// newPlotForm builds the add or edit property form. Adding also takes image paths.
func newPlotForm(kind formKind, target model.Plot) form {
	title := "Add Property"
	values := []string{}
	labels := plotLabels
	if kind == formEditPlot {
		title = "Edit Property"
		pf := model.FormFromPlot(target)
		values = []string{pf.Name, pf.Address, pf.SquareFeet, pf.Location, pf.Price,
			pf.Facing, pf.Boundary, pf.Description, pf.Amenities}
	} else {
		labels = append(append([]string{}, plotLabels...), "Images")
	}

	f := newForm(kind, title, target, labels, values)
	f.inputs[8].Placeholder = "Park, Security, Pool"
	if kind == formAddPlot {
		f.inputs[9].Placeholder = "photo1.jpg, photo2.jpg"
	}
	return f
}

func newInterestForm(target model.Plot) form {
	return newForm(formInterest, "I'm interested in "+target.Name, target,
		[]string{"Name", "Email", "Phone", "Location"}, nil)
}

func (f form) value(i int) string {
	if i < len(f.inputs) {
		return f.inputs[i].Value()
	}
	return ""
}

// plotForm reads the property fields
func (f form) plotForm() model.PlotForm {
	return model.PlotForm{
		Name:        f.value(0),
		Address:     f.value(1),
		SquareFeet:  f.value(2),
		Location:    f.value(3),
		Price:       f.value(4),
		Facing:      f.value(5),
		Boundary:    f.value(6),
		Description: f.value(7),
		Amenities:   f.value(8),
	}
}

// imagePaths reads the image list of the add form
func (f form) imagePaths() []string {
	return splitPaths(f.value(9))
}

func (f form) inquiry() model.Inquiry {
	in := model.InquiryFor(f.target)
	in.Name = f.value(0)
	in.Email = f.value(1)
	in.Phone = f.value(2)
	in.Location = f.value(3)
	return in
}

func (f *form) move(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update routes navigation keys and forwards the rest to the focused input.
// It reports whether the form was submitted.
func (f form) update(msg tea.KeyMsg) (form, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Submit):
		return f, nil, true
	case key.Matches(msg, keys.Enter):
		if f.focus == len(f.inputs)-1 {
			return f, nil, true
		}
		f.move(1)
		return f, textinput.Blink, false
	case key.Matches(msg, keys.Next):
		f.move(1)
		return f, textinput.Blink, false
	case key.Matches(msg, keys.Prev):
		f.move(-1)
		return f, textinput.Blink, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd, false
}
