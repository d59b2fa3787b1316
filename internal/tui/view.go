package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/plotline/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - 2

	var body string
	switch m.tab {
	case TabUsers:
		body = m.renderUsers(bodyHeight)
	default:
		body = m.renderPlots(bodyHeight)
	}

	var modal string
	switch m.mode {
	case ModeView:
		modal = m.renderViewModal()
	case ModeConfirm:
		modal = m.renderConfirmModal()
	case ModeForm:
		modal = m.renderFormModal()
	case ModeHelp:
		modal = m.renderHelp()
	}
	if modal != "" {
		body = lipgloss.Place(
			m.width, bodyHeight,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render("Plotline")
	if m.deps.AdminMode {
		title += " " + AdminStyle.Render("admin")
	}

	tabs := []string{m.tabLabel(TabProperties, fmt.Sprintf("Properties (%d)", len(m.plots)))}
	if m.deps.AdminMode {
		tabs = append(tabs, m.tabLabel(TabUsers, fmt.Sprintf("Users (%d)", len(m.users))))
	}

	return HeaderStyle.Render(title) + "  " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) tabLabel(t Tab, label string) string {
	if m.tab == t {
		return TabActiveStyle.Render(label)
	}
	return TabStyle.Render(label)
}

func (m Model) renderPlots(height int) string {
	width := m.width - 4
	var s string

	if m.loading && len(m.plots) == 0 {
		return ListStyle.Width(width).Height(height).Render(HelpStyle.Render("Loading properties..."))
	}

	header := fmt.Sprintf("%-26s %-18s %14s %12s", "Name", "Location", "Price", "Area")
	s += HelpStyle.Render("  "+header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(rule(width-4)) + "\n"

	if len(m.plots) == 0 {
		if m.filterText != "" {
			s += HelpStyle.Render(fmt.Sprintf("  No properties match %q. Press Esc to clear.", m.filterText))
		} else {
			s += HelpStyle.Render("  No properties.")
		}
	}

	for i, p := range m.plots {
		cursor := "  "
		style := ItemStyle
		if i == m.plotCursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		line := fmt.Sprintf("%s%-26s %-18s ", cursor, truncate(p.Name, 26), truncate(p.Location, 18))
		s += style.Render(line) + PriceStyle.Render(fmt.Sprintf("%14s", model.FormatPrice(p.Price))) +
			style.Render(fmt.Sprintf(" %12s", area(p.SquareFeet))) + "\n"
	}

	return ListStyle.Width(width).Height(height).Render(s)
}

func (m Model) renderUsers(height int) string {
	width := m.width - 4
	now := time.Now()
	var s string

	header := fmt.Sprintf("%-22s %-30s %-6s %s", "Name", "Email", "Role", "Member for")
	s += HelpStyle.Render("  "+header) + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(rule(width-4)) + "\n"

	if len(m.users) == 0 {
		s += HelpStyle.Render("  No users.")
	}

	for i, u := range m.users {
		cursor := "  "
		style := ItemStyle
		if i == m.userCursor {
			cursor = "❯ "
			style = ItemSelectedStyle
		}
		line := fmt.Sprintf("%s%-22s %-30s ", cursor, truncate(u.Name, 22), truncate(u.Email, 30))
		s += style.Render(line) + RoleBadge(u.Role) + style.Render("  "+u.MemberFor(now)) + "\n"
	}

	return ListStyle.Width(width).Height(height).Render(s)
}

func (m Model) renderStatusBar() string {
	if m.mode == ModeFilter {
		return StatusBarStyle.Width(m.width).Render(fmt.Sprintf("/%s  [%d matches]", m.input.View(), len(m.plots)))
	}

	help := "/:search  enter:view  i:interested  r:refresh  ?:help  q:quit"
	if m.deps.AdminMode {
		help = "tab:switch  /:search  enter:view  a:add  e:edit  d:delete  r:refresh  L:logout  q:quit"
	}
	switch {
	case m.message != "":
		help = m.message
	case m.filterText != "":
		help = fmt.Sprintf("/%s  [%d matches]  Esc:clear", m.filterText, len(m.plots))
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func field(label, value string) string {
	if value == "" {
		return ""
	}
	return LabelStyle.Render(label) + value + "\n"
}

func (m Model) renderViewModal() string {
	modalWidth := 64
	var content string

	switch {
	case m.viewPlot != nil:
		p := m.viewPlot
		content += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(p.Name) + "\n\n"
		content += field("Location", p.Location)
		content += field("Address", p.Address)
		content += field("Price", PriceStyle.Render(model.FormatPrice(p.Price)))
		content += field("Area", area(p.SquareFeet))
		content += field("Facing", p.Facing)
		content += field("Boundary", p.Boundary)
		content += field("Amenities", strings.Join(p.Amenities, ", "))
		if p.Description != "" {
			content += "\n" + lipgloss.NewStyle().Width(modalWidth-6).Render(p.Description) + "\n"
		}
		images := p.Gallery()
		if len(images) > 0 {
			content += "\n" + HelpStyle.Render(fmt.Sprintf("%d image(s)", len(images))) + "\n"
			for _, img := range images {
				content += HelpStyle.Render("  "+truncate(img, modalWidth-10)) + "\n"
			}
		}

	case m.viewUser != nil:
		u := m.viewUser
		content += lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(u.Name) + "\n\n"
		content += field("Email", u.Email)
		content += field("Role", RoleBadge(u.Role))
		content += field("Phone", u.Phone)
		if !u.CreatedAt.IsZero() {
			content += field("Joined", u.CreatedAt.Format("Jan 2, 2006"))
			content += field("Member for", u.MemberFor(time.Now()))
		}
		content += field("ID", u.ID)
	}

	content += "\n" + HelpStyle.Render("Press any key to close")
	return ModalStyle.Width(modalWidth).Render(content)
}

func (m Model) renderConfirmModal() string {
	content := lipgloss.NewStyle().Bold(true).Foreground(Danger).Render("Confirm") + "\n\n"
	content += m.confirm.prompt + "\n\n"
	content += HelpStyle.Render("y:yes  n/Esc:no")
	return DangerModalStyle.Width(56).Render(content)
}

func (m Model) renderFormModal() string {
	f := m.form
	content := lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(f.title) + "\n\n"
	for i, in := range f.inputs {
		label := LabelStyle.Render(f.labels[i])
		if i == f.focus {
			label = LabelStyle.Foreground(Primary).Render(f.labels[i])
		}
		content += label + in.View() + "\n"
	}
	content += "\n" + HelpStyle.Render("Tab:next  Shift+Tab:prev  Enter on last/Ctrl+S:save  Esc:cancel")
	return ModalStyle.Width(64).Render(content)
}

func (m Model) renderHelp() string {
	help := `Keyboard Shortcuts

Navigation
  j/↓     Move down
  k/↑     Move up
  Tab     Switch tab (admin)
  Enter   View details

Catalog
  /       Search name, location, address
  Esc     Clear search
  i       I'm interested
  r       Refresh

Admin
  a       Add property
  e       Edit property
  d       Delete property or user
  L       Logout

  ?       Toggle help
  q       Quit

Press any key to close`
	return ModalStyle.Render(help)
}
