package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/catalog"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
)

// plotsLoadedMsg carries the outcome of a catalog fetch
type plotsLoadedMsg struct {
	res model.Result[[]model.Plot]
}

type usersLoadedMsg struct {
	res model.Result[[]model.Account]
}

// detailMsg carries a full plot record fetched for the view modal
type detailMsg struct {
	res model.Result[model.Plot]
}

// actionMsg reports a finished mutation. refresh asks for a new catalog fetch.
type actionMsg struct {
	err     error
	notice  string
	refresh bool
}

// loggedOutMsg is sent once the session has been cleared
type loggedOutMsg struct {
	err error
}

// Init starts loading the catalog, and the directory in admin mode
func (m Model) Init() tea.Cmd {
	if m.deps.AdminMode {
		return tea.Batch(m.fetchPlots(), m.fetchUsers())
	}
	return m.fetchPlots()
}

func (m Model) fetchPlots() tea.Cmd {
	c := m.deps.Catalog
	return func() tea.Msg {
		return plotsLoadedMsg{res: c.FetchProperties(context.Background())}
	}
}

func (m Model) fetchUsers() tea.Cmd {
	d := m.deps.Directory
	return func() tea.Msg {
		return usersLoadedMsg{res: d.FetchAllUsers(context.Background())}
	}
}

func (m Model) fetchDetail(id string) tea.Cmd {
	c := m.deps.Catalog
	return func() tea.Msg {
		return detailMsg{res: c.FetchPropertyDetails(context.Background(), id)}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case plotsLoadedMsg:
		if errors.Is(msg.res.Err, catalog.ErrSuperseded) {
			return m, nil
		}
		m.loading = m.deps.Catalog.Loading()
		if !msg.res.Success() {
			m.message = "Failed to load properties: " + msg.res.Message()
		}
		// Fetching resets the catalog filter; keep the one on screen
		m.plots = m.deps.Catalog.FilterProperties(model.Criteria{Query: m.filterText})
		m.clampCursors()
		return m, nil

	case usersLoadedMsg:
		if !msg.res.Success() {
			m.message = "Failed to load users: " + msg.res.Message()
			return m, nil
		}
		m.users = msg.res.Value
		m.clampCursors()
		return m, nil

	case detailMsg:
		if !msg.res.Success() {
			if errors.Is(msg.res.Err, model.ErrNoToken) {
				m.message = "Login required to view details! Run: plotline auth login"
			} else {
				m.message = "Failed to load property: " + msg.res.Message()
			}
			return m, nil
		}
		p := msg.res.Value
		m.viewPlot = &p
		m.mode = ModeView
		return m, nil

	case actionMsg:
		m.message = msg.notice
		if m.message == "" && msg.err != nil {
			m.message = msg.err.Error()
		}
		if msg.refresh {
			return m, m.fetchPlots()
		}
		return m, nil

	case loggedOutMsg:
		if msg.err != nil {
			m.message = "Logout error: " + msg.err.Error()
			return m, nil
		}
		m.deps.AdminMode = false
		m.tab = TabProperties
		m.users = []model.Account{}
		m.message = "Logged out. Run 'plotline admin login' to sign in again."
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeFilter:
			return m.updateFilter(msg)
		case ModeForm:
			return m.updateForm(msg)
		case ModeConfirm:
			return m.updateConfirm(msg)
		case ModeView, ModeHelp:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			m.mode = ModeNormal
			m.viewPlot, m.viewUser = nil, nil
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Tab):
		if m.deps.AdminMode {
			if m.tab == TabProperties {
				m.tab = TabUsers
			} else {
				m.tab = TabProperties
			}
		}

	case key.Matches(msg, keys.Up):
		if m.tab == TabProperties && m.plotCursor > 0 {
			m.plotCursor--
		} else if m.tab == TabUsers && m.userCursor > 0 {
			m.userCursor--
		}

	case key.Matches(msg, keys.Down):
		if m.tab == TabProperties && m.plotCursor < len(m.plots)-1 {
			m.plotCursor++
		} else if m.tab == TabUsers && m.userCursor < len(m.users)-1 {
			m.userCursor++
		}

	case key.Matches(msg, keys.Enter):
		return m.handleView()

	case key.Matches(msg, keys.Filter):
		if m.tab == TabProperties {
			m.mode = ModeFilter
			m.input.SetValue(m.filterText)
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Escape):
		if m.filterText != "" {
			m.filterText = ""
			m.plots = m.deps.Catalog.ResetFilters()
			m.clampCursors()
			m.message = "Filter cleared"
		}

	case key.Matches(msg, keys.Add):
		if m.deps.AdminMode && m.tab == TabProperties {
			m.form = newPlotForm(formAddPlot, model.Plot{})
			m.mode = ModeForm
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Edit):
		if p := m.currentPlot(); p != nil && m.deps.AdminMode && m.tab == TabProperties {
			m.form = newPlotForm(formEditPlot, *p)
			m.mode = ModeForm
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Interest):
		if p := m.currentPlot(); p != nil && m.tab == TabProperties {
			m.form = newInterestForm(*p)
			m.mode = ModeForm
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Delete):
		m.handleDelete()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, keys.Logout):
		return m, m.logout()

	case key.Matches(msg, keys.Refresh):
		m.loading = true
		m.message = "Refreshing..."
		if m.deps.AdminMode {
			return m, tea.Batch(m.fetchPlots(), m.fetchUsers())
		}
		return m, m.fetchPlots()
	}

	return m, nil
}

// handleView opens the selected record. The admin console shows the held
// record; the catalog browser fetches the full record, which needs a login.
func (m Model) handleView() (tea.Model, tea.Cmd) {
	switch m.tab {
	case TabUsers:
		if u := m.currentUser(); u != nil {
			if res := m.console.ViewUser(u.ID); res.Success() {
				m.viewUser = &res.Value
				m.mode = ModeView
			}
		}
	case TabProperties:
		p := m.currentPlot()
		if p == nil {
			return m, nil
		}
		if m.deps.AdminMode {
			if res := m.console.ViewProperty(p.ID); res.Success() {
				m.viewPlot = &res.Value
				m.mode = ModeView
			}
			return m, nil
		}
		m.message = "Loading details..."
		return m, m.fetchDetail(p.ID)
	}
	return m, nil
}

func (m *Model) handleDelete() {
	if !m.deps.AdminMode {
		return
	}
	switch m.tab {
	case TabProperties:
		if p := m.currentPlot(); p != nil {
			m.confirm = pending{kind: pendingDeleteProperty, id: p.ID, prompt: "Are you sure you want to delete this property?\n\n" + p.Name}
			m.mode = ModeConfirm
		}
	case TabUsers:
		if u := m.currentUser(); u != nil {
			m.confirm = pending{kind: pendingDeleteUser, id: u.ID, prompt: "Are you sure you want to delete this user?\n\n" + u.Name}
			m.mode = ModeConfirm
		}
	}
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		m.mode = ModeNormal
		return m, m.runConfirmed(m.confirm)
	case key.Matches(msg, keys.No):
		m.mode = ModeNormal
		m.message = "Cancelled"
	}
	return m, nil
}

// runConfirmed performs an action the operator already confirmed in the modal
func (m Model) runConfirmed(p pending) tea.Cmd {
	console, notices := m.console, m.notices
	return func() tea.Msg {
		ctx := context.Background()
		switch p.kind {
		case pendingDeleteProperty:
			res := console.DeleteProperty(ctx, p.id)
			// The list is not updated locally; the entry stays until the next refresh
			return actionMsg{err: res.Err, notice: notices.take()}
		default:
			res := console.DeleteUser(ctx, p.id)
			if errors.Is(res.Err, model.ErrNotImplemented) {
				return actionMsg{err: res.Err, notice: "Deleting users is not supported by the backend yet"}
			}
			return actionMsg{err: res.Err}
		}
	}
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.mode = ModeNormal
		m.input.Blur()
		m.applyFilter(m.input.Value())
		if m.filterText != "" {
			m.message = fmt.Sprintf("%d of %d properties match %q", len(m.plots), len(m.deps.Catalog.All()), m.filterText)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.applyFilter(m.input.Value())
	return m, cmd
}

// applyFilter recomputes the visible list; filtering never fetches
func (m *Model) applyFilter(query string) {
	m.filterText = query
	m.plots = m.deps.Catalog.FilterProperties(model.Criteria{Query: query})
	m.plotCursor = 0
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Escape) {
		m.mode = ModeNormal
		return m, nil
	}

	f, cmd, submitted := m.form.update(msg)
	m.form = f
	if !submitted {
		return m, cmd
	}

	m.mode = ModeNormal
	m.message = "Saving..."
	return m, m.submitForm(f)
}

func (m Model) submitForm(f form) tea.Cmd {
	console, notices, inq := m.console, m.notices, m.deps.Inquiry
	return func() tea.Msg {
		ctx := context.Background()
		switch f.kind {
		case formAddPlot:
			uploads, closeAll, err := openImages(f.imagePaths())
			if err != nil {
				return actionMsg{err: err}
			}
			defer closeAll()
			res := console.AddProperty(ctx, f.plotForm(), uploads)
			return actionMsg{err: res.Err, notice: notices.take(), refresh: res.Success()}

		case formEditPlot:
			res := console.EditProperty(ctx, f.target.ID, f.plotForm())
			return actionMsg{err: res.Err, notice: notices.take(), refresh: res.Success()}

		default:
			res := inq.Submit(ctx, f.inquiry())
			if !res.Success() {
				return actionMsg{err: res.Err, notice: "Failed to send inquiry: " + res.Message()}
			}
			return actionMsg{notice: "Thanks! The seller of " + f.target.Name + " will contact you."}
		}
	}
}

// openImages opens every path for upload; the returned func closes them
func openImages(paths []string) ([]api.Upload, func(), error) {
	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	uploads := make([]api.Upload, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			logger.Warn("Failed to open image", logger.F("path", path), logger.F("error", err))
			return nil, func() {}, fmt.Errorf("failed to open image: %w", err)
		}
		files = append(files, f)
		uploads = append(uploads, api.Upload{Filename: filepath.Base(path), Content: f})
	}
	return uploads, closeAll, nil
}

func (m Model) logout() tea.Cmd {
	console := m.console
	return func() tea.Msg {
		res := console.Logout(context.Background())
		return loggedOutMsg{err: res.Err}
	}
}
