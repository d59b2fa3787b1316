package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/plotline/internal/admin"
	"github.com/existflow/plotline/internal/catalog"
	"github.com/existflow/plotline/internal/directory"
	"github.com/existflow/plotline/internal/inquiry"
	"github.com/existflow/plotline/internal/logger"
	"github.com/existflow/plotline/internal/model"
	"github.com/existflow/plotline/internal/session"
)

// Tab is one page of the console
type Tab int

const (
	TabProperties Tab = iota
	TabUsers
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeView
	ModeConfirm
	ModeForm
	ModeHelp
)

// Deps are the stores the console drives
type Deps struct {
	Session   *session.Store
	Catalog   *catalog.Store
	Directory *directory.Directory
	Creator   admin.Creator
	Inquiry   *inquiry.Service
	// AdminMode shows the Users tab and the add/edit/delete actions. The
	// caller is expected to have passed the admin guard.
	AdminMode bool
}

type pendingKind int

const (
	pendingDeleteProperty pendingKind = iota
	pendingDeleteUser
)

// pending is a destructive action waiting for confirmation
type pending struct {
	kind   pendingKind
	id     string
	prompt string
}

// Model is the main TUI model
type Model struct {
	deps    Deps
	console *admin.Console
	notices *noticeBoard

	// UI state
	width      int
	height     int
	tab        Tab
	mode       Mode
	plotCursor int
	userCursor int
	loading    bool

	plots []model.Plot
	users []model.Account

	// Filter
	input      textinput.Model
	filterText string

	// Modals
	viewPlot *model.Plot
	viewUser *model.Account
	confirm  pending
	form     form

	message string
}

// NewModel creates a new TUI model
func NewModel(deps Deps) Model {
	logger.Info("Initializing console model", logger.F("admin", deps.AdminMode))

	ti := textinput.New()
	ti.Placeholder = "Search name, location or address..."
	ti.CharLimit = 128
	ti.Width = 50

	notices := &noticeBoard{}
	return Model{
		deps:    deps,
		console: admin.NewConsole(deps.Session, deps.Catalog, deps.Directory, deps.Creator, admin.AlwaysConfirm{}, notices),
		notices: notices,
		tab:     TabProperties,
		mode:    ModeNormal,
		input:   ti,
		plots:   []model.Plot{},
		users:   []model.Account{},
		loading: true,
	}
}

func (m *Model) currentPlot() *model.Plot {
	if m.plotCursor < len(m.plots) {
		return &m.plots[m.plotCursor]
	}
	return nil
}

func (m *Model) currentUser() *model.Account {
	if m.userCursor < len(m.users) {
		return &m.users[m.userCursor]
	}
	return nil
}

func (m *Model) clampCursors() {
	if m.plotCursor >= len(m.plots) {
		m.plotCursor = max(len(m.plots)-1, 0)
	}
	if m.userCursor >= len(m.users) {
		m.userCursor = max(len(m.users)-1, 0)
	}
}

// noticeBoard collects console notices raised while a command runs so the
// next message can show them in the status bar.
type noticeBoard struct {
	mu   sync.Mutex
	last string
}

func (n *noticeBoard) Notify(msg string) {
	n.mu.Lock()
	n.last = msg
	n.mu.Unlock()
}

func (n *noticeBoard) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	msg := n.last
	n.last = ""
	return msg
}
