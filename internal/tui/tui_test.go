package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/catalog"
	"github.com/existflow/plotline/internal/directory"
	"github.com/existflow/plotline/internal/inquiry"
	"github.com/existflow/plotline/internal/mocks"
	"github.com/existflow/plotline/internal/model"
	"github.com/existflow/plotline/internal/session"
	"github.com/existflow/plotline/internal/storage"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

var plots = []model.Plot{
	{ID: "p1", Name: "Plot A", Location: "Bhubaneswar", Price: 2500000, Amenities: []string{"Park"}},
	{ID: "p2", Name: "Plot B", Location: "Cuttack", Price: 1800000},
}

type noAuth struct{}

func (noAuth) Register(context.Context, model.Registration) (model.User, error) {
	return model.User{}, errors.New("unused")
}

func (noAuth) Login(context.Context, model.Credentials) (api.AuthResponse, error) {
	return api.AuthResponse{}, errors.New("unused")
}

func (noAuth) LoginAdmin(context.Context, model.Credentials) (api.AuthResponse, error) {
	return api.AuthResponse{}, errors.New("unused")
}

type harness struct {
	backend *mocks.MockBackend
	lister  *mocks.MockLister
	creator *mocks.MockCreator
	sent    []model.Inquiry
	model   Model
}

func newHarness(t *testing.T, adminMode bool) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	mem := storage.NewMemory()
	if adminMode {
		_ = mem.Set(context.Background(), storage.KeyUser, `{"id":"a1","role":"admin"}`)
		_ = mem.Set(context.Background(), storage.KeyToken, "tok")
	}

	h := &harness{
		backend: mocks.NewMockBackend(ctrl),
		lister:  mocks.NewMockLister(ctrl),
		creator: mocks.NewMockCreator(ctrl),
	}
	sess := session.New(context.Background(), noAuth{}, mem)
	h.model = NewModel(Deps{
		Session:   sess,
		Catalog:   catalog.New(h.backend, sess),
		Directory: directory.New(h.lister, sess),
		Creator:   h.creator,
		Inquiry: inquiry.New(senderFunc(func(_ context.Context, in model.Inquiry) error {
			h.sent = append(h.sent, in)
			return nil
		})),
		AdminMode: adminMode,
	})

	h.backend.EXPECT().ListPlots(gomock.Any()).Return(plots, nil)
	h.send(plotsLoadedMsg{res: h.model.deps.Catalog.FetchProperties(context.Background())})
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

type senderFunc func(ctx context.Context, in model.Inquiry) error

func (f senderFunc) SubmitInquiry(ctx context.Context, in model.Inquiry) error { return f(ctx, in) }

// send delivers msg and returns the follow-up command
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

// run delivers msg and feeds the message produced by its command back in
func (h *harness) run(msg tea.Msg) {
	if cmd := h.send(msg); cmd != nil {
		if out := cmd(); out != nil {
			h.send(out)
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadedPlotsAreListed(t *testing.T) {
	h := newHarness(t, false)
	if diff := cmp.Diff(plots, h.model.plots); diff != "" {
		t.Fatalf("plots mismatch (-want +got):\n%s", diff)
	}
	view := h.model.View()
	if !strings.Contains(view, "Plot A") || !strings.Contains(view, "2,500,000") {
		t.Errorf("view missing plot row:\n%s", view)
	}
	if strings.Contains(view, "Users (") {
		t.Error("users tab must be hidden outside admin mode")
	}
}

func TestFilterNarrowsWithoutFetching(t *testing.T) {
	h := newHarness(t, false)

	h.send(keyRunes("/"))
	if h.model.mode != ModeFilter {
		t.Fatalf("expected filter mode, got %v", h.model.mode)
	}
	for _, r := range "CUTT" {
		h.send(keyRunes(string(r)))
	}
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if len(h.model.plots) != 1 || h.model.plots[0].ID != "p2" {
		t.Fatalf("unexpected filtered plots %+v", h.model.plots)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if len(h.model.plots) != len(plots) || h.model.filterText != "" {
		t.Fatal("escape should reset the filter")
	}
}

func TestBrowseDetailsRequiresLogin(t *testing.T) {
	h := newHarness(t, false)
	h.backend.EXPECT().GetPlot(gomock.Any(), "", "p1").Return(model.Plot{}, model.ErrNoToken)

	h.run(tea.KeyMsg{Type: tea.KeyEnter})

	if h.model.mode == ModeView {
		t.Fatal("view must not open without a token")
	}
	if !strings.Contains(h.model.message, "Login required") {
		t.Errorf("unexpected message %q", h.model.message)
	}
}

func TestAdminViewUsesHeldRecord(t *testing.T) {
	h := newHarness(t, true)

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.model.mode != ModeView || h.model.viewPlot == nil || h.model.viewPlot.ID != "p1" {
		t.Fatalf("expected view of p1, got mode %v plot %+v", h.model.mode, h.model.viewPlot)
	}
	h.send(keyRunes("x"))
	if h.model.mode != ModeNormal {
		t.Fatal("any key should close the view")
	}
}

func TestDeletePropertyAsksFirst(t *testing.T) {
	h := newHarness(t, true)

	h.send(keyRunes("d"))
	if h.model.mode != ModeConfirm {
		t.Fatalf("expected confirm mode, got %v", h.model.mode)
	}
	h.send(keyRunes("n"))
	if h.model.mode != ModeNormal || h.model.message != "Cancelled" {
		t.Fatalf("decline should cancel, got mode %v message %q", h.model.mode, h.model.message)
	}

	h.backend.EXPECT().DeletePlot(gomock.Any(), "tok", "p1").Return(nil)
	h.send(keyRunes("d"))
	h.run(keyRunes("y"))

	if h.model.message != "Property deleted successfully!" {
		t.Errorf("unexpected message %q", h.model.message)
	}
	if len(h.model.plots) != len(plots) {
		t.Error("the deleted entry stays visible until the next refresh")
	}
}

func TestDeleteUserIsReportedUnsupported(t *testing.T) {
	h := newHarness(t, true)
	h.send(usersLoadedMsg{res: model.Ok([]model.Account{{ID: "u1", Name: "Ann", Role: model.RoleUser}})})

	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if h.model.tab != TabUsers {
		t.Fatal("tab should switch to users in admin mode")
	}
	h.send(keyRunes("d"))
	h.run(keyRunes("y"))

	if !strings.Contains(h.model.message, "not supported") {
		t.Errorf("unexpected message %q", h.model.message)
	}
}

func TestEditFormSubmitsNormalizedPatch(t *testing.T) {
	h := newHarness(t, true)

	h.send(keyRunes("e"))
	if h.model.mode != ModeForm || h.model.form.kind != formEditPlot {
		t.Fatalf("expected edit form, got mode %v", h.model.mode)
	}
	h.model.form.inputs[8].SetValue("Park,  Security ,  , Pool")

	want := model.PlotPatch{
		Name:      "Plot A",
		Location:  "Bhubaneswar",
		Price:     2500000,
		Amenities: []string{"Park", "Security", "Pool"},
	}
	h.backend.EXPECT().UpdatePlot(gomock.Any(), "tok", "p1", want).Return(nil)
	h.backend.EXPECT().ListPlots(gomock.Any()).Return(plots, nil)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("submit should return a command")
	}
	refresh := h.send(cmd())
	if h.model.message != "Property updated successfully!" {
		t.Errorf("unexpected message %q", h.model.message)
	}
	if refresh == nil {
		t.Fatal("a successful edit should refresh the catalog")
	}
	h.send(refresh())
}

func TestInterestFormSendsInquiry(t *testing.T) {
	h := newHarness(t, false)

	h.send(keyRunes("i"))
	if h.model.mode != ModeForm || h.model.form.kind != formInterest {
		t.Fatalf("expected interest form, got mode %v", h.model.mode)
	}
	for i, v := range []string{"Ann", "ann@b.com", "9999", "Cuttack"} {
		h.model.form.inputs[i].SetValue(v)
	}
	h.run(tea.KeyMsg{Type: tea.KeyCtrlS})

	want := []model.Inquiry{{Name: "Ann", Email: "ann@b.com", Phone: "9999", Location: "Cuttack", InterestedPlot: "Plot A"}}
	if diff := cmp.Diff(want, h.sent); diff != "" {
		t.Errorf("inquiry mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFormWithoutImages(t *testing.T) {
	f := newPlotForm(formAddPlot, model.Plot{})
	if len(f.inputs) != len(plotLabels)+1 {
		t.Fatalf("add form should carry an images field, got %d inputs", len(f.inputs))
	}
	if paths := f.imagePaths(); len(paths) != 0 {
		t.Errorf("expected no images, got %v", paths)
	}
	f.inputs[9].SetValue("a.jpg, , b.jpg")
	if diff := cmp.Diff([]string{"a.jpg", "b.jpg"}, f.imagePaths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLogoutLeavesAdminMode(t *testing.T) {
	h := newHarness(t, true)
	h.run(keyRunes("L"))

	if h.model.deps.AdminMode || h.model.tab != TabProperties {
		t.Fatal("logout should drop admin mode")
	}
	if h.model.deps.Session.IsAuthenticated(context.Background()) {
		t.Fatal("token should be cleared")
	}
}
