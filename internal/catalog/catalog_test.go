package catalog

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/mocks"
	"github.com/existflow/plotline/internal/model"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

var ctx = context.Background()

var fixture = []model.Plot{
	{ID: "p1", Name: "Plot A", Location: "Bhubaneswar", Address: "12 Temple Rd"},
	{ID: "p2", Name: "Plot B", Location: "Cuttack", Address: "4 River St"},
	{ID: "p3", Name: "Lakeview", Location: "Puri", Address: "Bhubaneswar Highway"},
}

func loaded(t *testing.T) (*Store, *mocks.MockBackend, *mocks.MockTokenSource) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	tokens := mocks.NewMockTokenSource(ctrl)

	backend.EXPECT().ListPlots(gomock.Any()).Return(fixture, nil)
	s := New(backend, tokens)
	if res := s.FetchProperties(ctx); !res.Success() {
		t.Fatalf("fetch failed: %s", res.Message())
	}
	return s, backend, tokens
}

func TestFetchPropertiesReplacesBothSets(t *testing.T) {
	s, _, _ := loaded(t)

	if diff := cmp.Diff(fixture, s.All()); diff != "" {
		t.Errorf("all mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(fixture, s.Filtered()); diff != "" {
		t.Errorf("filtered mismatch (-want +got):\n%s", diff)
	}
	if s.Loading() || s.Err() != nil {
		t.Errorf("unexpected state loading=%v err=%v", s.Loading(), s.Err())
	}
}

func TestFetchPropertiesFailureEmptiesSets(t *testing.T) {
	s, backend, _ := loaded(t)

	backend.EXPECT().ListPlots(gomock.Any()).Return(nil, errors.New("failed to connect: refused"))
	res := s.FetchProperties(ctx)
	if res.Success() {
		t.Fatal("expected failure")
	}
	if len(s.All()) != 0 || len(s.Filtered()) != 0 {
		t.Fatal("failure must empty both sets")
	}
	if s.Err() == nil || s.Loading() {
		t.Fatalf("unexpected state loading=%v err=%v", s.Loading(), s.Err())
	}
}

func TestFilterByQuery(t *testing.T) {
	s, _, _ := loaded(t)

	got := s.FilterProperties(model.Criteria{Query: "bhubaneswar"})
	want := []model.Plot{fixture[0], fixture[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.Filtered()); diff != "" {
		t.Errorf("filtered view not stored (-want +got):\n%s", diff)
	}
}

func TestFilterTwoPlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	plots := []model.Plot{
		{Name: "Plot A", Location: "Bhubaneswar"},
		{Name: "Plot B", Location: "Cuttack"},
	}
	backend.EXPECT().ListPlots(gomock.Any()).Return(plots, nil)

	s := New(backend, mocks.NewMockTokenSource(ctrl))
	s.FetchProperties(ctx)

	got := s.FilterProperties(model.Criteria{Query: "bhubaneswar"})
	if diff := cmp.Diff(plots[:1], got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterIsSubsetAndEmptyCriteriaIsIdentity(t *testing.T) {
	s, _, _ := loaded(t)

	ids := map[string]bool{}
	for _, p := range fixture {
		ids[p.ID] = true
	}

	for _, c := range []model.Criteria{
		{Query: "plot"},
		{Query: "RIVER"},
		{Query: "nowhere"},
		{Status: "sold"},
		{Type: "villa", Query: "puri"},
	} {
		for _, p := range s.FilterProperties(c) {
			if !ids[p.ID] {
				t.Errorf("%+v produced %s outside the full set", c, p.ID)
			}
		}
	}

	if diff := cmp.Diff(fixture, s.FilterProperties(model.Criteria{})); diff != "" {
		t.Errorf("empty criteria must return the full set (-want +got):\n%s", diff)
	}
}

func TestFilterIgnoresCase(t *testing.T) {
	s, _, _ := loaded(t)
	for _, q := range []string{"lakeview", "LAKEVIEW", "LaKeViEw", "puri", "PURI"} {
		got := s.FilterProperties(model.Criteria{Query: q})
		if len(got) != 1 || got[0].ID != "p3" {
			t.Errorf("query %q: expected p3, got %+v", q, got)
		}
	}
}

func TestResetFilters(t *testing.T) {
	s, _, _ := loaded(t)
	s.FilterProperties(model.Criteria{Query: "cuttack"})

	if diff := cmp.Diff(fixture, s.ResetFilters()); diff != "" {
		t.Errorf("reset mismatch (-want +got):\n%s", diff)
	}
	if !s.Criteria().IsEmpty() {
		t.Error("criteria should be cleared")
	}
}

func TestUpdateWithoutTokenMakesNoRequest(t *testing.T) {
	// The real client is used with a transport that fails the test if reached.
	client := api.New("http://backend.invalid", &http.Client{Transport: failTransport{t}})
	ctrl := gomock.NewController(t)
	tokens := mocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().Token(gomock.Any()).Return("").Times(3)

	s := New(client, tokens)
	patch := model.PlotPatch{Name: "Plot A", Price: 100}

	if res := s.UpdateProperty(ctx, "p1", patch); !errors.Is(res.Err, model.ErrNoToken) {
		t.Errorf("update: expected ErrNoToken, got %v", res.Err)
	}
	if res := s.DeleteProperty(ctx, "p1"); !errors.Is(res.Err, model.ErrNoToken) {
		t.Errorf("delete: expected ErrNoToken, got %v", res.Err)
	}
	if res := s.FetchPropertyDetails(ctx, "p1"); !errors.Is(res.Err, model.ErrNoToken) {
		t.Errorf("details: expected ErrNoToken, got %v", res.Err)
	}
}

func TestMutationsUseTokenAndKeepLocalState(t *testing.T) {
	s, backend, tokens := loaded(t)
	tokens.EXPECT().Token(gomock.Any()).Return("tok1").AnyTimes()

	patch := model.PlotPatch{Name: "Plot A+", Amenities: []string{"Park"}}
	backend.EXPECT().UpdatePlot(gomock.Any(), "tok1", "p1", patch).Return(nil)
	backend.EXPECT().DeletePlot(gomock.Any(), "tok1", "p2").Return(nil)

	if res := s.UpdateProperty(ctx, "p1", patch); !res.Success() {
		t.Fatal(res.Message())
	}
	if res := s.DeleteProperty(ctx, "p2"); !res.Success() {
		t.Fatal(res.Message())
	}
	if len(s.All()) != len(fixture) {
		t.Error("delete must not remove the plot locally")
	}
}

func TestMutationErrorIsReturned(t *testing.T) {
	s, backend, tokens := loaded(t)
	tokens.EXPECT().Token(gomock.Any()).Return("tok1")
	backend.EXPECT().DeletePlot(gomock.Any(), "tok1", "p1").Return(&api.Error{Status: 403, Message: "Admin access required"})

	res := s.DeleteProperty(ctx, "p1")
	if res.Message() != "Admin access required" {
		t.Fatalf("unexpected message %q", res.Message())
	}
}

func TestFetchPropertyDetails(t *testing.T) {
	s, backend, tokens := loaded(t)
	full := model.Plot{ID: "p1", Name: "Plot A", Amenities: []string{"Park"}, Images: []string{"/uploads/a.jpg"}}
	tokens.EXPECT().Token(gomock.Any()).Return("tok1")
	backend.EXPECT().GetPlot(gomock.Any(), "tok1", "p1").Return(full, nil)

	res := s.FetchPropertyDetails(ctx, "p1")
	if diff := cmp.Diff(full, res.Value); diff != "" {
		t.Errorf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	s := New(backend, mocks.NewMockTokenSource(ctrl))

	older := []model.Plot{{ID: "old"}}
	newer := []model.Plot{{ID: "new"}}

	release := make(chan struct{})
	started := make(chan struct{})
	gomock.InOrder(
		backend.EXPECT().ListPlots(gomock.Any()).DoAndReturn(func(context.Context) ([]model.Plot, error) {
			close(started)
			<-release
			return older, nil
		}),
		backend.EXPECT().ListPlots(gomock.Any()).Return(newer, nil),
	)

	first := make(chan model.Result[[]model.Plot])
	go func() { first <- s.FetchProperties(ctx) }()
	<-started

	if res := s.FetchProperties(ctx); !res.Success() {
		t.Fatalf("newer fetch failed: %s", res.Message())
	}
	close(release)

	if res := <-first; !errors.Is(res.Err, ErrSuperseded) {
		t.Fatalf("older fetch should be superseded, got %v", res.Err)
	}
	if diff := cmp.Diff(newer, s.All()); diff != "" {
		t.Errorf("stale response overwrote state (-want +got):\n%s", diff)
	}
	if s.Loading() {
		t.Error("loading should be cleared by the latest fetch")
	}
}

type failTransport struct{ t *testing.T }

func (f failTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.t.Errorf("unexpected request %s %s", r.Method, r.URL)
	return nil, errors.New("network disabled")
}

func TestReturnedPlotsDoNotAliasStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().ListPlots(gomock.Any()).Return([]model.Plot{
		{ID: "p1", Name: "Plot A", Amenities: []string{"Park"}, Images: []string{"/uploads/a.jpg"}},
	}, nil)
	s := New(backend, mocks.NewMockTokenSource(ctrl))

	res := s.FetchProperties(ctx)
	res.Value[0].Amenities[0] = "changed"

	all := s.All()
	all[0].Images[0] = "changed"

	filtered := s.Filtered()
	filtered[0].Amenities = append(filtered[0].Amenities[:0], "changed")

	got := s.All()[0]
	if got.Amenities[0] != "Park" || got.Images[0] != "/uploads/a.jpg" {
		t.Fatalf("store state changed through a returned copy: %+v", got)
	}
}
