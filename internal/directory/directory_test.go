package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/existflow/plotline/internal/mocks"
	"github.com/existflow/plotline/internal/model"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"
)

var ctx = context.Background()

func TestFetchAllUsers(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)
	tokens := mocks.NewMockTokenSource(ctrl)

	accounts := []model.Account{
		{ID: "u1", Name: "Ann", Email: "ann@b.com", Role: model.RoleUser, CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "a1", Name: "Root", Email: "root@b.com", Role: model.RoleAdmin},
	}
	tokens.EXPECT().Token(gomock.Any()).Return("tok1")
	lister.EXPECT().ListUsers(gomock.Any(), "tok1").Return(accounts, nil)

	d := New(lister, tokens)
	res := d.FetchAllUsers(ctx)
	if !res.Success() {
		t.Fatal(res.Message())
	}
	if diff := cmp.Diff(accounts, d.Users()); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}

	u, ok := d.Find("a1")
	if !ok || u.Name != "Root" {
		t.Errorf("find a1: got %+v, %v", u, ok)
	}
	if _, ok := d.Find("missing"); ok {
		t.Error("find should miss unknown ids")
	}
}

func TestFetchAllUsersFailureKeepsPreviousList(t *testing.T) {
	ctrl := gomock.NewController(t)
	lister := mocks.NewMockLister(ctrl)
	tokens := mocks.NewMockTokenSource(ctrl)
	tokens.EXPECT().Token(gomock.Any()).Return("tok1").Times(2)

	first := []model.Account{{ID: "u1"}}
	gomock.InOrder(
		lister.EXPECT().ListUsers(gomock.Any(), "tok1").Return(first, nil),
		lister.EXPECT().ListUsers(gomock.Any(), "tok1").Return(nil, errors.New("HTTP error! status: 500")),
	)

	d := New(lister, tokens)
	d.FetchAllUsers(ctx)
	res := d.FetchAllUsers(ctx)
	if res.Success() {
		t.Fatal("expected failure")
	}
	if diff := cmp.Diff(first, d.Users()); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}
