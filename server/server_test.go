package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/existflow/plotline/internal/api"
	"github.com/existflow/plotline/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
)

const (
	testSecret     = "test-secret"
	adminEmail     = "admin@example.com"
	adminPassword  = "adminpass1"
	memberPassword = "memberpass1"
)

func setupTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	srv, err := New(Config{
		JWTSecret:     testSecret,
		TokenTTL:      time.Hour,
		AdminName:     "Admin",
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, api.New(ts.URL, ts.Client())
}

func adminToken(t *testing.T, client *api.Client) string {
	t.Helper()
	resp, err := client.LoginAdmin(context.Background(), model.Credentials{Email: adminEmail, Password: adminPassword})
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	return resp.Token
}

func memberToken(t *testing.T, client *api.Client) string {
	t.Helper()
	ctx := context.Background()
	if _, err := client.Register(ctx, model.Registration{Name: "Asha", Email: "asha@example.com", Password: memberPassword}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	resp, err := client.Login(ctx, model.Credentials{Email: "asha@example.com", Password: memberPassword})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return resp.Token
}

func TestRegisterAndLogin(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	user, err := client.Register(ctx, model.Registration{Name: "Asha", Email: "asha@example.com", Password: memberPassword})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" || user.Role != model.RoleUser {
		t.Fatalf("unexpected registered user: %+v", user)
	}
	if user.Token != "" {
		t.Fatal("registration must not issue a token")
	}

	_, err = client.Register(ctx, model.Registration{Name: "Asha", Email: "ASHA@example.com", Password: memberPassword})
	if api.StatusOf(err) != http.StatusConflict || err.Error() != "User already exists" {
		t.Fatalf("expected 409 User already exists, got %v", err)
	}

	resp, err := client.Login(ctx, model.Credentials{Email: "asha@example.com", Password: memberPassword})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token == "" || resp.User.ID != user.ID {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	_, err = client.Login(ctx, model.Credentials{Email: "asha@example.com", Password: "wrong-password"})
	if api.StatusOf(err) != http.StatusUnauthorized || err.Error() != "Invalid credentials" {
		t.Fatalf("expected 401 Invalid credentials, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	_, client := setupTestServer(t)

	_, err := client.Register(context.Background(), model.Registration{Name: "A", Email: "not-an-email", Password: "short"})
	if api.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if !strings.Contains(err.Error(), "email") {
		t.Fatalf("expected the email field to be reported, got %q", err)
	}
}

func TestAdminLogin(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	resp, err := client.LoginAdmin(ctx, model.Credentials{Email: adminEmail, Password: adminPassword})
	if err != nil {
		t.Fatalf("LoginAdmin() error = %v", err)
	}
	if !resp.User.IsAdmin() || resp.Token == "" {
		t.Fatalf("unexpected admin login response: %+v", resp)
	}

	memberToken(t, client)
	_, err = client.LoginAdmin(ctx, model.Credentials{Email: "asha@example.com", Password: memberPassword})
	if api.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %v", err)
	}
}

func TestPlotLifecycle(t *testing.T) {
	ts, client := setupTestServer(t)
	ctx := context.Background()
	token := adminToken(t, client)

	png := []byte("\x89PNG\r\n\x1a\n0000")
	patch := model.PlotPatch{
		Name:       "Plot A",
		Location:   "Bhubaneswar",
		Price:      2500000,
		SquareFeet: 1200,
		Amenities:  []string{"Park", "Security"},
	}
	created, err := client.CreatePlot(ctx, token, patch, []api.Upload{{Filename: "front.PNG", Content: bytes.NewReader(png)}})
	if err != nil {
		t.Fatalf("CreatePlot() error = %v", err)
	}
	if created.ID == "" || len(created.Images) != 1 || created.Image != created.Images[0] {
		t.Fatalf("unexpected created plot: %+v", created)
	}
	if !strings.HasPrefix(created.Image, "/uploads/") || !strings.HasSuffix(created.Image, ".png") {
		t.Fatalf("unexpected image path %q", created.Image)
	}
	if diff := cmp.Diff(patch.Amenities, created.Amenities); diff != "" {
		t.Errorf("amenities mismatch (-want +got):\n%s", diff)
	}

	res, err := http.Get(ts.URL + created.Image)
	if err != nil {
		t.Fatalf("fetch upload: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK || !bytes.Equal(body, png) {
		t.Fatalf("upload not served back: status %d", res.StatusCode)
	}

	plots, err := client.ListPlots(ctx)
	if err != nil {
		t.Fatalf("ListPlots() error = %v", err)
	}
	if len(plots) != 1 || plots[0].ID != created.ID {
		t.Fatalf("unexpected plot list: %+v", plots)
	}

	patch.Price = 2600000
	patch.Facing = "East"
	if err := client.UpdatePlot(ctx, token, created.ID, patch); err != nil {
		t.Fatalf("UpdatePlot() error = %v", err)
	}

	got, err := client.GetPlot(ctx, memberToken(t, client), created.ID)
	if err != nil {
		t.Fatalf("GetPlot() error = %v", err)
	}
	if got.Price != 2600000 || got.Facing != "East" || len(got.Images) != 1 {
		t.Fatalf("update not applied or images lost: %+v", got)
	}

	if err := client.DeletePlot(ctx, token, created.ID); err != nil {
		t.Fatalf("DeletePlot() error = %v", err)
	}
	_, err = client.GetPlot(ctx, token, created.ID)
	if api.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %v", err)
	}
	if err := client.DeletePlot(ctx, token, created.ID); api.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %v", err)
	}
}

func TestCreatePlotRejectsBadNumbers(t *testing.T) {
	ts, client := setupTestServer(t)
	token := adminToken(t, client)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/admin/plots",
		strings.NewReader("name=Plot+A&price=lots"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()
	member := memberToken(t, client)

	err := client.UpdatePlot(ctx, member, "any", model.PlotPatch{Name: "X"})
	if api.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for member update, got %v", err)
	}
	_, err = client.ListUsers(ctx, member)
	if api.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for member user list, got %v", err)
	}
	_, err = client.ListUsers(ctx, "garbage")
	if api.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad token, got %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	_, client := setupTestServer(t)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "someone",
		"role": model.RoleAdmin,
		"exp":  time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = client.ListUsers(context.Background(), expired)
	if api.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	_, client := setupTestServer(t)
	memberToken(t, client)

	users, err := client.ListUsers(context.Background(), adminToken(t, client))
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	var emails []string
	for _, u := range users {
		emails = append(emails, u.Email)
	}
	if diff := cmp.Diff([]string{adminEmail, "asha@example.com"}, emails); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	if users[0].Role != model.RoleAdmin || users[0].CreatedAt.IsZero() {
		t.Errorf("unexpected admin account: %+v", users[0])
	}
}

func TestContact(t *testing.T) {
	ts, client := setupTestServer(t)
	ctx := context.Background()

	err := client.SubmitInquiry(ctx, model.Inquiry{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", InterestedPlot: "Plot A"})
	if err != nil {
		t.Fatalf("SubmitInquiry() error = %v", err)
	}

	err = client.SubmitInquiry(ctx, model.Inquiry{Name: "Ravi"})
	if api.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("expected 400 for incomplete inquiry, got %v", err)
	}

	res, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if !strings.Contains(string(body), "plotline_inquiries_total 1") {
		t.Fatalf("inquiry counter not exported:\n%s", body)
	}
	if !strings.Contains(string(body), `plotline_http_requests_total{method="POST",route="/contact",status="400"} 1`) {
		t.Fatalf("request counter not exported:\n%s", body)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/admin/inquiries", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, client))
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list inquiries: %v", err)
	}
	defer res.Body.Close()

	var got []model.Inquiry
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		t.Fatalf("decode inquiries: %v", err)
	}
	want := []model.Inquiry{{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", InterestedPlot: "Plot A"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("inquiries mismatch (-want +got):\n%s", diff)
	}
}

func TestHealth(t *testing.T) {
	ts, _ := setupTestServer(t)

	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
}
