package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/config"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/migrations"
	"github.com/bizdir/bizdirapi/internal/repository"
	"github.com/bizdir/bizdirapi/internal/services/directory"
	"github.com/bizdir/bizdirapi/internal/services/iam"
	"github.com/bizdir/bizdirapi/internal/storage"
)

type testHarness struct {
	srv    *Server
	ts     *httptest.Server
	iamSvc *iam.Service
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	db, err := bunx.NewDB(":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	ctx := context.Background()
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	enforcer, err := auth.InitEnforcer(db)
	require.NoError(t, err)

	store, err := storage.NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		ServerAddr:    "127.0.0.1:0",
		SessionSecret: "server-test-secret",
		SessionMaxAge: time.Hour,
	}
	iamSvc := iam.NewService(repository.NewBunUserRepository(db), cfg.SessionSecret, cfg.SessionMaxAge)
	dirSvc := directory.NewService(db)

	srv, err := New(cfg, iamSvc, dirSvc, store, enforcer)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return &testHarness{srv: srv, ts: ts, iamSvc: iamSvc}
}

// loginAs creates a user with the given role and returns a bearer token.
// The very first account is created as admin by the bootstrap rule, so
// harness users always start with one admin.
func (h *testHarness) loginAs(t *testing.T, email string, role models.Role) string {
	t.Helper()
	ctx := context.Background()
	_, err := h.iamSvc.CreateUser(ctx, iam.CreateUserInput{
		Name:     email,
		Email:    email,
		Password: "password1",
		Role:     role,
	})
	require.NoError(t, err)
	token, _, err := h.iamSvc.Login(ctx, email, "password1")
	require.NoError(t, err)
	return token
}

func (h *testHarness) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestHealthEndpoint(t *testing.T) {
	h := newHarness(t)
	resp, body := h.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}

func TestAnonymousAPIRejected(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodGet, "/api/businesses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginAndWhoAmI(t *testing.T) {
	h := newHarness(t)
	token := h.loginAs(t, "admin@example.com", models.RoleAdmin)

	resp, body := h.do(t, http.MethodGet, "/api/auth/whoami", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "admin@example.com", models.RoleAdmin)

	resp, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_SchemaRejectsBadPayload(t *testing.T) {
	h := newHarness(t)
	resp, _ := h.do(t, http.MethodPost, "/auth/login", "", map[string]string{"email": "a@b.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBusinessLifecycle_AdminOnly(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)
	guest := h.loginAs(t, "guest@example.com", models.RoleGuest)

	resp, _ := h.do(t, http.MethodPost, "/api/businesses", guest, map[string]any{
		"name": "Nope Inc", "contactEmail": "nope@example.com",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "guests cannot create")

	resp, body := h.do(t, http.MethodPost, "/api/businesses", admin, map[string]any{
		"name": "Acme Plumbing", "contactEmail": "acme@example.com", "industry": "plumbing",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var business models.Business
	require.NoError(t, json.Unmarshal(body, &business))
	assert.NotEmpty(t, business.ID)

	resp, _ = h.do(t, http.MethodGet, "/api/businesses/"+business.ID, guest, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "any session may query")

	resp, _ = h.do(t, http.MethodDelete, "/api/businesses/"+business.ID, guest, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "guests cannot delete")

	resp, _ = h.do(t, http.MethodDelete, "/api/businesses/"+business.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/api/businesses/"+business.ID, admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestManagerRowScopedUpdate(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)
	mara := h.loginAs(t, "mara@example.com", models.RoleManager)
	nico := h.loginAs(t, "nico@example.com", models.RoleManager)

	// Find mara's user id via whoami.
	_, body := h.do(t, http.MethodGet, "/api/auth/whoami", mara, nil)
	var maraUser models.User
	require.NoError(t, json.Unmarshal(body, &maraUser))

	resp, body := h.do(t, http.MethodPost, "/api/businesses", admin, map[string]any{
		"name": "Acme Plumbing", "contactEmail": "acme@example.com", "managerId": maraUser.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var business models.Business
	require.NoError(t, json.Unmarshal(body, &business))

	resp, _ = h.do(t, http.MethodPatch, "/api/businesses/"+business.ID, mara, map[string]any{
		"description": "pipes and drains",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode, "owning manager updates")

	resp, _ = h.do(t, http.MethodPatch, "/api/businesses/"+business.ID, nico, map[string]any{
		"description": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "foreign manager denied")
}

func TestReviewReplyDenormalizationOverHTTP(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)
	guest := h.loginAs(t, "guest@example.com", models.RoleGuest)

	resp, body := h.do(t, http.MethodPost, "/api/businesses", admin, map[string]any{
		"name": "Acme Plumbing", "contactEmail": "acme@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var business models.Business
	require.NoError(t, json.Unmarshal(body, &business))

	resp, _ = h.do(t, http.MethodPost, "/api/reviews", guest, map[string]any{
		"rating": 4, "content": "good", "businessId": business.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "creation is admin gated")

	resp, body = h.do(t, http.MethodPost, "/api/reviews", admin, map[string]any{
		"rating": 4, "content": "good", "businessId": business.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var review models.Review
	require.NoError(t, json.Unmarshal(body, &review))
	require.NotNil(t, review.UserID)

	resp, body = h.do(t, http.MethodPost, "/api/review-replies", admin, map[string]any{
		"reviewId": review.ID, "content": "thanks",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var reply models.ReviewReply
	require.NoError(t, json.Unmarshal(body, &reply))
	require.NotNil(t, reply.BusinessID)
	assert.Equal(t, business.ID, *reply.BusinessID)
}

func TestUserSelfUpdateOverHTTP(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, "admin@example.com", models.RoleAdmin)
	guest := h.loginAs(t, "guest@example.com", models.RoleGuest)

	_, body := h.do(t, http.MethodGet, "/api/auth/whoami", guest, nil)
	var me models.User
	require.NoError(t, json.Unmarshal(body, &me))

	resp, _ := h.do(t, http.MethodPatch, "/api/users/"+me.ID, guest, map[string]any{"name": "New Name"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPatch, "/api/users/"+me.ID, guest, map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "self update cannot escalate")

	resp, body = h.do(t, http.MethodGet, "/api/users", guest, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var visible []models.User
	require.NoError(t, json.Unmarshal(body, &visible))
	require.Len(t, visible, 1, "non-admin user listing is self scoped")
	assert.Equal(t, me.ID, visible[0].ID)
}

func TestImageUpload(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "faucet.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, h.ts.URL+"/api/images", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var image models.ProductImage
	require.NoError(t, json.Unmarshal(body, &image))
	assert.NotEmpty(t, image.FileName)

	// The stored file is served publicly.
	fileResp, err := http.Get(h.ts.URL + image.URL)
	require.NoError(t, err)
	served, _ := io.ReadAll(fileResp.Body)
	fileResp.Body.Close()
	assert.Equal(t, http.StatusOK, fileResp.StatusCode)
	assert.Equal(t, "png-bytes", string(served))
}

func TestJobListingGateAndValidation(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)

	resp, _ := h.do(t, http.MethodPost, "/api/job-listings", admin, map[string]any{
		"title": "Plumber", "employmentType": "gig",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "schema rejects unknown employment type")

	resp, body := h.do(t, http.MethodPost, "/api/job-listings", admin, map[string]any{
		"title": "Plumber", "employmentType": "full_time",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var listing models.JobListing
	require.NoError(t, json.Unmarshal(body, &listing))
	assert.False(t, listing.CreatedAt.IsZero())
}

func TestUnknownMethodOnResource(t *testing.T) {
	h := newHarness(t)
	admin := h.loginAs(t, "admin@example.com", models.RoleAdmin)

	req, err := http.NewRequest("TRACE", h.ts.URL+"/api/businesses", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
