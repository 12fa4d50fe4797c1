package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/migrate"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/migrations"
)

type stubAuthenticator struct {
	principal auth.Principal
	err       error
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ string) (auth.Principal, error) {
	return s.principal, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSession_NoToken(t *testing.T) {
	h := RequireSession(&stubAuthenticator{})(okHandler())

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireSession_InvalidToken(t *testing.T) {
	h := RequireSession(&stubAuthenticator{err: auth.ErrTokenExpired})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "expired")
}

func TestRequireSession_SetsPrincipal(t *testing.T) {
	want := auth.Principal{ID: "u1", Role: models.RoleManager}
	var got auth.Principal
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := RequireSession(&stubAuthenticator{principal: want})(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, want, got)
}

func newTestEnforcer(t *testing.T) func(http.Handler) http.Handler {
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
	return EnforcePolicy(enforcer)
}

func TestEnforcePolicy_Gates(t *testing.T) {
	enforce := newTestEnforcer(t)

	cases := []struct {
		name   string
		role   models.Role
		method string
		path   string
		want   int
	}{
		{"admin creates business", models.RoleAdmin, http.MethodPost, "/api/businesses", http.StatusOK},
		{"admin deletes review", models.RoleAdmin, http.MethodDelete, "/api/reviews/abc", http.StatusOK},
		{"manager queries products", models.RoleManager, http.MethodGet, "/api/products", http.StatusOK},
		{"manager updates business", models.RoleManager, http.MethodPut, "/api/businesses/abc", http.StatusOK},
		{"manager cannot create", models.RoleManager, http.MethodPost, "/api/businesses", http.StatusForbidden},
		{"manager cannot delete", models.RoleManager, http.MethodDelete, "/api/products/abc", http.StatusForbidden},
		{"guest queries reviews", models.RoleGuest, http.MethodGet, "/api/reviews", http.StatusOK},
		{"guest updates own user", models.RoleGuest, http.MethodPatch, "/api/users/abc", http.StatusOK},
		{"guest cannot update business", models.RoleGuest, http.MethodPut, "/api/businesses/abc", http.StatusForbidden},
		{"guest cannot create complaint reply", models.RoleGuest, http.MethodPost, "/api/complaint-replies", http.StatusForbidden},
		{"ungated auth route passes", models.RoleGuest, http.MethodGet, "/api/auth/whoami", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := enforce(okHandler())
			req := httptest.NewRequest(tc.method, tc.path, nil)
			ctx := auth.SetPrincipalContext(req.Context(), auth.Principal{ID: "u1", Role: tc.role})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req.WithContext(ctx))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestEnforcePolicy_MissingPrincipal(t *testing.T) {
	enforce := newTestEnforcer(t)
	h := enforce(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
