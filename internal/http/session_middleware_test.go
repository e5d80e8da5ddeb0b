package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"todo-app/internal/domain"
	"todo-app/internal/metrics"
	"todo-app/internal/service"
)

// storeSession guarda una sesion directamente y devuelve la cookie firmada.
func storeSession(t *testing.T, app *testApp, token string, authenticated bool, expiresAt time.Time) *http.Cookie {
	t.Helper()
	session := domain.Session{
		ID:              service.HashSessionToken(token),
		IsAuthenticated: authenticated,
		User:            domain.SessionUser{UserID: "u-1", Email: "a@x.io", Username: "alice"},
		CreatedAt:       time.Now().UTC(),
		ExpiresAt:       expiresAt,
	}
	if err := app.sessions.Create(context.Background(), session); err != nil {
		t.Fatalf("store session: %v", err)
	}
	value, err := app.signer.Sign(token, expiresAt)
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}
	return &http.Cookie{Name: "session_id", Value: value}
}

func TestSessionGuard_Denies(t *testing.T) {
	app := newTestApp(t, nil)
	valid := storeSession(t, app, "valid-token", true, time.Now().Add(time.Hour))

	unknown, err := app.signer.Sign("never-stored", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}
	otherSigner := service.NewCookieSigner("ffffffffffffffffffffffffffffffff")
	forged, err := otherSigner.Sign("valid-token", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}

	cases := []struct {
		name    string
		cookies []*http.Cookie
	}{
		{"no cookie", nil},
		{"unknown token", []*http.Cookie{{Name: "session_id", Value: unknown}}},
		{"forged signature", []*http.Cookie{{Name: "session_id", Value: forged}}},
		{"tampered value", []*http.Cookie{{Name: "session_id", Value: valid.Value + "x"}}},
		{"garbage", []*http.Cookie{{Name: "session_id", Value: "not-a-cookie"}}},
		{"unauthenticated session", []*http.Cookie{storeSession(t, app, "anon-token", false, time.Now().Add(time.Hour))}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(app.router, http.MethodGet, "/dashboard", nil, tc.cookies...)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status 401, got %d", rec.Code)
			}
			if got := decodeBody(t, rec)["message"]; got != "please login again" {
				t.Fatalf("unexpected message %v", got)
			}
		})
	}

	if got := testutil.ToFloat64(app.metrics.AuthAttempts.WithLabelValues("session", metrics.OutcomeRejected)); got != float64(len(cases)) {
		t.Fatalf("expected %d rejected session checks, got %v", len(cases), got)
	}
}

func TestSessionGuard_AllowsValidSession(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := storeSession(t, app, "valid-token", true, time.Now().Add(time.Hour))

	rec := performRequest(app.router, http.MethodGet, "/dashboard", nil, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	data, _ := decodeBody(t, rec)["data"].(map[string]any)
	if data["userId"] != "u-1" || data["username"] != "alice" {
		t.Fatalf("unexpected session user %v", data)
	}
}

func TestSessionGuard_BearerHeader(t *testing.T) {
	app := newTestApp(t, nil)
	cookie := storeSession(t, app, "valid-token", true, time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+cookie.Value)
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestSessionGuard_StoreFailureIsServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	signer := service.NewCookieSigner(testSecret)
	authSvc := service.NewAuthService(logger, newMockUserRepo(), service.NewBcryptHasher(4), failingSessionStore{}, time.Hour)

	r := gin.New()
	r.GET("/private", SessionAuthMiddleware(logger, authSvc, signer, "session_id", nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	value, err := signer.Sign("some-token", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("sign cookie: %v", err)
	}
	rec := performRequest(r, http.MethodGet, "/private", nil, &http.Cookie{Name: "session_id", Value: value})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestSessionGuard_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", SessionAuthMiddleware(zap.NewNop(), nil, nil, "session_id", nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := performRequest(r, http.MethodGet, "/private", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
