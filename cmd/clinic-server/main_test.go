package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPublicPath(t *testing.T) {
	public := []string{
		"/health",
		"/health/db",
		"/api/auth/login",
		"/api/auth/signup",
		"/api/whatsapp/webhook",
		"/api/telemedicine/ws/room-123",
	}
	for _, p := range public {
		if !publicPath(p) {
			t.Errorf("publicPath(%q) = false, want true", p)
		}
	}

	protected := []string{
		"/api/patients",
		"/api/auth/me",
		"/api/whatsapp/messages",
		"/api/whatsapp/send/message",
		"/api/telemedicine/sessions",
		"/api/dashboard/stats",
	}
	for _, p := range protected {
		if publicPath(p) {
			t.Errorf("publicPath(%q) = true, want false", p)
		}
	}
}

func TestSkipPublic(t *testing.T) {
	deny := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "no token")
		}
	}

	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	wrapped := skipPublic(deny)(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	rec := httptest.NewRecorder()
	if err := wrapped(e.NewContext(req, rec)); err != nil {
		t.Errorf("public path should bypass auth, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	rec = httptest.NewRecorder()
	err := wrapped(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("protected path should hit the auth middleware")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("unexpected error: %v", err)
	}
}
