package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func contextWithRole(e *echo.Echo, role string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), UserRoleKey, role)
	req = req.WithContext(ctx)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, "professional")

	called := false
	handler := func(c echo.Context) error {
		called = true
		return nil
	}

	if err := RequireRole("professional")(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected handler to be called")
	}
}

func TestRequireRole_AdminBypasses(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, "admin")

	called := false
	handler := func(c echo.Context) error {
		called = true
		return nil
	}

	if err := RequireRole("professional")(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected admin to bypass role check")
	}
}

func TestRequireRole_Denies(t *testing.T) {
	e := echo.New()
	c := contextWithRole(e, "client")

	err := RequireRole("professional")(func(c echo.Context) error { return nil })(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}
