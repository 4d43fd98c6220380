package identity

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/auth")
	g.POST("/login", h.Login)
	g.POST("/signup", h.Signup)
	g.POST("/logout", h.Logout)
	g.GET("/me", h.Me)

	api.GET("/professionals", h.ListProfessionals)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	profile, token, err := h.svc.Login(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"session": map[string]interface{}{"access_token": token, "token_type": "bearer"},
		"user":    profile,
	})
}

func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	profile, err := h.svc.Signup(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "user": profile})
}

// Logout is stateless: tokens simply expire. The endpoint exists so clients
// have a uniform call to clear their session against.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) Me(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	id, err := uuid.Parse(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	profile, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "user": profile})
}

func (h *Handler) ListProfessionals(c echo.Context) error {
	items, err := h.svc.ListProfessionals(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Profile{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "professionals": items})
}
