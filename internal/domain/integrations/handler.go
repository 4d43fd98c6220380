package integrations

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/integrations")
	g.POST("", h.CreateIntegration)
	g.GET("", h.ListIntegrations)
	g.PATCH("/:id/toggle", h.ToggleIntegration)
	g.POST("/api-keys", h.SaveAPIKey)
	g.GET("/api-keys", h.ListAPIKeys)
	g.GET("/api-keys/:service", h.GetAPIKeyByService)
}

func (h *Handler) CreateIntegration(c echo.Context) error {
	var i Integration
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateIntegration(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "integration": i})
}

func (h *Handler) ListIntegrations(c echo.Context) error {
	items, err := h.svc.ListIntegrations(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*IntegrationSummary{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "integrations": items})
}

func (h *Handler) ToggleIntegration(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	active, err := h.svc.ToggleIntegration(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "integration not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "is_active": active})
}

func (h *Handler) SaveAPIKey(c echo.Context) error {
	var k APIKey
	if err := c.Bind(&k); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SaveAPIKey(c.Request().Context(), &k); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "api_key": k})
}

func (h *Handler) ListAPIKeys(c echo.Context) error {
	items, err := h.svc.ListAPIKeys(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*APIKeySummary{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "api_keys": items})
}

func (h *Handler) GetAPIKeyByService(c echo.Context) error {
	k, err := h.svc.GetAPIKeyByService(c.Request().Context(), c.Param("service"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "api key not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "api_key": k})
}
