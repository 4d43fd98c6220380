package procedures

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
	g := api.Group("/procedures")
	g.GET("", h.ListProcedures)
	g.POST("", h.CreateProcedure)
	g.GET("/categories", h.GetCategories)
	g.GET("/:id", h.GetProcedure)
}

func (h *Handler) ListProcedures(c echo.Context) error {
	activeOnly := c.QueryParam("active_only") != "false"
	items, err := h.svc.ListProcedures(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Procedure{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "procedures": items})
}

func (h *Handler) CreateProcedure(c echo.Context) error {
	var p Procedure
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProcedure(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "procedure": p})
}

func (h *Handler) GetCategories(c echo.Context) error {
	categories, err := h.svc.Categories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "categories": categories})
}

func (h *Handler) GetProcedure(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetProcedure(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "procedure not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "procedure": p})
}
