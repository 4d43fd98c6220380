package dashboard

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/dashboard")
	g.GET("/stats", h.Stats)
	g.GET("/revenue-chart", h.RevenueChart)
	g.GET("/top-procedures", h.TopProcedures)
}

func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "stats": stats})
}

func (h *Handler) RevenueChart(c echo.Context) error {
	months, _ := strconv.Atoi(c.QueryParam("months"))
	points, err := h.svc.RevenueChart(c.Request().Context(), months)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "data": points})
}

func (h *Handler) TopProcedures(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.svc.TopProcedures(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "procedures": items})
}
