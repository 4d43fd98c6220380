package financial

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/financial")
	g.POST("", h.CreateRecord)
	g.GET("", h.ListRecords)
	g.GET("/summary", h.GetSummary)
}

func (h *Handler) CreateRecord(c echo.Context) error {
	var r Record
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRecord(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "record": r})
}

func (h *Handler) ListRecords(c echo.Context) error {
	filter := Filter{
		Type:      c.QueryParam("type"),
		Status:    c.QueryParam("status"),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	items, err := h.svc.ListRecords(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Record{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "records": items})
}

func (h *Handler) GetSummary(c echo.Context) error {
	summary, err := h.svc.Summarize(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "summary": summary})
}
