package automation

import (
	"net/http"
	"strconv"

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
	g := api.Group("/automation")
	g.POST("/rules", h.CreateRule)
	g.GET("/rules", h.ListRules)
	g.GET("/rules/:id", h.GetRule)
	g.PATCH("/rules/:id", h.UpdateRule)
	g.DELETE("/rules/:id", h.DeleteRule)
	g.GET("/logs", h.ListLogs)
	g.POST("/test/:id", h.TestRule)
}

func (h *Handler) CreateRule(c echo.Context) error {
	var r Rule
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRule(c.Request().Context(), &r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "rule": r})
}

func (h *Handler) ListRules(c echo.Context) error {
	activeOnly := c.QueryParam("active_only") != "false"
	items, err := h.svc.ListRules(c.Request().Context(), activeOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Rule{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "rules": items})
}

func (h *Handler) GetRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rule, err := h.svc.GetRule(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "rule": rule})
}

func (h *Handler) UpdateRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var update RuleUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rule, err := h.svc.UpdateRule(c.Request().Context(), id, &update)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "rule": rule})
}

func (h *Handler) DeleteRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteRule(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ListLogs(c echo.Context) error {
	var ruleID *uuid.UUID
	if v := c.QueryParam("rule_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid rule_id")
		}
		ruleID = &id
	}
	limit := 100
	if v := c.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	items, err := h.svc.ListLogs(c.Request().Context(), ruleID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*LogEntry{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "logs": items})
}

func (h *Handler) TestRule(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var data map[string]string
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	message, err := h.svc.TestRule(c.Request().Context(), id, data)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": message})
}
