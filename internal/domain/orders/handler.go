package orders

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
	g := api.Group("/orders")
	g.POST("", h.CreateOrder)
	g.GET("/patient/:pacienteID", h.ListPatientOrders)
	g.GET("/:id", h.GetOrder)
}

func (h *Handler) CreateOrder(c echo.Context) error {
	var o Order
	if err := c.Bind(&o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateOrder(c.Request().Context(), &o); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "order_id": o.ID})
}

func (h *Handler) GetOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := h.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "order": o})
}

func (h *Handler) ListPatientOrders(c echo.Context) error {
	pacienteID, err := uuid.Parse(c.Param("pacienteID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente id")
	}
	items, err := h.svc.ListPatientOrders(c.Request().Context(), pacienteID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Order{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "orders": items})
}
