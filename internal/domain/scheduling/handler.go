package scheduling

import (
	"errors"
	"net/http"
	"time"

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
	g := api.Group("/appointments")
	g.POST("", h.CreateAppointment)
	g.GET("", h.ListAppointments)
	g.GET("/available-slots/:professionalID", h.GetAvailableSlots)
	g.GET("/:id", h.GetAppointment)
	g.PATCH("/:id", h.UpdateAppointment)
	g.DELETE("/:id", h.CancelAppointment)

	av := api.Group("/availability")
	av.POST("", h.CreateWindow)
	av.GET("/:professionalID", h.ListWindows)
	av.PUT("/:id", h.UpdateWindow)
	av.DELETE("/:id", h.DeleteWindow)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		if errors.Is(err, ErrConflict) {
			return echo.NewHTTPError(http.StatusConflict, "Horário indisponível")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "appointment": a})
}

func (h *Handler) ListAppointments(c echo.Context) error {
	var filter AppointmentFilter

	if v := c.QueryParam("professional_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
		}
		filter.ProfessionalID = &id
	}
	if v := c.QueryParam("paciente_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente_id")
		}
		filter.PacienteID = &id
	}
	filter.Status = c.QueryParam("status")
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		filter.StartDate = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		filter.EndDate = &t
	}

	items, err := h.svc.ListAppointments(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*Appointment{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "appointments": items})
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "appointment": a})
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var update AppointmentUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), id, &update)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "appointment": a})
}

func (h *Handler) CancelAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.CancelAppointment(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "message": "Appointment cancelled"})
}

func (h *Handler) GetAvailableSlots(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional id")
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
	}
	procedimentoID, err := uuid.Parse(c.QueryParam("procedimento_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid procedimento_id")
	}

	slots, err := h.svc.AvailableSlotsFor(c.Request().Context(), professionalID, date, procedimentoID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "slots": slots})
}

// -- Availability window handlers --

func (h *Handler) CreateWindow(c echo.Context) error {
	var w AvailabilityWindow
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateWindow(c.Request().Context(), &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"success": true, "availability": w})
}

func (h *Handler) ListWindows(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional id")
	}
	items, err := h.svc.ListWindows(c.Request().Context(), professionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*AvailabilityWindow{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "availability": items})
}

func (h *Handler) UpdateWindow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var w AvailabilityWindow
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateWindow(c.Request().Context(), id, &w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "availability": w})
}

func (h *Handler) DeleteWindow(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteWindow(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
