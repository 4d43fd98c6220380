package telemedicine

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/signaling"
)

type Handler struct {
	svc       *Service
	signaling *signaling.Handler
}

func NewHandler(svc *Service, sig *signaling.Handler) *Handler {
	return &Handler{svc: svc, signaling: sig}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/telemedicine")
	g.POST("/sessions", h.CreateSession)
	g.GET("/sessions/:id", h.GetSession)
	g.PATCH("/sessions/:id/start", h.StartSession)
	g.PATCH("/sessions/:id/end", h.EndSession)
	g.GET("/ws/:roomID", h.signaling.HandleConnect)
}

func (h *Handler) CreateSession(c echo.Context) error {
	var session Session
	if err := c.Bind(&session); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateSession(c.Request().Context(), &session); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":               true,
		"session":               session,
		"join_url_patient":      fmt.Sprintf("/telemedicine/join/%s?role=patient", session.RoomID),
		"join_url_professional": fmt.Sprintf("/telemedicine/join/%s?role=professional", session.RoomID),
	})
}

func (h *Handler) GetSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	session, err := h.svc.GetSession(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "session": session})
}

func (h *Handler) StartSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	session, err := h.svc.StartSession(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "session": session})
}

func (h *Handler) EndSession(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var body struct {
		Notes *string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	session, err := h.svc.EndSession(c.Request().Context(), id, body.Notes)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "session": session})
}
