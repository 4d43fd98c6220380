package whatsappbot

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
)

// PairingSource fetches the Evolution instance pairing code.
type PairingSource interface {
	PairingCode(ctx context.Context) (string, error)
}

type Handler struct {
	svc      *Service
	messages MessageRepository
	pairing  PairingSource
	logger   zerolog.Logger
}

func NewHandler(svc *Service, messages MessageRepository, pairing PairingSource, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, messages: messages, pairing: pairing, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/whatsapp")
	g.POST("/webhook", h.Webhook)
	g.POST("/send/message", h.SendMessage)
	g.POST("/send/appointment-reminder/:id", h.SendAppointmentReminder)
	g.GET("/messages", h.ListMessages)
	g.GET("/instance/qr", h.InstanceQR)
}

// Webhook receives Evolution API events. Processing failures are logged but
// the webhook is always acknowledged so the provider does not retry.
func (h *Handler) Webhook(c echo.Context) error {
	var payload WebhookPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ProcessWebhook(c.Request().Context(), &payload); err != nil {
		h.logger.Error().Err(err).Str("event", payload.Event).Msg("webhook processing failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"status": "received"})
}

func (h *Handler) SendMessage(c echo.Context) error {
	to := c.QueryParam("to")
	message := c.QueryParam("message")
	if err := h.svc.SendMessage(c.Request().Context(), to, message); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) SendAppointmentReminder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.SendAppointmentReminder(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ListMessages(c echo.Context) error {
	items, err := h.messages.ListRecent(c.Request().Context(), 100)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*OutboundMessage{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "messages": items})
}

// InstanceQR renders the instance pairing code as a PNG so a phone can be
// linked by scanning it from the admin panel.
func (h *Handler) InstanceQR(c echo.Context) error {
	code, err := h.pairing.PairingCode(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
