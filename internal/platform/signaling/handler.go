package signaling

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

var upgrader = gorillawebsocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// Handler handles HTTP-to-WebSocket upgrades and relays signaling messages.
type Handler struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewHandler creates a new Handler bound to the given Registry.
func NewHandler(registry *Registry, logger zerolog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// RegisterRoutes registers the signaling endpoint on the provided Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws/:roomID", h.HandleConnect)
}

// HandleConnect upgrades an HTTP connection to WebSocket, joins the peer to
// the requested room, and starts read/write pumps.
func (h *Handler) HandleConnect(c echo.Context) error {
	roomID := c.Param("roomID")
	if roomID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "room id is required")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	peer := &Peer{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 256),
		conn: &gorillaConnAdapter{ws},
	}

	h.registry.Join(roomID, peer)
	h.logger.Debug().Str("room_id", roomID).Str("peer_id", peer.ID).Msg("peer joined")

	go h.writePump(peer)
	go h.readPump(roomID, peer)

	return nil
}

// readPump reads messages from the connection and relays them to the other
// peers in the room. Any read error (including an abrupt disconnect) removes
// the peer from the room before the goroutine exits.
func (h *Handler) readPump(roomID string, peer *Peer) {
	defer func() {
		h.registry.Leave(roomID, peer)
		peer.conn.Close()
		h.logger.Debug().Str("room_id", roomID).Str("peer_id", peer.ID).Msg("peer left")
	}()

	for {
		_, message, err := peer.conn.ReadMessage()
		if err != nil {
			break
		}

		if !json.Valid(message) {
			continue // Ignore malformed messages.
		}

		h.registry.Broadcast(roomID, message, peer)
	}
}

// writePump writes messages from the Send channel to the connection. It exits
// when the channel is closed by Leave.
func (h *Handler) writePump(peer *Peer) {
	defer peer.conn.Close()

	for message := range peer.Send {
		if err := peer.conn.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy the Conn interface.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}
