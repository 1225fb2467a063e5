package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ohgiri-live/ohgiri-api/internal/ws"
)

// WSHandler upgrades HTTP requests to websocket connections and attaches
// them to the hub.
type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler creates a new WSHandler for the given hub.
func NewWSHandler(hub *ws.Hub, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The frontend is served from a different origin in development.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_handler"),
	}
}

// ServeWS handles GET /ws requests.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	ws.NewClient(h.hub, conn, h.logger).Start()
}
