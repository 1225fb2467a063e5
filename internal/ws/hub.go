package ws

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Message types for WebSocket communication.
const (
	MessageTypeCommentaryUpdated = "commentary_updated"
	MessageTypePing              = "ping"
	MessageTypePong              = "pong"
)

// Message represents a WebSocket message.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// CommentaryUpdatedData is the payload of a commentary_updated message.
type CommentaryUpdatedData struct {
	AnswerID   string `json:"answer_id"`
	Commentary string `json:"commentary"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With("component", "ws_hub"),
	}
}

// Run processes client lifecycle events and broadcasts until the context is
// cancelled. On shutdown all connected clients are closed.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			h.logger.Info("websocket hub stopped", "reason", ctx.Err())
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client connected", "total_clients", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("websocket client disconnected", "total_clients", count)

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// NotifyCommentaryUpdated broadcasts a resolved commentary to all connected
// clients. Delivery is best effort: when the broadcast buffer is full the
// message is dropped rather than blocking the caller.
func (h *Hub) NotifyCommentaryUpdated(answerID uuid.UUID, commentary string) {
	message := Message{
		Type: MessageTypeCommentaryUpdated,
		Data: CommentaryUpdatedData{
			AnswerID:   answerID.String(),
			Commentary: commentary,
		},
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("broadcast channel full, dropping commentary update",
			"answer_id", answerID)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// broadcastToClients delivers one message to every client. A client whose
// send buffer is full is disconnected; a stuck consumer must not hold up
// the rest.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var toRemove []*Client
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		h.logger.Warn("dropped slow websocket client")
	}
}

// closeAllClients closes every connected client during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}
