package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub tracks connected clients by user and pushes envelopes to them.
type Hub struct {
	userClients map[uint64][]*Client
	Register    chan *Client
	unregister  chan *Client
	done        chan struct{}
	mu          sync.RWMutex
	logger      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		userClients: make(map[uint64][]*Client),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		logger:      logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.Register:
			h.mu.Lock()
			h.userClients[client.UserID] = append(h.userClients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Debug("websocket client registered", zap.Uint64("userID", client.UserID))
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.userClients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.userClients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.userClients[client.UserID]) == 0 {
		delete(h.userClients, client.UserID)
	}
	h.logger.Debug("websocket client disconnected", zap.Uint64("userID", client.UserID))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, clients := range h.userClients {
		for _, c := range clients {
			close(c.Send)
		}
		delete(h.userClients, userID)
	}
}

// SendMessageToUser delivers to every connection of userID. Slow clients
// whose buffer is full miss the message.
func (h *Hub) SendMessageToUser(userID uint64, payload interface{}, messageType string) error {
	messageBytes, err := encode(payload, messageType)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.userClients[userID] {
		h.deliver(client, messageBytes)
	}
	return nil
}

// SendMessageToAdmins delivers to every connection opened with an admin token.
// It returns the ids of the admins that were reached.
func (h *Hub) SendMessageToAdmins(payload interface{}, messageType string) ([]uint64, error) {
	messageBytes, err := encode(payload, messageType)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	reached := make([]uint64, 0)
	for userID, clients := range h.userClients {
		hit := false
		for _, client := range clients {
			if client.IsAdmin {
				h.deliver(client, messageBytes)
				hit = true
			}
		}
		if hit {
			reached = append(reached, userID)
		}
	}
	return reached, nil
}

// Connected reports how many connections userID currently holds.
func (h *Hub) Connected(userID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userClients[userID])
}

func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		h.logger.Warn("websocket send buffer full, message dropped", zap.Uint64("userID", client.UserID))
	}
}

func encode(payload interface{}, messageType string) ([]byte, error) {
	return json.Marshal(Envelope{
		ID:        uuid.NewString(),
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}
