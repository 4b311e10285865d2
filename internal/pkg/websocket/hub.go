package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/cems/internal/app/models"
)

// MessageTypeRegistration is the type of a registration count update
const MessageTypeRegistration = "registration"

// Message is pushed to every client watching an event
type Message struct {
	Type              string    `json:"type"`
	EventID           int64     `json:"eventId"`
	RegistrationCount int       `json:"registrationCount"`
	Capacity          int       `json:"capacity"`
	Version           int64     `json:"version"`
	Timestamp         time.Time `json:"timestamp"`
}

// NewRegistrationMessage builds the update for a registration state
func NewRegistrationMessage(state *models.RegistrationState) *Message {
	return &Message{
		Type:              MessageTypeRegistration,
		EventID:           state.EventID,
		RegistrationCount: state.RegistrationCount,
		Capacity:          state.Capacity,
		Version:           state.Version,
		Timestamp:         time.Now().UTC(),
	}
}

// Hub keeps the clients of each event room. Run owns the registry; the
// mutex only guards reads from other goroutines.
type Hub struct {
	// Registered clients organized by event ID
	clients map[int64]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// join hands client to Run. It reports false once the hub has stopped.
func (h *Hub) join(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// leave hands client back to Run for removal
func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.clients[client.eventID]
	if !ok {
		room = make(map[*Client]bool)
		h.clients[client.eventID] = room
	}
	room[client] = true

	h.logger.Debug().
		Int64("eventID", client.eventID).
		Str("addr", client.remoteAddr()).
		Msg("Client joined event feed")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops client and closes its send channel. h.mu must be held.
func (h *Hub) removeLocked(client *Client) {
	room, ok := h.clients[client.eventID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.clients, client.eventID)
	}

	h.logger.Debug().
		Int64("eventID", client.eventID).
		Str("addr", client.remoteAddr()).
		Msg("Client left event feed")
}

func (h *Hub) broadcastMessage(message *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.clients[message.EventID]
	if !ok {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Int64("eventID", message.EventID).Msg("Failed to marshal feed message")
		return
	}

	for client := range room {
		// updates can be published out of commit order
		if message.Version <= client.version {
			continue
		}
		select {
		case client.send <- data:
			client.version = message.Version
		default:
			// slow consumer
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("eventID", message.EventID).
		Int("clientCount", len(room)).
		Msg("Registration update broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.clients {
		for client := range room {
			h.removeLocked(client)
		}
	}
}

// Publish queues message for broadcast. It never blocks; updates are dropped
// when the queue is full.
func (h *Hub) Publish(message *Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn().Int64("eventID", message.EventID).Msg("Feed queue full, dropping update")
	}
}

// NotifyRegistration publishes the registration state of an event
func (h *Hub) NotifyRegistration(state *models.RegistrationState) {
	h.Publish(NewRegistrationMessage(state))
}

// ClientsCount returns the number of clients watching an event
func (h *Hub) ClientsCount(eventID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventID])
}
