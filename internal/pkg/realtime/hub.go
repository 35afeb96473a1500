package realtime

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
)

// Hub maintains the set of active clients and pushes notification events
// to the clients subscribed to a topic
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel for outbound events
	publish chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event represents a notification pushed over WebSocket
type Event struct {
	// Topic this event is published on
	Topic string `json:"topic"`

	// Notification text
	Content string `json:"content"`

	// Timestamp when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// TopicFor returns the live-update topic for a recipient. Routing is an
// explicit switch over the role tag: enterprises listen on their own user
// topic, students and teachers on their department topic.
func TopicFor(role models.Role, userID int64, department string) string {
	switch role {
	case models.RoleEnterprise:
		return fmt.Sprintf("enterprise/%d", userID)
	case models.RoleTeacher:
		return fmt.Sprintf("teacher/%s", department)
	case models.RoleStudent:
		return fmt.Sprintf("student/%s", department)
	default:
		return "admin"
	}
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		publish:    make(chan *Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event fan-out
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.publish:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for delivery to all subscribers of its topic.
// Delivery is best-effort: nothing is retried or persisted here.
func (h *Hub) Publish(topic, content string) {
	h.publish <- &Event{
		Topic:     topic,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range client.topics {
		if _, ok := h.clients[topic]; !ok {
			h.clients[topic] = make(map[*Client]bool)
		}
		h.clients[topic][client] = true
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Strs("topics", client.topics).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for _, topic := range client.topics {
		if clients, ok := h.clients[topic]; ok {
			if _, ok := clients[client]; ok {
				delete(clients, client)
				removed = true

				if len(clients) == 0 {
					delete(h.clients, topic)
				}
			}
		}
	}

	if removed {
		close(client.send)
		h.logger.Info().
			Int64("userID", client.userID).
			Msg("Client unregistered")
	}
}

// broadcastEvent delivers an event to every client subscribed to its topic.
// It runs on the Run goroutine, so slow clients are dropped inline rather
// than through the unregister channel, which only Run reads.
func (h *Hub) broadcastEvent(event *Event) {
	h.mu.RLock()

	clients, ok := h.clients[event.Topic]
	if !ok {
		h.mu.RUnlock()
		h.logger.Debug().
			Str("topic", event.Topic).
			Msg("No subscribers for topic")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.mu.RUnlock()
		h.logger.Error().
			Err(err).
			Str("topic", event.Topic).
			Msg("Failed to marshal event for broadcast")
		return
	}

	var slow []*Client
	delivered := 0
	for client := range clients {
		select {
		case client.send <- data:
			delivered++
		default:
			// Full send buffer, the client is slow or already gone
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.unregisterClient(client)
	}

	h.logger.Debug().
		Str("topic", event.Topic).
		Int("clientCount", delivered).
		Msg("Event broadcasted")
}

// SubscriberCount returns the number of connected clients for a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[topic]; ok {
		return len(clients)
	}
	return 0
}
