package sse

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/babygoats/BabyGoats_Go/internal/metrics"
)

// Filter narrows what a dashboard connection receives. The zero value
// subscribes to every event for every athlete.
type Filter struct {
	// AthleteID limits delivery to one athlete's events. Events that
	// carry no athlete, like the daily rollover, always pass.
	AthleteID string

	// Types limits delivery to the named event types.
	Types []string
}

// Client is one connected dashboard. The hub owns EventChannel and
// closes it on Unregister or Stop.
type Client struct {
	ID           string
	EventChannel chan Event

	athleteID string
	types     map[string]struct{}
}

func (c *Client) wants(evt Event) bool {
	if c.athleteID != "" && evt.UserID != "" && evt.UserID != c.athleteID {
		return false
	}
	if c.types == nil {
		return true
	}
	_, ok := c.types[evt.Type]
	return ok
}

// Hub fans progression events out to connected dashboards.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	closed  bool

	broadcast chan Event
	shutdown  chan struct{}
	wg        sync.WaitGroup
}

// NewHub creates a Hub. Call Start before broadcasting.
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[string]*Client),
		broadcast: make(chan Event, BroadcastBufferSize),
		shutdown:  make(chan struct{}),
	}
}

// Start launches the fan-out loop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the fan-out loop, then closes every client channel so the
// HTTP handlers reading from them unblock and return.
func (h *Hub) Stop() {
	close(h.shutdown)
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for _, client := range h.clients {
		close(client.EventChannel)
	}
	metrics.SSEClientsConnected.Sub(float64(len(h.clients)))
	h.clients = make(map[string]*Client)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case evt := <-h.broadcast:
			h.deliver(evt)
		case <-h.shutdown:
			return
		}
	}
}

// deliver holds the read lock while sending, so Unregister cannot close
// a channel mid-send.
func (h *Hub) deliver(evt Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !client.wants(evt) {
			continue
		}
		select {
		case client.EventChannel <- evt:
		default:
			// A stalled dashboard loses events rather than stalling the feed
			metrics.SSEEventsDropped.Inc()
		}
	}
}

// Register subscribes a new dashboard connection. After Stop the
// returned client's channel is already closed, so its reader exits
// straight away.
func (h *Hub) Register(filter Filter) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		EventChannel: make(chan Event, ClientEventBuffer),
		athleteID:    filter.AthleteID,
	}
	if len(filter.Types) > 0 {
		client.types = make(map[string]struct{}, len(filter.Types))
		for _, t := range filter.Types {
			client.types[t] = struct{}{}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(client.EventChannel)
		return client
	}
	h.clients[client.ID] = client
	metrics.SSEClientsConnected.Inc()
	return client
}

// Unregister drops a client and closes its channel. Unknown IDs are a
// no-op, which lets handlers unregister unconditionally on disconnect.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)
	close(client.EventChannel)
	metrics.SSEClientsConnected.Dec()
}

// Broadcast queues an event for delivery. athleteID may be empty for
// events that concern every dashboard.
func (h *Hub) Broadcast(eventType, athleteID string, payload interface{}) {
	evt := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		UserID:    athleteID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- evt:
	default:
		// Feed is saturated; dropping beats blocking the publisher
		metrics.SSEEventsDropped.Inc()
	}
}

// ClientCount returns the number of connected dashboards.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
