// Package events fans out the Auction House / Settlement Claim event
// types to subscribed indexers over websockets, implementing spec §6's
// "read surface for indexers" as a push channel rather than pure polling.
// Grounded on api/websocket/hub.go's register/unregister/broadcast
// channel shape, replacing that file's per-market ticker/depth channels
// with one channel per DFBA event type (order_submitted, order_cancelled,
// batch_finalized, order_claimed, funds_locked, funds_refunded).
package events

import (
	"encoding/json"
	"sync"
)

// Hub maintains the set of connected clients and fans out published
// events to clients subscribed to the matching channel.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]bool
	channels map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	publish    chan publishedEvent

	done chan struct{}
}

type publishedEvent struct {
	channel string
	payload []byte
}

// Message is the envelope published on a channel, mirroring the
// teacher's WSMessage{Type, Channel, Data} shape.
type Message struct {
	Channel string      `json:"channel"`
	Data    interface{} `json:"data"`
}

// NewHub constructs an idle hub; call Run to start its dispatch loop.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		channels:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan publishedEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run drives the hub's event loop until Stop is called. Intended to run
// in its own goroutine, mirroring the teacher's Hub.Run.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case ev := <-h.publish:
			h.dispatch(ev)
		case <-h.done:
			return
		}
	}
}

// Stop ends the dispatch loop started by Run.
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	for channel, clients := range h.channels {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
	close(c.send)
}

// Subscribe registers c for channel's events. Safe to call from any
// goroutine.
func (h *Hub) Subscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][c] = true
}

// Unsubscribe removes c from channel.
func (h *Hub) Unsubscribe(c *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.channels[channel]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Publish fans out data to every client subscribed to channel. Only
// called after a write's CacheContext write() has committed, so
// subscribers never observe a published event for a reverted write
// (spec §6 "all reads must be consistent with the most recent write").
func (h *Hub) Publish(channel string, data interface{}) {
	bz, err := json.Marshal(Message{Channel: channel, Data: data})
	if err != nil {
		return
	}
	select {
	case h.publish <- publishedEvent{channel: channel, payload: bz}:
	default:
		// Dispatch loop backed up; drop rather than block the caller
		// (matches the teacher's best-effort broadcast semantics).
	}
}

func (h *Hub) dispatch(ev publishedEvent) {
	h.mu.RLock()
	clients := h.channels[ev.channel]
	recipients := make([]*Client, 0, len(clients))
	for c := range clients {
		recipients = append(recipients, c)
	}
	h.mu.RUnlock()

	for _, c := range recipients {
		select {
		case c.send <- ev.payload:
		default:
			// Client buffer full, skip rather than stall the hub.
		}
	}
}

// Register offers a client to the hub's dispatch loop.
func (h *Hub) Register(c *Client) { h.register <- c }

// Unregister withdraws a client.
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Channel names published by the Auction House and Settlement Claim,
// matching spec §6's emitted-event list.
const (
	ChannelOrderSubmitted = "order_submitted"
	ChannelOrderCancelled = "order_cancelled"
	ChannelBatchFinalized = "batch_finalized"
	ChannelOrderClaimed   = "order_claimed"
	ChannelFundsLocked    = "funds_locked"
	ChannelFundsRefunded  = "funds_refunded"
)
