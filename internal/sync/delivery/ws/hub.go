package ws

import (
	"context"
	"encoding/json"

	"event-prep-engine/pkg/log"
)

type subscription struct {
	client  *Client
	eventID string
}

type outbound struct {
	eventID string
	origin  string
	data    []byte
}

// Hub tracks one room per event id and fans updates out to room
// members. The originating connection never receives its own update
// back; it already applied the change locally.
type Hub struct {
	l log.Logger

	register   chan *Client
	unregister chan *Client
	join       chan subscription
	leave      chan subscription
	broadcast  chan outbound

	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
}

func NewHub(l log.Logger) *Hub {
	return &Hub{
		l:          l,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan subscription),
		leave:      make(chan subscription),
		broadcast:  make(chan outbound, 16),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run owns all hub state. Everything else talks to it over channels.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; !ok {
				continue
			}
			delete(h.clients, c)
			for eventID, room := range h.rooms {
				delete(room, c)
				if len(room) == 0 {
					delete(h.rooms, eventID)
				}
			}
			close(c.send)

		case sub := <-h.join:
			room := h.rooms[sub.eventID]
			if room == nil {
				room = make(map[*Client]bool)
				h.rooms[sub.eventID] = room
			}
			room[sub.client] = true

		case sub := <-h.leave:
			if room := h.rooms[sub.eventID]; room != nil {
				delete(room, sub.client)
				if len(room) == 0 {
					delete(h.rooms, sub.eventID)
				}
			}

		case out := <-h.broadcast:
			for c := range h.rooms[out.eventID] {
				if c.id == out.origin {
					continue
				}
				select {
				case c.send <- out.data:
				default:
					// slow consumer, drop it rather than block the hub
					delete(h.clients, c)
					for _, room := range h.rooms {
						delete(room, c)
					}
					close(c.send)
				}
			}
		}
	}
}

// Broadcast pushes a server-originated update into an event room.
// Server updates have no originating connection, so every member
// receives them.
func (h *Hub) Broadcast(ctx context.Context, msgType, eventID string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.l.Warnf(ctx, "marshal ws payload: %v", err)
		return
	}
	msg := Message{Type: msgType, EventID: eventID, Payload: raw, UpdatedBy: "server"}
	data, err := json.Marshal(msg)
	if err != nil {
		h.l.Warnf(ctx, "marshal ws message: %v", err)
		return
	}
	h.broadcast <- outbound{eventID: eventID, origin: "server", data: data}
}

// TimelineUpdated notifies an event room that its timeline changed.
func (h *Hub) TimelineUpdated(ctx context.Context, eventID string, payload any) {
	h.Broadcast(ctx, TypeTimelineUpdated, eventID, payload)
}

// TaskCompletionUpdated notifies an event room about recorded task outcomes.
func (h *Hub) TaskCompletionUpdated(ctx context.Context, eventID string, payload any) {
	h.Broadcast(ctx, TypeTaskCompletionUpdated, eventID, payload)
}
