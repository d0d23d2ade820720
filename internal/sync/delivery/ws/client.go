package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"event-prep-engine/pkg/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// Client is one websocket connection.
type Client struct {
	id   string
	hub  *Hub
	l    log.Logger
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, l log.Logger, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		l:    l,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// readPump routes inbound messages: join/leave adjust room membership,
// updates are stamped with this connection's id and fanned out to the
// rest of the room.
func (c *Client) readPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.l.Warnf(ctx, "ws read: %v", err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.l.Warnf(ctx, "ws bad message: %v", err)
			continue
		}
		if msg.EventID == "" {
			continue
		}

		switch msg.Type {
		case TypeJoinTimeline:
			c.hub.join <- subscription{client: c, eventID: msg.EventID}
		case TypeLeaveTimeline:
			c.hub.leave <- subscription{client: c, eventID: msg.EventID}
		case TypeTimelineUpdated, TypeTaskCompletionUpdated:
			msg.UpdatedBy = c.id
			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			c.hub.broadcast <- outbound{eventID: msg.EventID, origin: c.id, data: data}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
