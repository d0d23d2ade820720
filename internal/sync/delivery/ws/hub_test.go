package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"event-prep-engine/pkg/log"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(log.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func addMember(hub *Hub, eventID string) *Client {
	c := newClient(hub, log.NewNop(), nil)
	hub.register <- c
	hub.join <- subscription{client: c, eventID: eventID}
	return c
}

func recv(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case data := <-c.send:
		t.Fatalf("unexpected message: %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub(t *testing.T) {
	t.Run("Echo Suppression", func(t *testing.T) {
		hub := startHub(t)
		sender := addMember(hub, "e1")
		receiver := addMember(hub, "e1")
		time.Sleep(20 * time.Millisecond)

		msg := Message{Type: TypeTaskCompletionUpdated, EventID: "e1", UpdatedBy: sender.id}
		data, _ := json.Marshal(msg)
		hub.broadcast <- outbound{eventID: "e1", origin: sender.id, data: data}

		got := recv(t, receiver)
		if got.Type != TypeTaskCompletionUpdated || got.UpdatedBy != sender.id {
			t.Errorf("unexpected message %+v", got)
		}
		assertSilent(t, sender)
	})

	t.Run("Rooms Are Isolated", func(t *testing.T) {
		hub := startHub(t)
		inRoom := addMember(hub, "e1")
		elsewhere := addMember(hub, "e2")
		time.Sleep(20 * time.Millisecond)

		hub.Broadcast(context.Background(), TypeTimelineUpdated, "e1", map[string]string{"k": "v"})

		got := recv(t, inRoom)
		if got.EventID != "e1" || got.UpdatedBy != "server" {
			t.Errorf("unexpected message %+v", got)
		}
		assertSilent(t, elsewhere)
	})

	t.Run("Server Broadcast Reaches Everyone", func(t *testing.T) {
		hub := startHub(t)
		a := addMember(hub, "e1")
		b := addMember(hub, "e1")
		time.Sleep(20 * time.Millisecond)

		hub.Broadcast(context.Background(), TypeTimelineUpdated, "e1", map[string]int{"version": 2})

		recv(t, a)
		recv(t, b)
	})

	t.Run("Leave Stops Delivery", func(t *testing.T) {
		hub := startHub(t)
		c := addMember(hub, "e1")
		time.Sleep(20 * time.Millisecond)

		hub.leave <- subscription{client: c, eventID: "e1"}
		time.Sleep(20 * time.Millisecond)

		hub.Broadcast(context.Background(), TypeTimelineUpdated, "e1", nil)
		assertSilent(t, c)
	})
}
