package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "u1",
	}
	hub.register <- client

	n := models.Notification{Type: "draft_ready", UserID: "u1", Message: "pricing complete"}
	data, _ := json.Marshal(n)
	hub.broadcast <- broadcastMsg{UserID: "u1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubTargetedDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), UserID: "a"}
	b := &Client{Send: make(chan []byte, 10), UserID: "b"}
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{UserID: "a", Data: []byte(`{"type":"quote_update"}`)}

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for targeted message")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("client b should not receive targeted message, got %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubBroadcastToAll(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), UserID: "a"}
	b := &Client{Send: make(chan []byte, 10), UserID: "b"}
	hub.register <- a
	hub.register <- b

	hub.broadcast <- broadcastMsg{Data: []byte(`{"type":"announcement"}`)}

	for _, c := range []*Client{a, b} {
		select {
		case <-c.Send:
		case <-time.After(1 * time.Second):
			t.Fatalf("timeout waiting for broadcast on %s", c.UserID)
		}
	}
}
