package websocket

import (
	"testing"
)

func newHubClient(hub *Hub, id string, buffer int) *Client {
	return &Client{
		id:   id,
		hub:  hub,
		send: make(chan []byte, buffer),
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.clients == nil || hub.rooms == nil {
		t.Error("Hub maps are nil")
	}
	if hub.register == nil || hub.unregister == nil || hub.join == nil ||
		hub.leave == nil || hub.broadcast == nil {
		t.Error("Hub channels are nil")
	}
}

func TestHubGroupMembership(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "c1", 1)

	hub.clients[client] = true
	hub.deliver(envelope{roomID: "AB12CD", data: []byte("x")}) // no group yet

	if hub.rooms["AB12CD"] == nil {
		hub.rooms["AB12CD"] = make(map[*Client]bool)
	}
	hub.rooms["AB12CD"][client] = true

	hub.deliver(envelope{roomID: "AB12CD", data: []byte("hello")})
	select {
	case data := <-client.send:
		if string(data) != "hello" {
			t.Errorf("Expected %q, got %q", "hello", data)
		}
	default:
		t.Fatal("Expected a delivered message")
	}

	hub.leaveGroup(client, "AB12CD")
	if _, exists := hub.rooms["AB12CD"]; exists {
		t.Error("Expected empty group to be removed")
	}
}

func TestHubDeliverExcept(t *testing.T) {
	hub := NewHub()
	sender := newHubClient(hub, "sender", 1)
	other := newHubClient(hub, "other", 1)

	hub.clients[sender] = true
	hub.clients[other] = true
	hub.rooms["AB12CD"] = map[*Client]bool{sender: true, other: true}

	hub.deliver(envelope{roomID: "AB12CD", data: []byte("joined"), except: sender})

	select {
	case <-sender.send:
		t.Error("Excepted client received the broadcast")
	default:
	}
	select {
	case <-other.send:
	default:
		t.Error("Other client did not receive the broadcast")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	slow := newHubClient(hub, "slow", 1)

	hub.clients[slow] = true
	hub.rooms["AB12CD"] = map[*Client]bool{slow: true}

	// Fill the buffer, then deliver once more.
	slow.send <- []byte("first")
	hub.deliver(envelope{roomID: "AB12CD", data: []byte("second")})

	if hub.clients[slow] {
		t.Error("Expected slow client to be dropped")
	}
	if _, exists := hub.rooms["AB12CD"]; exists {
		t.Error("Expected slow client's group to be cleaned up")
	}

	// The send channel must be closed after the drop.
	<-slow.send // drain "first"
	if _, ok := <-slow.send; ok {
		t.Error("Expected closed send channel")
	}
}

func TestClientSendAfterDrop(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "c1", 1)

	hub.clients[client] = true
	hub.rooms["AB12CD"] = map[*Client]bool{client: true}

	client.send <- []byte("first")
	hub.deliver(envelope{roomID: "AB12CD", data: []byte("second")})

	if hub.clients[client] {
		t.Fatal("Expected slow client to be dropped")
	}

	// The read pump keeps dispatching events until it notices the closed
	// connection; sends racing the drop must be silent no-ops, not panics.
	client.Send(&ServerMessage{Event: EventUpdate})
	client.Send(&ServerMessage{Event: EventGameOver, Data: "red"})
}

func TestHubDropClientTwice(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "c1", 1)

	hub.clients[client] = true
	hub.dropClient(client)
	// A second drop (e.g. unregister racing a slow-client drop) must not
	// close the channel again.
	hub.dropClient(client)
}
