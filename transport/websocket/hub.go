package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// membership is a join/leave request for a room broadcast group.
type membership struct {
	client *Client
	roomID string
}

// envelope is an outbound message addressed to a room group. A non-nil
// except skips that client, mirroring the "notify everyone else" events.
type envelope struct {
	roomID string
	data   []byte
	except *Client
}

// Hub maintains the set of active clients and the per-room broadcast
// groups. All group state is owned by the Run loop; the exported methods
// only post messages to it.
type Hub struct {
	// Connected clients and the broadcast group per room code.
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	join       chan membership
	leave      chan membership
	broadcast  chan envelope
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan membership),
		leave:      make(chan membership),
		broadcast:  make(chan envelope),
	}
}

// Run starts the hub's event loop. It runs for the life of the process.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			h.dropClient(client)

		case m := <-h.join:
			if h.rooms[m.roomID] == nil {
				h.rooms[m.roomID] = make(map[*Client]bool)
			}
			h.rooms[m.roomID][m.client] = true

		case m := <-h.leave:
			h.leaveGroup(m.client, m.roomID)

		case env := <-h.broadcast:
			h.deliver(env)
		}
	}
}

// JoinGroup adds a client to a room's broadcast group.
func (h *Hub) JoinGroup(c *Client, roomID string) {
	h.join <- membership{client: c, roomID: roomID}
}

// LeaveGroup removes a client from a room's broadcast group.
func (h *Hub) LeaveGroup(c *Client, roomID string) {
	h.leave <- membership{client: c, roomID: roomID}
}

// BroadcastToRoom sends a message to every client in a room's group.
// Broadcasting to a room with no group left is a no-op.
func (h *Hub) BroadcastToRoom(roomID string, msg *ServerMessage) {
	h.broadcastExcept(roomID, msg, nil)
}

// BroadcastToOthers sends a message to every client in a room's group
// except the given one.
func (h *Hub) BroadcastToOthers(roomID string, except *Client, msg *ServerMessage) {
	h.broadcastExcept(roomID, msg, except)
}

func (h *Hub) broadcastExcept(roomID string, msg *ServerMessage, except *Client) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("event", msg.Event).Msg("Failed to marshal broadcast message")
		return
	}
	h.broadcast <- envelope{roomID: roomID, data: data, except: except}
}

// deliver fans an envelope out to a room group, dropping clients whose send
// buffer is full.
func (h *Hub) deliver(env envelope) {
	for client := range h.rooms[env.roomID] {
		if client == env.except {
			continue
		}
		select {
		case client.send <- env.data:
		default:
			h.dropClient(client)
		}
	}
}

// dropClient removes a client from every group and closes its send channel.
func (h *Hub) dropClient(client *Client) {
	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	for roomID := range h.rooms {
		h.leaveGroup(client, roomID)
	}
	client.closeSend()

	log.Debug().Str("conn", client.ID()).Msg("Client dropped from hub")
}

func (h *Hub) leaveGroup(client *Client, roomID string) {
	group, ok := h.rooms[roomID]
	if !ok {
		return
	}
	delete(group, client)
	if len(group) == 0 {
		delete(h.rooms, roomID)
	}
}
