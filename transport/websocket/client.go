package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Outbound buffer per client; slow clients beyond it are dropped.
	sendBufferSize = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The game is served cross-origin from static hosts.
		return true
	},
}

// Client represents one WebSocket connection and its server-side identity.
type Client struct {
	id          string
	hub         *Hub
	coordinator *Coordinator
	conn        *websocket.Conn
	send        chan []byte

	// mu orders Send against the hub closing the send channel. The read
	// pump keeps dispatching events after a slow client is dropped, so a
	// bare close would panic a concurrent Send.
	mu     sync.Mutex
	closed bool
}

// ID returns the connection identity assigned at upgrade time.
func (c *Client) ID() string { return c.id }

// Send marshals a message onto the client's outbound buffer. A full buffer
// drops the message; the write pump will catch up or the hub drops the
// client. Sending to a dropped client is a no-op.
func (c *Client) Send(msg *ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("event", msg.Event).Msg("Failed to marshal message")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		log.Debug().Str("conn", c.id).Str("event", msg.Event).Msg("Dropping message for closed client")
		return
	}
	select {
	case c.send <- data:
	default:
		log.Warn().Str("conn", c.id).Str("event", msg.Event).Msg("Send buffer full, message dropped")
	}
}

// closeSend closes the outbound buffer exactly once. Only the hub calls
// this, after the client left every broadcast group.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// readPump pumps intent events from the connection into the coordinator.
func (c *Client) readPump() {
	defer func() {
		c.coordinator.handleDisconnect(c)
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
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("conn", c.id).Msg("WebSocket read error")
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Debug().Err(err).Str("conn", c.id).Msg("Ignoring malformed client message")
			continue
		}
		c.coordinator.HandleMessage(c, msg)
	}
}

// writePump pumps messages from the send buffer to the connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
