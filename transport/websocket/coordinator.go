package websocket

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tug-of-war-server/game/engine"
	"tug-of-war-server/game/room"
	"tug-of-war-server/game/service"
)

// Coordinator binds inbound intent events to game service operations and
// fans the resulting state events out through the hub. It also owns the
// deferred post-win reset broadcasts, one cancellable timer per room.
type Coordinator struct {
	service service.GameService
	hub     *Hub

	timers map[string]*time.Timer
	mu     sync.Mutex
}

// NewCoordinator creates a coordinator routing events between the hub and
// the game service.
func NewCoordinator(svc service.GameService, hub *Hub) *Coordinator {
	return &Coordinator{
		service: svc,
		hub:     hub,
		timers:  make(map[string]*time.Timer),
	}
}

// ServeWS upgrades an HTTP request to a WebSocket connection and starts the
// client pumps.
func (co *Coordinator) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &Client{
		id:          uuid.New().String(),
		hub:         co.hub,
		coordinator: co,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
	}
	co.hub.register <- client

	log.Info().Str("conn", client.id).Str("remote", r.RemoteAddr).Msg("Client connected")

	go client.writePump()
	go client.readPump()
}

// HandleMessage routes one intent event. Unknown events are ignored; the
// server never terminates a connection over a bad request.
func (co *Coordinator) HandleMessage(c *Client, msg ClientMessage) {
	ctx := context.Background()

	switch msg.Event {
	case EventCreateRoom:
		co.handleCreateRoom(ctx, c, msg)
	case EventJoinRoom:
		co.handleJoinRoom(ctx, c, msg)
	case EventJoinTeam:
		co.handleJoinTeam(ctx, c, msg)
	case EventStartGame:
		co.handleStartGame(ctx, c, msg)
	case EventTug:
		co.handleTug(ctx, c, msg)
	default:
		log.Debug().Str("conn", c.id).Str("event", msg.Event).Msg("Ignoring unknown event")
	}
}

func (co *Coordinator) handleCreateRoom(ctx context.Context, c *Client, msg ClientMessage) {
	info, err := co.service.CreateRoom(ctx, c.id, msg.Config)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("Failed to create room")
		return
	}

	co.hub.JoinGroup(c, info.ID)
	c.Send(&ServerMessage{Event: EventRoomCreated, RoomID: info.ID, Data: info.ID})
}

func (co *Coordinator) handleJoinRoom(ctx context.Context, c *Client, msg ClientMessage) {
	res, err := co.service.JoinRoom(ctx, c.id, msg.RoomID)
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		c.Send(&ServerMessage{Event: EventInvalidRoom})
		return
	case errors.Is(err, room.ErrRoomFull):
		c.Send(&ServerMessage{Event: EventRoomFull})
		return
	case err != nil:
		log.Error().Err(err).Str("conn", c.id).Msg("Failed to join room")
		return
	}

	co.hub.JoinGroup(c, res.RoomID)
	c.Send(&ServerMessage{
		Event:  EventRoomJoined,
		RoomID: res.RoomID,
		Data:   RoomJoinedData{ID: res.RoomID, IsHost: res.IsHost},
	})
	co.hub.BroadcastToOthers(res.RoomID, c, &ServerMessage{
		Event:  EventPlayerJoined,
		RoomID: res.RoomID,
		Data:   res.Players,
	})
}

func (co *Coordinator) handleJoinTeam(ctx context.Context, c *Client, msg ClientMessage) {
	res, err := co.service.JoinTeam(ctx, c.id, msg.RoomID, msg.Team)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("Failed to join team")
		return
	}
	if !res.Applied {
		return
	}

	c.Send(&ServerMessage{Event: EventTeamJoined, RoomID: res.RoomID, Data: res.Team})
	co.hub.BroadcastToRoom(res.RoomID, &ServerMessage{
		Event:  EventTeamUpdate,
		RoomID: res.RoomID,
		Data:   res.Counts,
	})
}

func (co *Coordinator) handleStartGame(ctx context.Context, c *Client, msg ClientMessage) {
	res, err := co.service.StartGame(ctx, c.id, msg.RoomID)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("Failed to start game")
		return
	}
	if !res.Applied {
		return
	}

	co.hub.BroadcastToRoom(res.RoomID, &ServerMessage{
		Event:  EventGameStarted,
		RoomID: res.RoomID,
		State:  &res.State,
	})
}

func (co *Coordinator) handleTug(ctx context.Context, c *Client, msg ClientMessage) {
	res, err := co.service.Pull(ctx, c.id, msg.RoomID)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("Failed to apply pull")
		return
	}
	if !res.Applied {
		return
	}

	if res.Outcome.Finished {
		co.hub.BroadcastToRoom(res.RoomID, &ServerMessage{
			Event:  EventGameOver,
			RoomID: res.RoomID,
			Data:   res.Outcome.Winner,
		})
		co.scheduleReset(res.RoomID, res.ResetDelay)
		return
	}

	co.hub.BroadcastToRoom(res.RoomID, &ServerMessage{
		Event:  EventUpdate,
		RoomID: res.RoomID,
		State:  &engine.GameState{Started: true, RopePosition: res.Outcome.Position},
	})
}

// handleDisconnect sweeps a closed connection out of every room it joined,
// cancelling pending reset broadcasts for rooms that died with it.
func (co *Coordinator) handleDisconnect(c *Client) {
	updates, err := co.service.Disconnect(context.Background(), c.id)
	if err != nil {
		log.Error().Err(err).Str("conn", c.id).Msg("Disconnect sweep failed")
		return
	}

	for _, u := range updates {
		if u.Deleted {
			co.cancelReset(u.RoomID)
			continue
		}
		co.hub.BroadcastToOthers(u.RoomID, c, &ServerMessage{
			Event:  EventTeamUpdate,
			RoomID: u.RoomID,
			Data:   u.Counts,
		})
	}

	log.Info().Str("conn", c.id).Int("rooms", len(updates)).Msg("Client disconnected")
}

// scheduleReset arms the deferred reset broadcast for a room. A newer game
// finishing in the same room replaces any pending timer.
func (co *Coordinator) scheduleReset(roomID string, delay time.Duration) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if timer, exists := co.timers[roomID]; exists {
		timer.Stop()
	}
	co.timers[roomID] = time.AfterFunc(delay, func() {
		co.mu.Lock()
		delete(co.timers, roomID)
		co.mu.Unlock()
		co.broadcastReset(roomID)
	})
}

// cancelReset drops the pending reset broadcast for a deleted room.
func (co *Coordinator) cancelReset(roomID string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if timer, exists := co.timers[roomID]; exists {
		timer.Stop()
		delete(co.timers, roomID)
	}
}

// broadcastReset publishes the reset state once the delay elapsed. The room
// may have been deleted since the game ended; that is a silent no-op.
func (co *Coordinator) broadcastReset(roomID string) {
	snap, err := co.service.GetRoomState(context.Background(), roomID)
	if err != nil {
		log.Debug().Str("room", roomID).Msg("Skipping reset broadcast, room is gone")
		return
	}

	co.hub.BroadcastToRoom(roomID, &ServerMessage{
		Event:  EventUpdate,
		RoomID: roomID,
		State:  &engine.GameState{Started: snap.Started, RopePosition: snap.RopePosition},
	})
}
