package websocket

import "tug-of-war-server/game/engine"

// Client-to-server event names.
const (
	EventCreateRoom = "createRoom"
	EventJoinRoom   = "joinRoom"
	EventJoinTeam   = "joinTeam"
	EventStartGame  = "startGame"
	EventTug        = "tug"
)

// Server-to-client event names.
const (
	EventRoomCreated  = "roomCreated"
	EventRoomJoined   = "roomJoined"
	EventInvalidRoom  = "invalidRoom"
	EventRoomFull     = "roomFull"
	EventPlayerJoined = "playerJoined"
	EventTeamJoined   = "teamJoined"
	EventTeamUpdate   = "teamUpdate"
	EventGameStarted  = "gameStarted"
	EventUpdate       = "update"
	EventGameOver     = "gameOver"
)

// ClientMessage is an intent event sent by a client.
type ClientMessage struct {
	Event  string `json:"event"`
	RoomID string `json:"roomId,omitempty"`
	Team   string `json:"team,omitempty"`
	Config string `json:"config,omitempty"`
}

// ServerMessage is a state event sent to clients.
type ServerMessage struct {
	Event  string            `json:"event"`
	RoomID string            `json:"roomId,omitempty"`
	State  *engine.GameState `json:"state,omitempty"`
	Data   interface{}       `json:"data,omitempty"`
}

// RoomJoinedData is the payload of a roomJoined event.
type RoomJoinedData struct {
	ID     string `json:"id"`
	IsHost bool   `json:"isHost"`
}
