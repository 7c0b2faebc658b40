package service

import (
	"time"

	"tug-of-war-server/game/engine"
	"tug-of-war-server/game/room"
)

// RoomInfo describes a freshly created room.
type RoomInfo struct {
	ID    string        `json:"id"`
	Rules *engine.Rules `json:"rules"`
}

// JoinResult describes an accepted room join.
type JoinResult struct {
	RoomID  string `json:"id"`
	IsHost  bool   `json:"isHost"`
	Players int    `json:"players"`
}

// TeamResult describes a team assignment. Applied is false when the change
// was silently refused (unknown room, unknown team, non-member, game
// running).
type TeamResult struct {
	Applied bool
	RoomID  string
	Team    engine.Team
	Counts  room.TeamCounts
}

// StartResult describes a start request. Applied is false for non-hosts,
// already running games, and rooms missing a team.
type StartResult struct {
	Applied bool
	RoomID  string
	State   engine.GameState
}

// PullResult describes a pull. Applied is false for unknown rooms, games
// not in progress, and teamless connections. On a finishing pull the
// outcome names the winner and ResetDelay says how long to wait before
// broadcasting the reset state.
type PullResult struct {
	Applied    bool
	RoomID     string
	Outcome    engine.PullOutcome
	ResetDelay time.Duration
}

// DisconnectUpdate reports what happened to one room during a disconnect
// sweep: either the room was deleted (last player left) or the remaining
// members need a team-count broadcast.
type DisconnectUpdate struct {
	RoomID  string
	Deleted bool
	Players int
	Counts  room.TeamCounts
}
