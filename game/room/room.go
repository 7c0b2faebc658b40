package room

import (
	"errors"
	"sync"
	"time"

	"tug-of-war-server/game/engine"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// TeamCounts holds the roster sizes broadcast to clients on every team
// change.
type TeamCounts struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

// Snapshot is a point-in-time view of a room, safe to hand to transports.
type Snapshot struct {
	ID           string     `json:"id"`
	Started      bool       `json:"started"`
	RopePosition float64    `json:"ropePosition"`
	Players      int        `json:"players"`
	Teams        TeamCounts `json:"teams"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Room represents a single game session: identity, membership, team rosters,
// and the authoritative game state machine.
type Room struct {
	id        string
	hostID    string
	createdAt time.Time

	players map[string]bool
	teams   map[engine.Team]map[string]bool
	engine  *engine.Engine

	mu sync.RWMutex
}

// New creates a room with the given code and host connection identity.
func New(id, hostID string, rules *engine.Rules) (*Room, error) {
	eng, err := engine.NewEngine(rules)
	if err != nil {
		return nil, err
	}

	return &Room{
		id:        id,
		hostID:    hostID,
		createdAt: time.Now(),
		players:   make(map[string]bool),
		teams: map[engine.Team]map[string]bool{
			engine.TeamRed:  {},
			engine.TeamBlue: {},
		},
		engine: eng,
	}, nil
}

// ID returns the room code.
func (r *Room) ID() string { return r.id }

// HostID returns the connection identity that created the room.
func (r *Room) HostID() string { return r.hostID }

// IsHost reports whether the given connection created this room.
func (r *Room) IsHost(connID string) bool { return connID == r.hostID }

// CreatedAt returns the room creation time.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// Rules returns the rule preset this room was created with.
func (r *Room) Rules() *engine.Rules { return r.engine.Rules() }

// AddPlayer admits a connection to the room. Joining a room the connection
// is already in is a no-op; joining a room at capacity returns ErrRoomFull
// without mutating membership.
func (r *Room) AddPlayer(connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.players[connID] {
		return nil
	}
	if len(r.players) >= r.engine.Rules().RoomCapacity {
		return ErrRoomFull
	}
	r.players[connID] = true
	return nil
}

// RemovePlayer drops a connection from the room and from both team rosters.
// It reports whether the connection was a member and whether the room is now
// empty.
func (r *Room) RemovePlayer(connID string) (removed, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed = r.players[connID]
	delete(r.players, connID)
	delete(r.teams[engine.TeamRed], connID)
	delete(r.teams[engine.TeamBlue], connID)
	return removed, len(r.players) == 0
}

// HasPlayer reports whether the connection has joined this room.
func (r *Room) HasPlayer(connID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[connID]
}

// PlayerCount returns the number of joined connections.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// AssignTeam moves a joined connection onto the requested team, leaving its
// previous team if any. Team changes are refused once the game is running,
// for non-members, and for unknown teams; all three are silent no-ops.
func (r *Room) AssignTeam(connID string, team engine.Team) (TeamCounts, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !team.Valid() || !r.players[connID] || r.engine.Started() {
		return r.teamCounts(), false
	}

	delete(r.teams[engine.TeamRed], connID)
	delete(r.teams[engine.TeamBlue], connID)
	r.teams[team][connID] = true
	return r.teamCounts(), true
}

// TeamOf returns the team the connection currently belongs to in this room.
func (r *Room) TeamOf(connID string) (engine.Team, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, team := range engine.Teams {
		if r.teams[team][connID] {
			return team, true
		}
	}
	return "", false
}

// TeamCounts returns the current roster sizes.
func (r *Room) TeamCounts() TeamCounts {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.teamCounts()
}

func (r *Room) teamCounts() TeamCounts {
	return TeamCounts{
		Red:  len(r.teams[engine.TeamRed]),
		Blue: len(r.teams[engine.TeamBlue]),
	}
}

// Start begins the game. Only the host may start, only from the waiting
// state, and only with both teams populated; anything else is a silent
// no-op and leaves the room unchanged.
func (r *Room) Start(requesterID string) (engine.GameState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if requesterID != r.hostID {
		return r.engine.State(), false
	}
	if len(r.teams[engine.TeamRed]) == 0 || len(r.teams[engine.TeamBlue]) == 0 {
		return r.engine.State(), false
	}
	if !r.engine.Start() {
		return r.engine.State(), false
	}
	return r.engine.State(), true
}

// Pull applies one pull by the given connection. Pulls before the game
// starts or from a connection without a team are silent no-ops. On a
// finishing pull the engine has already reset; the outcome carries the
// winner and the terminal rope position.
func (r *Room) Pull(connID string) (engine.PullOutcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.engine.Started() {
		return engine.PullOutcome{}, false
	}

	var team engine.Team
	found := false
	for _, t := range engine.Teams {
		if r.teams[t][connID] {
			team, found = t, true
			break
		}
	}
	if !found {
		return engine.PullOutcome{}, false
	}

	return r.engine.Pull(team, len(r.teams[team])), true
}

// State returns a copy of the current game state.
func (r *Room) State() engine.GameState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.engine.State()
}

// Snapshot returns a point-in-time view of the room.
func (r *Room) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := r.engine.State()
	return Snapshot{
		ID:           r.id,
		Started:      state.Started,
		RopePosition: state.RopePosition,
		Players:      len(r.players),
		Teams:        r.teamCounts(),
		CreatedAt:    r.createdAt,
	}
}
