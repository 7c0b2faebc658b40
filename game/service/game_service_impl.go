package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"tug-of-war-server/game/config"
	"tug-of-war-server/game/room"
	"tug-of-war-server/validate"
)

// gameServiceImpl implements the GameService interface. All state lives in
// the room manager; per-room locking keeps each operation atomic.
type gameServiceImpl struct {
	rooms   RoomManager
	configs ConfigManager
}

// NewGameService creates a new game service instance.
func NewGameService(rooms RoomManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		rooms:   rooms,
		configs: configs,
	}
}

// CreateRoom allocates a new room owned by the requesting connection. An
// unknown preset name falls back to the default preset rather than failing
// the request; the protocol has no error event for room creation.
func (s *gameServiceImpl) CreateRoom(ctx context.Context, hostID, configName string) (*RoomInfo, error) {
	rules, err := s.configs.Get(configName)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("failed to load preset %q: %w", configName, err)
		}
		log.Warn().Str("preset", configName).Msg("Unknown rule preset, using default")
		rules = s.configs.Default()
	}

	r, err := s.rooms.Create(hostID, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	log.Info().Str("room", r.ID()).Str("conn", hostID).Msg("Room created")
	return &RoomInfo{ID: r.ID(), Rules: r.Rules()}, nil
}

// JoinRoom admits a connection to an existing room. Unknown codes return
// room.ErrRoomNotFound and full rooms room.ErrRoomFull; both surface to the
// client as events.
func (s *gameServiceImpl) JoinRoom(ctx context.Context, connID, code string) (*JoinResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}
	if err := r.AddPlayer(connID); err != nil {
		return nil, err
	}

	log.Info().Str("room", r.ID()).Str("conn", connID).Msg("Player joined room")
	return &JoinResult{
		RoomID:  r.ID(),
		IsHost:  r.IsHost(connID),
		Players: r.PlayerCount(),
	}, nil
}

// JoinTeam assigns a joined connection to a team. Every failed precondition
// is a silent no-op reported through Applied.
func (s *gameServiceImpl) JoinTeam(ctx context.Context, connID, code, teamName string) (*TeamResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return &TeamResult{}, nil
	}
	team, ok := validate.ParseTeam(teamName)
	if !ok {
		return &TeamResult{RoomID: r.ID()}, nil
	}

	counts, applied := r.AssignTeam(connID, team)
	if applied {
		log.Debug().Str("room", r.ID()).Str("conn", connID).Str("team", string(team)).Msg("Team joined")
	}
	return &TeamResult{
		Applied: applied,
		RoomID:  r.ID(),
		Team:    team,
		Counts:  counts,
	}, nil
}

// StartGame starts a room's game on behalf of its host.
func (s *gameServiceImpl) StartGame(ctx context.Context, connID, code string) (*StartResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return &StartResult{}, nil
	}

	state, applied := r.Start(connID)
	if applied {
		log.Info().Str("room", r.ID()).Msg("Game started")
	}
	return &StartResult{
		Applied: applied,
		RoomID:  r.ID(),
		State:   state,
	}, nil
}

// Pull applies one pull action.
func (s *gameServiceImpl) Pull(ctx context.Context, connID, code string) (*PullResult, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return &PullResult{}, nil
	}

	outcome, applied := r.Pull(connID)
	result := &PullResult{
		Applied:    applied,
		RoomID:     r.ID(),
		Outcome:    outcome,
		ResetDelay: time.Duration(r.Rules().ResetDelaySec) * time.Second,
	}
	if outcome.Finished {
		log.Info().Str("room", r.ID()).Str("winner", string(outcome.Winner)).Msg("Game over")
	}
	return result, nil
}

// Disconnect sweeps the connection out of every room it joined, deleting
// rooms that empty out.
func (s *gameServiceImpl) Disconnect(ctx context.Context, connID string) ([]DisconnectUpdate, error) {
	var updates []DisconnectUpdate

	for _, r := range s.rooms.List() {
		removed, empty := r.RemovePlayer(connID)
		if !removed {
			continue
		}

		update := DisconnectUpdate{RoomID: r.ID(), Deleted: empty}
		if empty {
			s.rooms.Delete(r.ID())
			log.Info().Str("room", r.ID()).Msg("Room deleted, last player left")
		} else {
			update.Players = r.PlayerCount()
			update.Counts = r.TeamCounts()
		}
		updates = append(updates, update)
	}

	return updates, nil
}

// GetRoomState returns a snapshot of a room, or room.ErrRoomNotFound.
func (s *gameServiceImpl) GetRoomState(ctx context.Context, code string) (*room.Snapshot, error) {
	r, err := s.rooms.Get(code)
	if err != nil {
		return nil, err
	}
	snap := r.Snapshot()
	return &snap, nil
}

// ListRooms returns snapshots of every live room.
func (s *gameServiceImpl) ListRooms(ctx context.Context) ([]room.Snapshot, error) {
	rooms := s.rooms.List()
	result := make([]room.Snapshot, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, r.Snapshot())
	}
	return result, nil
}

// ListConfigs returns the names of the available rule presets.
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]string, error) {
	return s.configs.List()
}
