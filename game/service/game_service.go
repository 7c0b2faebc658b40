package service

import (
	"context"

	"tug-of-war-server/game/engine"
	"tug-of-war-server/game/room"
)

// GameService defines all game-related operations driven by the transports.
type GameService interface {
	// Room lifecycle
	CreateRoom(ctx context.Context, hostID, configName string) (*RoomInfo, error)
	JoinRoom(ctx context.Context, connID, code string) (*JoinResult, error)
	Disconnect(ctx context.Context, connID string) ([]DisconnectUpdate, error)

	// Game operations
	JoinTeam(ctx context.Context, connID, code, team string) (*TeamResult, error)
	StartGame(ctx context.Context, connID, code string) (*StartResult, error)
	Pull(ctx context.Context, connID, code string) (*PullResult, error)

	// Introspection
	GetRoomState(ctx context.Context, code string) (*room.Snapshot, error)
	ListRooms(ctx context.Context) ([]room.Snapshot, error)
	ListConfigs(ctx context.Context) ([]string, error)
}

// RoomManager defines room registry operations.
type RoomManager interface {
	Create(hostID string, rules *engine.Rules) (*room.Room, error)
	Get(code string) (*room.Room, error)
	Delete(code string)
	List() []*room.Room
	Count() int
}

// ConfigManager handles rule-preset loading.
type ConfigManager interface {
	Get(name string) (*engine.Rules, error)
	Default() *engine.Rules
	List() ([]string, error)
}
