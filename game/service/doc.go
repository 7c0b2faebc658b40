// Package service defines the game-facing service layer of the tug-of-war
// server.
//
// The service package implements:
//   - The GameService interface consumed by the transports
//   - Orchestration of the room registry, rule presets, and game engine
//   - The error taxonomy: RoomNotFound and RoomFull surface to clients,
//     every other precondition failure is a silent no-op
//
// Silent No-ops:
//
// The wire protocol defines no rejection events for an unauthorized start,
// a pull without a team, or a team change mid-game. Results therefore carry
// an Applied flag: when it is false the caller broadcasts nothing and
// returns no error to the client.
//
// Usage:
//
//	svc := service.NewGameService(roomManager, configManager)
//
//	info, err := svc.CreateRoom(ctx, connID, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := svc.JoinRoom(ctx, otherConn, info.ID)
//	switch {
//	case errors.Is(err, room.ErrRoomNotFound): // -> invalidRoom event
//	case errors.Is(err, room.ErrRoomFull): // -> roomFull event
//	}
package service
