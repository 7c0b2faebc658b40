// Package room provides room management for the tug-of-war server.
//
// The room package implements:
//   - The Room entity: membership, team rosters, and the owned game engine
//   - Thread-safe room storage and retrieval (Manager)
//   - Unique room code generation
//   - Room lifecycle management
//
// Core Types:
//
// Manager is the process-wide registry mapping room codes to live rooms.
// Room represents an individual game session with its players, two team
// rosters, and an engine.Engine instance.
//
// Room Codes:
//
// Rooms use 6-character uppercase alphanumeric codes for easy sharing. The
// manager generates codes with cryptographic randomness and retries on the
// rare collision, so codes are unique among live rooms. Lookups are
// case-insensitive and whitespace-tolerant.
//
// Concurrency:
//
// The manager and each room are thread-safe. Every room mutation (join,
// team change, start, pull, disconnect sweep) runs as a single critical
// section under the room's lock, so concurrent events never observe a room
// mid-mutation.
//
// Usage:
//
//	manager := room.NewManager()
//
//	r, err := manager.Create(hostID, engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	r, err = manager.Get(" ab12cd ") // normalized to "AB12CD"
//	if err != nil {
//		log.Fatal(err)
//	}
package room
