// Package websocket provides the WebSocket transport for the tug-of-war
// server.
//
// The websocket package implements:
//   - Real-time bidirectional communication with game clients
//   - Room-scoped broadcast groups
//   - Intent-event routing into the game service
//   - Connection lifecycle management, including the disconnect sweep
//   - The deferred post-win reset broadcast
//
// Architecture:
//
// The package uses a hub-and-spoke model. A central Hub owns the broadcast
// groups (one per room code) and serializes group membership and fan-out in
// a single Run loop. Each client connection runs a read pump and a write
// pump; the Coordinator sits between the pumps and the GameService, decoding
// intent events and fanning out the resulting state events.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {"event": "joinRoom", "roomId": "AB12CD"}
//   - Outgoing: {"event": "update", "roomId": "AB12CD", "state": {...}}
//
// Client-to-server events are createRoom, joinRoom, joinTeam, startGame,
// and tug. Server-to-client events are roomCreated, roomJoined,
// invalidRoom, roomFull, playerJoined, teamJoined, teamUpdate, gameStarted,
// update, and gameOver.
//
// Connection Lifecycle:
//
//  1. Client connects to /ws and is assigned a connection id
//  2. Connection registered with the hub
//  3. Client creates or joins rooms, entering their broadcast groups
//  4. Intent events mutate game state; resulting events fan out per room
//  5. Disconnection sweeps the connection from every room it joined
//
// Deferred Reset:
//
// When a pull finishes a game, the gameOver event is broadcast immediately
// and the reset state follows after the preset's reset delay, giving
// clients time to show the winner. The scheduled broadcast is keyed by room
// code, cancelled when the room is deleted, and a verified no-op when the
// room vanished in the meantime.
package websocket
