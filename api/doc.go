// Package api provides the HTTP surface of the tug-of-war server.
//
// The api package implements:
//   - Read-only REST endpoints for room and configuration introspection
//   - The WebSocket upgrade endpoint that drives all gameplay
//   - Static file serving for the bundled web client
//   - A health check for load balancers
//
// Endpoints:
//
// Rooms:
//   - GET /api/rooms - List all active rooms
//   - GET /api/rooms/{id} - Get one room's snapshot
//
// Configuration:
//   - GET /api/configs - List available rule presets
//
// Gameplay:
//   - GET /ws - WebSocket upgrade; all game events flow over this socket
//
// Health:
//   - GET /healthz - Liveness probe
//
// All REST endpoints return JSON. Gameplay is intentionally not exposed
// over REST; the WebSocket connection is the authoritative transport, and
// the REST surface only observes.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
