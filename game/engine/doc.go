// Package engine provides the core game logic for the tug-of-war server.
//
// The engine package implements the game mechanics including:
//   - Rope position tracking and clamping
//   - Pull strength calculation based on team size
//   - Win detection when the rope reaches either bound
//   - Game start and reset transitions
//   - Rule validation and defaults
//
// Core Types:
//
// Engine is the per-room game state machine. GameState represents the
// current state sent to clients, while Rules defines the tunable game
// parameters (room capacity, pull strengths, reset delay) loaded from JSON
// preset files or built-in defaults.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.Start()
//	outcome := eng.Pull(engine.TeamRed, 2)
//	if outcome.Finished {
//		fmt.Println("winner:", outcome.Winner)
//	}
//
// Game Rules:
//
// Two teams pull a rope whose position is a scalar in [0, 100]. Red pulls
// toward 0, blue toward 100, starting from the midpoint 50. Each pull moves
// the rope by the base strength plus a per-teammate bonus, so larger teams
// pull harder without winning instantly. Reaching either bound ends the game
// and names the team on that side the winner.
package engine
