package engine

import "fmt"

// Engine is the per-room tug-of-war state machine. It is not safe for
// concurrent use; callers serialize access (the room entity holds the lock).
type Engine struct {
	state GameState
	rules *Rules
}

// NewEngine creates a new game engine with the provided rules. A nil rules
// pointer selects the built-in defaults.
func NewEngine(rules *Rules) (*Engine, error) {
	if rules == nil {
		rules = DefaultRules()
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return &Engine{
		state: GameState{Started: false, RopePosition: RopeCenter},
		rules: rules,
	}, nil
}

// DefaultRules returns the built-in rule preset.
func DefaultRules() *Rules {
	return &Rules{
		Name:          "default",
		Description:   "Classic 2v2 tug-of-war",
		RoomCapacity:  DefaultRoomCapacity,
		BaseStrength:  DefaultBaseStrength,
		TeammateBonus: DefaultTeammateBonus,
		ResetDelaySec: DefaultResetDelaySec,
	}
}

// ValidateRules checks a rule preset for values the engine can run with.
func ValidateRules(r *Rules) error {
	if r == nil {
		return fmt.Errorf("rules cannot be nil")
	}
	if r.RoomCapacity < MinRoomCapacity || r.RoomCapacity > MaxRoomCapacity {
		return fmt.Errorf("room_capacity must be between %d and %d, got %d",
			MinRoomCapacity, MaxRoomCapacity, r.RoomCapacity)
	}
	if r.BaseStrength <= 0 {
		return fmt.Errorf("base_strength must be positive, got %v", r.BaseStrength)
	}
	if r.TeammateBonus < 0 {
		return fmt.Errorf("teammate_bonus cannot be negative, got %v", r.TeammateBonus)
	}
	if r.ResetDelaySec < 0 {
		return fmt.Errorf("reset_delay_sec cannot be negative, got %d", r.ResetDelaySec)
	}
	return nil
}

// State returns a copy of the current game state.
func (e *Engine) State() GameState {
	return e.state
}

// Rules returns the rule preset the engine was created with.
func (e *Engine) Rules() *Rules {
	return e.rules
}

// Started reports whether a game is in progress.
func (e *Engine) Started() bool {
	return e.state.Started
}

// Start transitions the game from waiting to in progress. It returns false
// if a game is already running.
func (e *Engine) Start() bool {
	if e.state.Started {
		return false
	}
	e.state.Started = true
	return true
}

// Strength returns the displacement a single pull contributes for a team of
// the given size: base strength plus a bonus per team member.
func (e *Engine) Strength(teamSize int) float64 {
	return e.rules.BaseStrength + e.rules.TeammateBonus*float64(teamSize)
}

// Pull applies one pull for the given team and team size. The rope moves by
// the team's strength in its direction and is clamped to [RopeMin, RopeMax].
// Reaching either bound finishes the game: the outcome names the winner and
// the engine resets to the waiting state, leaving only the deferred reset
// broadcast to the caller.
func (e *Engine) Pull(team Team, teamSize int) PullOutcome {
	strength := e.Strength(teamSize)
	pos := e.state.RopePosition + strength*team.Direction()
	pos = clampRope(pos)
	e.state.RopePosition = pos

	outcome := PullOutcome{Team: team, Strength: strength, Position: pos}
	if pos <= RopeMin || pos >= RopeMax {
		outcome.Finished = true
		if pos <= RopeMin {
			outcome.Winner = TeamRed
		} else {
			outcome.Winner = TeamBlue
		}
		e.Reset()
	}
	return outcome
}

// Reset returns the game to the waiting state with the rope at the midpoint.
func (e *Engine) Reset() GameState {
	e.state = GameState{Started: false, RopePosition: RopeCenter}
	return e.state
}

func clampRope(pos float64) float64 {
	if pos < RopeMin {
		return RopeMin
	}
	if pos > RopeMax {
		return RopeMax
	}
	return pos
}
