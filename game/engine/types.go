package engine

// Team identifies one of the two sides pulling the rope.
type Team string

const (
	TeamRed  Team = "red"
	TeamBlue Team = "blue"
)

// Rope position bounds. Red wins at RopeMin, blue wins at RopeMax, and
// every game starts (and resets) at RopeCenter.
const (
	RopeMin    = 0.0
	RopeCenter = 50.0
	RopeMax    = 100.0
)

// Rule validation constants.
const (
	MinRoomCapacity = 2
	MaxRoomCapacity = 64

	DefaultRoomCapacity  = 4
	DefaultBaseStrength  = 1.0
	DefaultTeammateBonus = 0.2
	DefaultResetDelaySec = 3
)

// Teams lists both teams in a fixed order.
var Teams = []Team{TeamRed, TeamBlue}

// Valid reports whether t is one of the two known teams.
func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue
}

// Direction returns the signed unit direction a team pulls the rope in:
// -1 for red (toward 0), +1 for blue (toward 100).
func (t Team) Direction() float64 {
	if t == TeamRed {
		return -1
	}
	return 1
}

// Opponent returns the other team.
func (t Team) Opponent() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Rules represents a game rule preset, loaded from JSON or built in.
type Rules struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	RoomCapacity  int     `json:"room_capacity"`
	BaseStrength  float64 `json:"base_strength"`
	TeammateBonus float64 `json:"teammate_bonus"`
	ResetDelaySec int     `json:"reset_delay_sec"`
}

// GameState represents the current game state as seen by clients.
type GameState struct {
	Started      bool    `json:"started"`
	RopePosition float64 `json:"ropePosition"`
}

// PullOutcome describes the effect of a single pull.
type PullOutcome struct {
	Team     Team    `json:"team"`
	Strength float64 `json:"strength"`
	Position float64 `json:"position"`
	Finished bool    `json:"finished"`
	Winner   Team    `json:"winner,omitempty"`
}
