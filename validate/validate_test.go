package validate

import (
	"testing"

	"tug-of-war-server/game/engine"
)

func TestNormalizeRoomCode(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "AB12CD", "AB12CD"},
		{"lowercase", "ab12cd", "AB12CD"},
		{"surrounding whitespace", "  ab12cd\n", "AB12CD"},
		{"punctuation stripped", "ab-12_cd!", "AB12CD"},
		{"empty", "", ""},
		{"only junk", " --- ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRoomCode(tc.in); got != tc.want {
				t.Errorf("NormalizeRoomCode(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTeam(t *testing.T) {
	cases := []struct {
		in   string
		want engine.Team
		ok   bool
	}{
		{"red", engine.TeamRed, true},
		{"blue", engine.TeamBlue, true},
		{"RED", engine.TeamRed, true},
		{" Blue ", engine.TeamBlue, true},
		{"green", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseTeam(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseTeam(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
