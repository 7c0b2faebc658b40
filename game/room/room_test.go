package room

import (
	"testing"

	"tug-of-war-server/game/engine"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := New("AB12CD", "host-conn", engine.DefaultRules())
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}
	return r
}

// fill joins players and puts them on teams so the game can start.
func fillTeams(t *testing.T, r *Room, red, blue []string) {
	t.Helper()
	for _, id := range append(append([]string{}, red...), blue...) {
		if err := r.AddPlayer(id); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
	}
	for _, id := range red {
		if _, ok := r.AssignTeam(id, engine.TeamRed); !ok {
			t.Fatalf("AssignTeam(%s, red) was refused", id)
		}
	}
	for _, id := range blue {
		if _, ok := r.AssignTeam(id, engine.TeamBlue); !ok {
			t.Fatalf("AssignTeam(%s, blue) was refused", id)
		}
	}
}

func TestRoomMembership(t *testing.T) {
	t.Run("join and rejoin", func(t *testing.T) {
		r := newTestRoom(t)

		if err := r.AddPlayer("p1"); err != nil {
			t.Fatalf("AddPlayer: %v", err)
		}
		if !r.HasPlayer("p1") {
			t.Error("Expected p1 to be a member")
		}
		// Rejoining is a no-op, not an error.
		if err := r.AddPlayer("p1"); err != nil {
			t.Errorf("Rejoin returned error: %v", err)
		}
		if r.PlayerCount() != 1 {
			t.Errorf("Expected 1 player, got %d", r.PlayerCount())
		}
	})

	t.Run("capacity bound", func(t *testing.T) {
		r := newTestRoom(t)

		for _, id := range []string{"p1", "p2", "p3", "p4"} {
			if err := r.AddPlayer(id); err != nil {
				t.Fatalf("AddPlayer(%s): %v", id, err)
			}
		}
		if err := r.AddPlayer("p5"); err != ErrRoomFull {
			t.Errorf("Expected ErrRoomFull, got %v", err)
		}
		if r.PlayerCount() != 4 {
			t.Errorf("Rejected join mutated players: %d", r.PlayerCount())
		}
		// A member may still "join" a full room it is already in.
		if err := r.AddPlayer("p1"); err != nil {
			t.Errorf("Member rejoin of full room returned error: %v", err)
		}
	})

	t.Run("remove clears team membership", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})

		removed, empty := r.RemovePlayer("p1")
		if !removed {
			t.Error("Expected p1 to have been a member")
		}
		if empty {
			t.Error("Room still has p2, should not be empty")
		}
		counts := r.TeamCounts()
		if counts.Red != 0 || counts.Blue != 1 {
			t.Errorf("Expected counts {0 1}, got %+v", counts)
		}

		_, empty = r.RemovePlayer("p2")
		if !empty {
			t.Error("Expected room to be empty after last player left")
		}
	})

	t.Run("remove non-member", func(t *testing.T) {
		r := newTestRoom(t)

		removed, empty := r.RemovePlayer("ghost")
		if removed {
			t.Error("Expected ghost not to have been a member")
		}
		if !empty {
			t.Error("Empty room should report empty")
		}
	})
}

func TestRoomAssignTeam(t *testing.T) {
	t.Run("player lands on exactly one team", func(t *testing.T) {
		r := newTestRoom(t)
		r.AddPlayer("p1")

		counts, ok := r.AssignTeam("p1", engine.TeamRed)
		if !ok {
			t.Fatal("AssignTeam was refused")
		}
		if counts.Red != 1 || counts.Blue != 0 {
			t.Errorf("Expected counts {1 0}, got %+v", counts)
		}

		// Switching teams leaves the old roster.
		counts, ok = r.AssignTeam("p1", engine.TeamBlue)
		if !ok {
			t.Fatal("Team switch was refused")
		}
		if counts.Red != 0 || counts.Blue != 1 {
			t.Errorf("Expected counts {0 1}, got %+v", counts)
		}

		team, found := r.TeamOf("p1")
		if !found || team != engine.TeamBlue {
			t.Errorf("Expected p1 on blue, got (%q, %v)", team, found)
		}
	})

	t.Run("refused for non-members", func(t *testing.T) {
		r := newTestRoom(t)

		if _, ok := r.AssignTeam("stranger", engine.TeamRed); ok {
			t.Error("Expected assignment to be refused for a non-member")
		}
	})

	t.Run("refused once started", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})
		if _, ok := r.Start("host-conn"); !ok {
			t.Fatal("Start was refused")
		}

		if _, ok := r.AssignTeam("p1", engine.TeamBlue); ok {
			t.Error("Expected team change to be refused while the game runs")
		}
		if team, _ := r.TeamOf("p1"); team != engine.TeamRed {
			t.Errorf("Refused change mutated roster: p1 on %q", team)
		}
	})

	t.Run("refused for unknown team", func(t *testing.T) {
		r := newTestRoom(t)
		r.AddPlayer("p1")

		if _, ok := r.AssignTeam("p1", engine.Team("green")); ok {
			t.Error("Expected assignment to an unknown team to be refused")
		}
	})
}

func TestRoomStart(t *testing.T) {
	cases := []struct {
		name      string
		red, blue []string
		requester string
		want      bool
	}{
		{"host with both teams", []string{"p1"}, []string{"p2"}, "host-conn", true},
		{"non-host", []string{"p1"}, []string{"p2"}, "p1", false},
		{"empty blue team", []string{"p1"}, nil, "host-conn", false},
		{"empty both teams", nil, nil, "host-conn", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRoom(t)
			fillTeams(t, r, tc.red, tc.blue)

			state, ok := r.Start(tc.requester)
			if ok != tc.want {
				t.Fatalf("Start = %v, want %v", ok, tc.want)
			}
			if state.Started != tc.want {
				t.Errorf("State.Started = %v, want %v", state.Started, tc.want)
			}
		})
	}

	t.Run("second start refused", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})

		if _, ok := r.Start("host-conn"); !ok {
			t.Fatal("First start was refused")
		}
		if _, ok := r.Start("host-conn"); ok {
			t.Error("Expected second start to be refused")
		}
	})
}

func TestRoomPull(t *testing.T) {
	t.Run("before start is ignored", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})

		if _, ok := r.Pull("p1"); ok {
			t.Error("Expected pull before start to be ignored")
		}
	})

	t.Run("without team is ignored", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})
		r.AddPlayer("p3")
		r.Start("host-conn")

		if _, ok := r.Pull("p3"); ok {
			t.Error("Expected teamless pull to be ignored")
		}
	})

	t.Run("moves the rope", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1"}, []string{"p2"})
		r.Start("host-conn")

		outcome, ok := r.Pull("p1")
		if !ok {
			t.Fatal("Pull was refused")
		}
		if outcome.Team != engine.TeamRed {
			t.Errorf("Expected a red pull, got %s", outcome.Team)
		}
		if outcome.Position >= engine.RopeCenter {
			t.Errorf("Red pull did not move rope toward 0: %v", outcome.Position)
		}
	})

	t.Run("win resets the room", func(t *testing.T) {
		r := newTestRoom(t)
		fillTeams(t, r, []string{"p1", "p3"}, []string{"p2"})
		r.Start("host-conn")

		var outcome engine.PullOutcome
		for i := 0; i < 200; i++ {
			var ok bool
			outcome, ok = r.Pull("p1")
			if !ok {
				break
			}
			if outcome.Finished {
				break
			}
		}
		if !outcome.Finished {
			t.Fatal("Game never finished")
		}
		if outcome.Winner != engine.TeamRed {
			t.Errorf("Expected winner red, got %s", outcome.Winner)
		}

		state := r.State()
		if state.Started || state.RopePosition != engine.RopeCenter {
			t.Errorf("Expected waiting room at %v, got %+v", engine.RopeCenter, state)
		}
	})
}

func TestRoomSnapshot(t *testing.T) {
	r := newTestRoom(t)
	fillTeams(t, r, []string{"p1", "p3"}, []string{"p2"})

	snap := r.Snapshot()
	if snap.ID != "AB12CD" {
		t.Errorf("Expected snapshot ID AB12CD, got %s", snap.ID)
	}
	if snap.Players != 3 {
		t.Errorf("Expected 3 players, got %d", snap.Players)
	}
	if snap.Teams.Red != 2 || snap.Teams.Blue != 1 {
		t.Errorf("Expected counts {2 1}, got %+v", snap.Teams)
	}
	if snap.Started {
		t.Error("Expected waiting snapshot")
	}
	if snap.RopePosition != engine.RopeCenter {
		t.Errorf("Expected rope at %v, got %v", engine.RopeCenter, snap.RopePosition)
	}
}
