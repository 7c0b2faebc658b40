package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"tug-of-war-server/game/engine"
)

func writePreset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write preset file: %v", err)
	}
}

func TestNewManager(t *testing.T) {
	t.Run("missing directory falls back to built-in default", func(t *testing.T) {
		m, err := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))
		if err != nil {
			t.Fatalf("NewManager: %v", err)
		}
		if m.Default().RoomCapacity != engine.DefaultRoomCapacity {
			t.Errorf("Expected built-in default capacity %d, got %d",
				engine.DefaultRoomCapacity, m.Default().RoomCapacity)
		}
	})

	t.Run("default.json overrides the built-in default", func(t *testing.T) {
		dir := t.TempDir()
		writePreset(t, dir, "default.json",
			`{"name":"house rules","room_capacity":8,"base_strength":2,"teammate_bonus":0.5,"reset_delay_sec":1}`)

		m, err := NewManager(dir)
		if err != nil {
			t.Fatalf("NewManager: %v", err)
		}
		if m.Default().RoomCapacity != 8 {
			t.Errorf("Expected overridden capacity 8, got %d", m.Default().RoomCapacity)
		}
	})

	t.Run("broken default.json is an error", func(t *testing.T) {
		dir := t.TempDir()
		writePreset(t, dir, "default.json", `{"room_capacity": -3}`)

		if _, err := NewManager(dir); err == nil {
			t.Error("Expected error for invalid default preset")
		}
	})
}

func TestManagerGet(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "blitz.json",
		`{"description":"fast games","room_capacity":2,"base_strength":5,"teammate_bonus":1,"reset_delay_sec":1}`)
	writePreset(t, dir, "broken.json", `{"base_strength": "not a number"}`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	t.Run("named preset", func(t *testing.T) {
		rules, err := m.Get("blitz")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if rules.BaseStrength != 5 {
			t.Errorf("Expected base strength 5, got %v", rules.BaseStrength)
		}
		if rules.Name != "blitz" {
			t.Errorf("Expected name filled from file name, got %q", rules.Name)
		}
	})

	t.Run("cached pointer on second load", func(t *testing.T) {
		first, _ := m.Get("blitz")
		second, _ := m.Get("blitz")
		if first != second {
			t.Error("Expected the cached preset pointer")
		}
	})

	t.Run("empty name returns default", func(t *testing.T) {
		rules, err := m.Get("")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if rules != m.Default() {
			t.Error("Expected the default preset")
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		if _, err := m.Get("nope"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid preset", func(t *testing.T) {
		if _, err := m.Get("broken"); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestManagerGetRejectsPathTraversal(t *testing.T) {
	// A readable preset one level above the config directory must stay out
	// of reach; names come straight off the wire.
	base := t.TempDir()
	writePreset(t, base, "secret.json",
		`{"room_capacity":4,"base_strength":1,"teammate_bonus":0.2,"reset_delay_sec":3}`)

	dir := filepath.Join(base, "presets")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	names := []string{
		"../secret",
		"..",
		"a/b",
		`a\b`,
		"secret.json",
		"./secret",
	}
	for _, name := range names {
		if _, err := m.Get(name); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Get(%q) = %v, want ErrConfigNotFound", name, err)
		}
	}
}

func TestManagerList(t *testing.T) {
	dir := t.TempDir()
	writePreset(t, dir, "blitz.json", `{}`)
	writePreset(t, dir, "marathon.json", `{}`)
	writePreset(t, dir, "notes.txt", "not a preset")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	names, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []string{"blitz", "default", "marathon"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, names)
		}
	}
}
