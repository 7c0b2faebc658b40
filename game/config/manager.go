package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"tug-of-war-server/game/engine"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles rule-preset loading and caching. A missing config
// directory is not an error; the built-in default still works.
type Manager struct {
	configDir    string
	defaultRules *engine.Rules
	presets      map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a configuration manager reading presets from configDir.
func NewManager(configDir string) (*Manager, error) {
	m := &Manager{
		configDir:    configDir,
		defaultRules: engine.DefaultRules(),
		presets:      make(map[string]*engine.Rules),
	}

	// A "default" preset file replaces the built-in default.
	if rules, err := m.load("default"); err == nil {
		m.defaultRules = rules
	} else if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("failed to load default preset: %w", err)
	}

	return m, nil
}

// Get returns the preset with the given name, loading and caching it on
// first use. An empty name returns the default preset.
func (m *Manager) Get(name string) (*engine.Rules, error) {
	if name == "" {
		return m.Default(), nil
	}

	m.mu.RLock()
	if rules, exists := m.presets[name]; exists {
		m.mu.RUnlock()
		return rules, nil
	}
	m.mu.RUnlock()

	rules, err := m.load(name)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.presets[name] = rules
	m.mu.Unlock()
	return rules, nil
}

// Default returns the preset new rooms run under when none is named.
func (m *Manager) Default() *engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultRules
}

// List returns the names of every preset file in the config directory,
// sorted. The built-in "default" is always present.
func (m *Manager) List() ([]string, error) {
	names := map[string]bool{"default": true}

	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{"default"}, nil
		}
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names[strings.TrimSuffix(entry.Name(), ".json")] = true
	}

	result := make([]string, 0, len(names))
	for name := range names {
		result = append(result, name)
	}
	sort.Strings(result)
	return result, nil
}

// validPresetName reports whether a preset name is safe to join onto the
// config directory. Names arrive from the wire, so anything outside
// [A-Za-z0-9_-] is treated as unknown rather than handed to the filesystem.
func validPresetName(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}

// load reads and validates a single preset file.
func (m *Manager) load(name string) (*engine.Rules, error) {
	if !validPresetName(name) {
		return nil, ErrConfigNotFound
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var rules engine.Rules
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if rules.Name == "" {
		rules.Name = name
	}
	if err := engine.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &rules, nil
}
