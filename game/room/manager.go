package room

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"

	"tug-of-war-server/game/engine"
	"tug-of-war-server/validate"
)

const (
	codeLength  = 6
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// maxCodeAttempts bounds collision retries; 36^6 codes make more than a
	// handful of consecutive collisions a sign something is broken.
	maxCodeAttempts = 10
)

// Manager is the process-wide room registry. It is safe for concurrent use.
type Manager struct {
	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewManager creates an empty room registry.
func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// Create allocates a fresh room with a unique code, owned by the given host
// connection, running under the given rules.
func (m *Manager) Create(hostID string, rules *engine.Rules) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for attempt := 0; ; attempt++ {
		if attempt >= maxCodeAttempts {
			return nil, fmt.Errorf("failed to allocate a unique room code after %d attempts", maxCodeAttempts)
		}
		c, err := generateRoomCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}
		if _, taken := m.rooms[c]; !taken {
			code = c
			break
		}
	}

	r, err := New(code, hostID, rules)
	if err != nil {
		return nil, err
	}
	m.rooms[code] = r
	return r, nil
}

// Get retrieves a room by code. Lookups are whitespace-trimmed and
// case-insensitive; unknown codes return ErrRoomNotFound.
func (m *Manager) Get(code string) (*Room, error) {
	normalized := validate.NormalizeRoomCode(code)

	m.mu.RLock()
	defer m.mu.RUnlock()

	r, exists := m.rooms[normalized]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

// Delete removes a room from the registry. Deleting an unknown or already
// deleted room is a no-op.
func (m *Manager) Delete(code string) {
	normalized := validate.NormalizeRoomCode(code)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, normalized)
}

// List returns all live rooms.
func (m *Manager) List() []*Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		result = append(result, r)
	}
	return result
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms)
}

// generateRoomCode returns a 6-character uppercase alphanumeric code drawn
// from crypto/rand.
func generateRoomCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = codeCharset[n.Int64()]
	}
	return string(code), nil
}
