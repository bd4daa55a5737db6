package seed

import (
	"sync"
)

// manager implements seed caching with thread-safe access
type manager struct {
	mu    sync.RWMutex
	seeds map[string][]byte
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{
		seeds: make(map[string][]byte),
	}
}

// Seed returns a copy of the cached seed, stretching the mnemonic on a miss
func (m *manager) Seed(mn *Mnemonic) []byte {
	m.mu.RLock()
	cached, ok := m.seeds[mn.Phrase()]
	m.mu.RUnlock()

	if !ok {
		// PBKDF2 runs outside the lock, a racing caller computes the same bytes
		cached = mn.Seed("")

		m.mu.Lock()
		if existing, found := m.seeds[mn.Phrase()]; found {
			cached = existing
		} else {
			m.seeds[mn.Phrase()] = cached
		}
		m.mu.Unlock()
	}

	seedCopy := make([]byte, len(cached))
	copy(seedCopy, cached)
	return seedCopy
}

// Forget wipes the cached seed of the mnemonic
func (m *manager) Forget(mn *Mnemonic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.seeds[mn.Phrase()]; ok {
		wipe(s)
		delete(m.seeds, mn.Phrase())
	}
}

// Len returns the number of cached seeds
func (m *manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.seeds)
}

// Clear clears all seeds from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, s := range m.seeds {
		wipe(s)
		delete(m.seeds, k)
	}
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
