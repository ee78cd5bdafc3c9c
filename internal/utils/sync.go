package utils

import (
	"sync"
)

// OptionalMutex guards state only when the owning backend was created without
// CreateExternallySynchronized.
type OptionalMutex struct {
	mutex   sync.Mutex
	Enabled bool
}

func (m *OptionalMutex) Lock() {
	if m.Enabled {
		m.mutex.Lock()
	}
}

func (m *OptionalMutex) Unlock() {
	if m.Enabled {
		m.mutex.Unlock()
	}
}

type OptionalRWMutex struct {
	mutex   sync.RWMutex
	Enabled bool
}

func (m *OptionalRWMutex) Lock() {
	if m.Enabled {
		m.mutex.Lock()
	}
}

func (m *OptionalRWMutex) Unlock() {
	if m.Enabled {
		m.mutex.Unlock()
	}
}

func (m *OptionalRWMutex) RLock() {
	if m.Enabled {
		m.mutex.RLock()
	}
}

func (m *OptionalRWMutex) RUnlock() {
	if m.Enabled {
		m.mutex.RUnlock()
	}
}
