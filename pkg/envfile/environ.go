package envfile

import (
	"os"
	"sync"
)

// Environ is the variable table a loader writes into.
type Environ interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

// OSEnviron is the process environment. It is shared global state and is not
// synchronised.
type OSEnviron struct{}

func (OSEnviron) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (OSEnviron) Set(key, value string) error {
	return os.Setenv(key, value)
}

// MapEnviron is an in-memory Environ.
type MapEnviron struct {
	mutex sync.RWMutex
	vars  map[string]string
}

func NewMapEnviron(initial map[string]string) *MapEnviron {
	vars := make(map[string]string, len(initial))
	for k, v := range initial {
		vars[k] = v
	}
	return &MapEnviron{vars: vars}
}

func (m *MapEnviron) Lookup(key string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	v, ok := m.vars[key]
	return v, ok
}

func (m *MapEnviron) Set(key, value string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.vars == nil {
		m.vars = make(map[string]string)
	}
	m.vars[key] = value
	return nil
}

// Snapshot returns a copy of the table.
func (m *MapEnviron) Snapshot() map[string]string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	out := make(map[string]string, len(m.vars))
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}
