// Package envtable abstracts the process environment variable table.
//
// The loader merges parsed variables through the Table interface rather than
// touching the process environment directly, so tests can run against an
// in-memory table without mutating real environment state.
package envtable

import (
	"os"
)

// Table is a key/value store of environment variables.
type Table interface {
	// Contains reports whether the key is present.
	Contains(key string) bool
	// Get returns the value for key and whether it is present.
	Get(key string) (string, bool)
	// Set stores the value for key.
	Set(key, value string) error
	// Clear removes all entries. Intended for test isolation only.
	Clear() error
}

type osTable struct{}

// OS returns the Table backed by the real process environment.
func OS() Table {
	return osTable{}
}

func (osTable) Contains(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func (osTable) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osTable) Set(key, value string) error {
	return os.Setenv(key, value)
}

func (osTable) Clear() error {
	os.Clearenv()
	return nil
}

// Map is an in-memory Table for tests.
type Map struct {
	vals map[string]string
}

// NewMap returns an empty in-memory table.
func NewMap() *Map {
	return &Map{vals: make(map[string]string)}
}

func (m *Map) Contains(key string) bool {
	_, ok := m.vals[key]
	return ok
}

func (m *Map) Get(key string) (string, bool) {
	v, ok := m.vals[key]
	return v, ok
}

func (m *Map) Set(key, value string) error {
	m.vals[key] = value
	return nil
}

func (m *Map) Clear() error {
	m.vals = make(map[string]string)
	return nil
}

// Len returns the number of entries in the table.
func (m *Map) Len() int {
	return len(m.vals)
}
