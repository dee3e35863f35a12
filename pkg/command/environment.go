package command

import (
	"time"

	"github.com/google/uuid"
)

// EnvironmentVariable is one substitutable key/value pair. Secret variables
// are masked in the UI but substitute like any other.
type EnvironmentVariable struct {
	ID     string `yaml:"id"`
	Key    string `yaml:"key"`
	Value  string `yaml:"value"`
	Secret bool   `yaml:"secret,omitempty"`
}

// Environment is a named, ordered set of variables. Keys are not required to
// be unique; substitution uses the first match.
type Environment struct {
	ID        string                `yaml:"id"`
	Name      string                `yaml:"name"`
	Variables []EnvironmentVariable `yaml:"variables,omitempty"`
	CreatedAt time.Time             `yaml:"created_at"`
	UpdatedAt time.Time             `yaml:"updated_at"`
}

// NewEnvironment creates an empty environment with the given name.
func NewEnvironment(name string) *Environment {
	now := time.Now().UTC()
	return &Environment{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lookup returns the value of the first variable with the given key.
// Safe on a nil environment.
func (e *Environment) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, v := range e.Variables {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// AddVariable appends a variable with a fresh id.
func (e *Environment) AddVariable(key, value string, secret bool) {
	e.Variables = append(e.Variables, EnvironmentVariable{
		ID: uuid.NewString(), Key: key, Value: value, Secret: secret,
	})
	e.UpdatedAt = time.Now().UTC()
}

// SetVariable updates the first variable with the given key, or appends a
// new one when none exists.
func (e *Environment) SetVariable(key, value string, secret bool) {
	for i := range e.Variables {
		if e.Variables[i].Key == key {
			e.Variables[i].Value = value
			e.Variables[i].Secret = secret
			e.UpdatedAt = time.Now().UTC()
			return
		}
	}
	e.AddVariable(key, value, secret)
}

// UpdateVariable sets the value of the first variable with the given key and
// reports whether one was found.
func (e *Environment) UpdateVariable(key, value string) bool {
	for i := range e.Variables {
		if e.Variables[i].Key == key {
			e.Variables[i].Value = value
			e.UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// RemoveVariable deletes every variable with the given key and reports
// whether any was removed.
func (e *Environment) RemoveVariable(key string) bool {
	kept := e.Variables[:0]
	for _, v := range e.Variables {
		if v.Key != key {
			kept = append(kept, v)
		}
	}
	removed := len(kept) < len(e.Variables)
	e.Variables = kept
	e.UpdatedAt = time.Now().UTC()
	return removed
}

// RemoveVariableAt deletes the variable at index i, keeping order.
func (e *Environment) RemoveVariableAt(i int) bool {
	if i < 0 || i >= len(e.Variables) {
		return false
	}
	e.Variables = append(e.Variables[:i], e.Variables[i+1:]...)
	e.UpdatedAt = time.Now().UTC()
	return true
}
