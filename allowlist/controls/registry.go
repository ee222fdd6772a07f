// Package controls keeps track of the interactive components the bot has attached to
// messages, and restores them on startup.
package controls

import (
	"sync"

	"github.com/disgoorg/snowflake/v2"
)

type Binding struct {
	ControlID string
	ChannelID snowflake.ID
	MessageID snowflake.ID
	// ApplicationID is zero for the intake control.
	ApplicationID int64
}

type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// Bind replaces any earlier binding with the same control ID.
func (r *Registry) Bind(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.ControlID] = b
}

func (r *Registry) Unbind(controlID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, controlID)
}

func (r *Registry) Lookup(controlID string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[controlID]
	return b, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}
