package service

import (
	"context"
	"sort"
)

// ActionRegistry is an explicit, per-service (action name -> handler) table.
// Embedding it in a concrete service gives that service a correct Invoke
// implementation without resorting to reflection-based method lookup.
type ActionRegistry struct {
	name     string
	handlers map[string]ActionFunc
}

// NewActionRegistry returns a registry for the named service with the given
// handler table. Registration happens once, at construction time.
func NewActionRegistry(name string, handlers map[string]ActionFunc) *ActionRegistry {
	return &ActionRegistry{name: name, handlers: handlers}
}

// ServiceName implements Service.
func (r *ActionRegistry) ServiceName() string {
	return r.name
}

// Invoke implements Service by looking the action up in the explicit table.
func (r *ActionRegistry) Invoke(ctx context.Context, action string, nodeID string, params Params) (Result, error) {
	handler, ok := r.handlers[action]
	if !ok {
		return nil, NewError(ErrUnknownAction, "no handler registered for action \""+action+"\" on service \""+r.name+"\"", nil)
	}
	return handler(ctx, nodeID, params)
}

var _ Service = (*ActionRegistry)(nil)

// Actions returns the sorted set of action names this registry dispatches,
// primarily for introspection by the Connector Builder and tests.
func (r *ActionRegistry) Actions() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
