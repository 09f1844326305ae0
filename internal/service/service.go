// Package service defines the uniform dispatch contract every provider of
// workflow-node actions (simulator or real connector) must satisfy, and an
// explicit per-service action registry used to resolve "(service, action)"
// pairs without runtime reflection.
package service

import "context"

// ErrorKind enumerates the wire failure taxonomy shared by simulator
// precondition failures and real-connector provider error mapping.
type ErrorKind string

const (
	ErrAuth                ErrorKind = "auth_error"
	ErrPermissionDenied    ErrorKind = "permission_denied"
	ErrNotFound            ErrorKind = "not_found"
	ErrAlreadyExists       ErrorKind = "already_exists"
	ErrRateLimit           ErrorKind = "rate_limit"
	ErrUnknownService      ErrorKind = "unknown_service"
	ErrUnknownAction       ErrorKind = "unknown_action"
	ErrPreconditionFailed  ErrorKind = "precondition_failed"
	ErrConnectorError      ErrorKind = "connector_error"
)

// Error is the typed error every action handler returns on failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// NewError constructs a service Error of the given kind.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Params is the resolved (post-templating) argument bag passed to an action.
type Params map[string]interface{}

// Result is the payload returned by a successful action. By contract it
// must carry a "status" key with a past-tense verb value.
type Result map[string]interface{}

// ActionFunc is the uniform handler signature every registered action must
// satisfy, whether backed by a synchronous simulator call or an outbound
// HTTP request in a real connector.
type ActionFunc func(ctx context.Context, nodeID string, params Params) (Result, error)

// Service is the uniform dispatch contract: given a node identifier and a
// resolved parameter bag, invoke the named action.
type Service interface {
	// ServiceName returns this service's registered tag (e.g. "hr", "slack").
	ServiceName() string
	// Invoke dispatches to the named action, returning ErrUnknownAction if
	// no handler is registered for it.
	Invoke(ctx context.Context, action string, nodeID string, params Params) (Result, error)
}

// Map is the set of resolved services available to one execution, keyed by
// service tag.
type Map map[string]Service

// Get resolves a service by tag, reporting whether it is present.
func (m Map) Get(serviceTag string) (Service, bool) {
	s, ok := m[serviceTag]
	return s, ok
}
