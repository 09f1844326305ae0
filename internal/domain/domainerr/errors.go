// Package domainerr defines the code-tagged error taxonomy shared by workflow
// validation, the DAG executor, the connector registry, and connectors.
package domainerr

import (
	"errors"
	"fmt"
)

// Code identifies a well-known domain error category. Codes are the
// structural tier of the error model: they abort the run that produced them.
type Code string

const (
	// CodeCycle marks a workflow whose depends_on edges form a cycle.
	CodeCycle Code = "CIRCULAR_DEPENDENCY"
	// CodeUnknownService marks a node whose service tag has no registered
	// service in the run's Services map.
	CodeUnknownService Code = "UNKNOWN_SERVICE"
	// CodeUnknownAction marks a node whose action tag has no handler on the
	// resolved service.
	CodeUnknownAction Code = "UNKNOWN_ACTION"
	// CodeSchema marks a workflow JSON artifact that fails schema validation.
	CodeSchema Code = "SCHEMA_ERROR"
	// CodeDuplicate marks a duplicate node or workflow identifier.
	CodeDuplicate Code = "DUPLICATE_ID"
	// CodeDependency marks an edge or depends_on entry referencing a node
	// that does not exist in the workflow.
	CodeDependency Code = "DEPENDENCY_ERROR"
	// CodeSpawnFailed marks a subprocess that could not be started.
	CodeSpawnFailed Code = "SPAWN_FAILED"
	// CodeInternal marks an unexpected internal failure.
	CodeInternal Code = "INTERNAL_ERROR"
)

// DomainError is a typed error enriched with contextual data, free of any
// infrastructure dependency.
type DomainError struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons against other DomainError values by code
// and message, ignoring context and cause.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code && e.Message == domainErr.Message
}

// WithContext clones the error with additional contextual metadata merged in.
func (e *DomainError) WithContext(ctx map[string]interface{}) *DomainError {
	if e == nil {
		return nil
	}
	merged := make(map[string]interface{}, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		merged[k] = v
	}
	for k, v := range ctx {
		merged[k] = v
	}
	return &DomainError{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: merged}
}

func newDomainError(code Code, message string, cause error, context map[string]interface{}) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause, Context: context}
}

// NewCycleError builds a CodeCycle error carrying the cyclic node path.
func NewCycleError(path []string) *DomainError {
	return newDomainError(CodeCycle, "circular dependency detected in workflow", nil, map[string]interface{}{
		"path": path,
	})
}

// NewUnknownServiceError builds a CodeUnknownService error for a node.
func NewUnknownServiceError(nodeID, service string) *DomainError {
	return newDomainError(CodeUnknownService, "node references unregistered service", nil, map[string]interface{}{
		"node_id": nodeID,
		"service": service,
	})
}

// NewUnknownActionError builds a CodeUnknownAction error for a node.
func NewUnknownActionError(nodeID, service, action string) *DomainError {
	return newDomainError(CodeUnknownAction, "node references unregistered action", nil, map[string]interface{}{
		"node_id": nodeID,
		"service": service,
		"action":  action,
	})
}

// NewSchemaError wraps a schema validation failure.
func NewSchemaError(message string, cause error) *DomainError {
	return newDomainError(CodeSchema, message, cause, nil)
}

// NewDuplicateError builds a CodeDuplicate error for the given identifier.
func NewDuplicateError(kind, identifier string) *DomainError {
	return newDomainError(CodeDuplicate, "duplicate identifier", nil, map[string]interface{}{
		"kind": kind,
		"id":   identifier,
	})
}

// NewDependencyError builds a CodeDependency error for a dangling reference.
func NewDependencyError(message string, context map[string]interface{}) *DomainError {
	return newDomainError(CodeDependency, message, nil, context)
}

// NewSpawnError wraps a subprocess start failure.
func NewSpawnError(command string, cause error) *DomainError {
	return newDomainError(CodeSpawnFailed, "failed to start subprocess", cause, map[string]interface{}{
		"command": command,
	})
}
