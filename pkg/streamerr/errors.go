// Package streamerr is the code-tagged error taxonomy for orcheo's
// boundary-facing layers: config loading, workflow JSON parsing and schema
// validation, node execution, and connector dispatch. It is the CLI-facing
// counterpart to internal/domain/domainerr's workflow-engine taxonomy,
// sharing domainerr's Code+Context+Cause shape rather than giving each
// failure kind its own struct, so one Error/Unwrap/Is implementation covers
// all four.
package streamerr

import (
	"errors"
	"fmt"
)

// Code identifies which boundary produced a StreamError.
type Code string

const (
	// CodeParse marks a workflow JSON document that failed to parse.
	CodeParse Code = "PARSE_ERROR"
	// CodeValidation marks a workflow or settings document that parsed but
	// failed schema/field validation.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeExecution marks a runtime failure while executing a workflow node.
	CodeExecution Code = "EXECUTION_ERROR"
	// CodeConnector marks a failure registering or dispatching a connector.
	CodeConnector Code = "CONNECTOR_ERROR"
)

// StreamError is a code-tagged error carrying free-form context, the single
// type behind all of NewParseError/NewValidationError/NewExecutionError/
// NewConnectorError.
type StreamError struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error formats the error using the fields each Code populates in Context:
// "path"/"line" for CodeParse, "field" for CodeValidation, "node_id" for
// CodeExecution, "service" for CodeConnector.
func (e *StreamError) Error() string {
	if e == nil {
		return ""
	}

	switch e.Code {
	case CodeParse:
		path, _ := e.Context["path"].(string)
		if line, ok := e.Context["line"].(int); ok && line > 0 {
			return fmt.Sprintf("parse error: %s:%d: %s", path, line, e.Message)
		}
		return fmt.Sprintf("parse error: %s: %s", path, e.Message)
	case CodeValidation:
		if field, ok := e.Context["field"].(string); ok && field != "" {
			return fmt.Sprintf("validation error: %s: %s", field, e.Message)
		}
		return fmt.Sprintf("validation error: %s", e.Message)
	case CodeExecution:
		if nodeID, ok := e.Context["node_id"].(string); ok && nodeID != "" {
			return fmt.Sprintf("execution error on node %s: %v", nodeID, e.Cause)
		}
		return fmt.Sprintf("execution error: %v", e.Cause)
	case CodeConnector:
		if service, ok := e.Context["service"].(string); ok && service != "" {
			return fmt.Sprintf("connector error [%s]: %s", service, e.Message)
		}
		return fmt.Sprintf("connector error: %s", e.Message)
	default:
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
		}
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *StreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is allows errors.Is comparisons between StreamError values by code and
// message, ignoring context and cause, mirroring domainerr.DomainError.Is.
func (e *StreamError) Is(target error) bool {
	var other *StreamError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Message == other.Message
}

func newStreamError(code Code, message string, cause error, context map[string]interface{}) *StreamError {
	if context == nil {
		context = make(map[string]interface{})
	}
	return &StreamError{Code: code, Message: message, Cause: cause, Context: context}
}

// NewParseError builds a CodeParse error. line is 0 when the underlying
// parser didn't report one.
func NewParseError(path string, line int, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	ctx := map[string]interface{}{"path": path}
	if line > 0 {
		ctx["line"] = line
	}
	return newStreamError(CodeParse, message, cause, ctx)
}

// NewValidationError builds a CodeValidation error for one field. field may
// be empty for a document-level failure.
func NewValidationError(field, message string, cause error) error {
	ctx := map[string]interface{}{}
	if field != "" {
		ctx["field"] = field
	}
	return newStreamError(CodeValidation, message, cause, ctx)
}

// NewExecutionError builds a CodeExecution error for the node that failed.
// nodeID may be empty when the failure isn't attributable to one node.
func NewExecutionError(nodeID string, cause error) error {
	ctx := map[string]interface{}{}
	if nodeID != "" {
		ctx["node_id"] = nodeID
	}
	return newStreamError(CodeExecution, "", cause, ctx)
}

// NewConnectorError builds a CodeConnector error for the given service tag.
func NewConnectorError(service string, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	ctx := map[string]interface{}{}
	if service != "" {
		ctx["service"] = service
	}
	return newStreamError(CodeConnector, message, cause, ctx)
}
