package streamerr

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("workflow.json", 12, underlying)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	require.Equal(t, CodeParse, streamErr.Code)
	require.Equal(t, "workflow.json", streamErr.Context["path"])
	require.Equal(t, 12, streamErr.Context["line"])
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "workflow.json")
}

func TestValidationErrorAggregatesFields(t *testing.T) {
	t.Parallel()

	err := NewValidationError("nodes[1].depends_on", "references unknown node", nil)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	require.Equal(t, CodeValidation, streamErr.Code)
	require.Equal(t, "nodes[1].depends_on", streamErr.Context["field"])
	require.Contains(t, streamErr.Message, "references unknown node")
}

func TestExecutionErrorIncludesNodeContext(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("dispatch failed")
	err := NewExecutionError("provision_google", underlying)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	require.Equal(t, CodeExecution, streamErr.Code)
	require.Equal(t, "provision_google", streamErr.Context["node_id"])
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "provision_google")
}

func TestConnectorErrorIncludesServiceName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("not supported")
	err := NewConnectorError("slack", underlying)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	require.Equal(t, CodeConnector, streamErr.Code)
	require.Equal(t, "slack", streamErr.Context["service"])
	require.True(t, stdErrors.Is(err, underlying))
}

func TestStreamErrorIsComparesCodeAndMessage(t *testing.T) {
	t.Parallel()

	a := &StreamError{Code: CodeValidation, Message: "bad field"}
	b := &StreamError{Code: CodeValidation, Message: "bad field"}
	c := &StreamError{Code: CodeValidation, Message: "other field"}

	require.True(t, stdErrors.Is(a, b))
	require.False(t, stdErrors.Is(a, c))
	require.False(t, stdErrors.Is(a, stdErrors.New("plain")))
}

func TestStreamErrorNilReceiverIsSafe(t *testing.T) {
	t.Parallel()

	var err *StreamError
	require.Equal(t, "", err.Error())
	require.Nil(t, err.Unwrap())
}
