package anthropicagent

import (
	"context"
	"testing"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/require"
)

type stubMessagesClient struct{}

func (stubMessagesClient) New(context.Context, sdk.MessageNewParams, ...option.RequestOption) (*sdk.Message, error) {
	return &sdk.Message{}, nil
}

func TestNewRejectsMissingMessagesClient(t *testing.T) {
	_, err := New(nil, Options{Model: "claude-3", MaxTokens: 1024})
	require.Error(t, err)
}

func TestNewRejectsMissingModel(t *testing.T) {
	_, err := New(stubMessagesClient{}, Options{MaxTokens: 1024})
	require.Error(t, err)
}

func TestNewRejectsNonPositiveMaxTokens(t *testing.T) {
	_, err := New(stubMessagesClient{}, Options{Model: "claude-3"})
	require.Error(t, err)
}

func TestNewFromAPIKeyRejectsEmptyKey(t *testing.T) {
	_, err := NewFromAPIKey("", "claude-3", 1024)
	require.Error(t, err)
}

func TestNewAcceptsWellFormedOptions(t *testing.T) {
	c, err := New(stubMessagesClient{}, Options{Model: "claude-3", MaxTokens: 1024})
	require.NoError(t, err)
	require.NotNil(t, c)
}
