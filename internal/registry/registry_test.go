package registry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
)

func newTestRegistry(mode config.ConnectorMode) *Registry {
	settings := &config.Settings{ModelID: "test-model", ConnectorMode: mode}
	return New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))
}

func TestGetFallsBackToSimulatorWhenUnconfigured(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeReal)

	svc, err := r.Get(context.Background(), "hr")
	require.NoError(t, err)
	require.Equal(t, "hr", svc.ServiceName())
}

func TestGetReturnsSimulatorInSimulatedMode(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeSimulated)

	svc, err := r.Get(context.Background(), "slack")
	require.NoError(t, err)
	require.Equal(t, "slack", svc.ServiceName())
}

func TestGetCachesInstanceAcrossCalls(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeSimulated)

	first, err := r.Get(context.Background(), "jira")
	require.NoError(t, err)
	second, err := r.Get(context.Background(), "jira")
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestGetUnknownServiceReturnsDomainError(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeSimulated)

	_, err := r.Get(context.Background(), "zendesk")
	require.Error(t, err)
}

func TestInvalidateDropsCachedInstance(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeSimulated)

	first, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	r.Invalidate("github")
	second, err := r.Get(context.Background(), "github")
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestGetResolvesRealConnectorInHybridModeWhenConfigured(t *testing.T) {
	settings := &config.Settings{
		ModelID:       "test-model",
		ConnectorMode: config.ConnectorModeHybrid,
		Slack:         config.SlackSettings{BotToken: "xoxb-test"},
	}
	r := New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))

	svc, err := r.Get(context.Background(), "slack")
	require.NoError(t, err)
	require.Equal(t, "slack", svc.ServiceName())
	require.NoError(t, r.VerifyNoSimulatedFallback([]string{"slack"}))
}

func TestVerifyNoSimulatedFallbackErrorsInRealModeWhenUnconfigured(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeReal)

	_, err := r.Get(context.Background(), "hr")
	require.NoError(t, err)

	err = r.VerifyNoSimulatedFallback([]string{"hr"})
	require.Error(t, err)
}

func TestVerifyNoSimulatedFallbackIgnoresUnresolvedNames(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeReal)

	require.NoError(t, r.VerifyNoSimulatedFallback([]string{"jira"}))
}

func TestListAvailableIncludesAllBuiltins(t *testing.T) {
	r := newTestRegistry(config.ConnectorModeSimulated)

	available := r.ListAvailable()
	require.ElementsMatch(t, []string{"hr", "google", "slack", "jira", "github"}, available)
}

func TestValidateSourceRejectsMissingType(t *testing.T) {
	src := []byte(`package main

func NewFromSettings() {}
`)
	err := validateSource(src, "zendesk", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "ZendeskConnector")
}

func TestValidateSourceRejectsUnparsableFile(t *testing.T) {
	src := []byte(`this is not valid go at all {{{`)
	err := validateSource(src, "zendesk", nil)
	require.Error(t, err)
}

func TestValidateSourceAcceptsWellFormedCandidate(t *testing.T) {
	src := []byte(`package main

type ZendeskConnector struct{}

func (c *ZendeskConnector) ServiceName() string { return "zendesk" }
func (c *ZendeskConnector) Invoke(ctx interface{}, action string, nodeID string, params interface{}) (interface{}, error) {
	return nil, nil
}
func (c *ZendeskConnector) IsConfigured() bool { return true }

func NewFromSettings() *ZendeskConnector { return &ZendeskConnector{} }
`)
	err := validateSource(src, "zendesk", nil)
	require.NoError(t, err)
}

func TestValidateSourceRejectsMissingConstructor(t *testing.T) {
	src := []byte(`package main

type ZendeskConnector struct{}

func (c *ZendeskConnector) ServiceName() string { return "zendesk" }
func (c *ZendeskConnector) Invoke(ctx interface{}, action string, nodeID string, params interface{}) (interface{}, error) {
	return nil, nil
}
`)
	err := validateSource(src, "zendesk", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NewFromSettings")
}
