package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/simstate"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/registry"
)

func TestResolveServices_BuiltinServiceResolves(t *testing.T) {
	settings := &config.Settings{ModelID: "claude-test", ConnectorMode: config.ConnectorModeSimulated}
	reg := registry.New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))
	defer reg.Close()

	wf := sampleWorkflow("notify-team", 1)
	svcMap, err := resolveServices(context.Background(), reg, settings, wf)
	require.NoError(t, err)
	require.Contains(t, svcMap, "slack")
}

func TestResolveServices_UnknownServiceErrors(t *testing.T) {
	settings := &config.Settings{ModelID: "claude-test", ConnectorMode: config.ConnectorModeSimulated}
	reg := registry.New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))
	defer reg.Close()

	wf := sampleWorkflow("notify-team", 1)
	wf.Nodes[0].Service = "does-not-exist"
	_, err := resolveServices(context.Background(), reg, settings, wf)
	require.Error(t, err)
}

func TestResolveServices_RealModeErrorsOnSimulatedFallback(t *testing.T) {
	settings := &config.Settings{ModelID: "claude-test", ConnectorMode: config.ConnectorModeReal}
	reg := registry.New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))
	defer reg.Close()

	wf := sampleWorkflow("notify-team", 1)
	_, err := resolveServices(context.Background(), reg, settings, wf)
	require.Error(t, err)
}

func TestResolveServices_HybridModeAllowsSimulatedFallback(t *testing.T) {
	settings := &config.Settings{ModelID: "claude-test", ConnectorMode: config.ConnectorModeHybrid}
	reg := registry.New(settings, simstate.New(), &http.Client{}, trace.NewTrace(time.Now()))
	defer reg.Close()

	wf := sampleWorkflow("notify-team", 1)
	svcMap, err := resolveServices(context.Background(), reg, settings, wf)
	require.NoError(t, err)
	require.Contains(t, svcMap, "slack")
}

func TestRunCommand_UnknownWorkflowErrors(t *testing.T) {
	app, flags, _ := newTestApp(t)

	_, err := executeRoot(app, flags, "run", "missing")
	require.Error(t, err)
}
