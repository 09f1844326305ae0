package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/planner/simulatedagent"
)

func TestNewAgentClient_FallsBackToSimulatorWithoutAPIKey(t *testing.T) {
	app, flags, _ := newTestApp(t)
	require.NoError(t, bootstrap(app, flags))

	agent, err := newAgentClient(app)
	require.NoError(t, err)
	require.IsType(t, simulatedagent.New(), agent)
}

func TestPlanCommand_RefineFlagNotYetSupported(t *testing.T) {
	app, flags, _ := newTestApp(t)

	_, err := executeRoot(app, flags, "plan", "notify the team", "--refine", "some-id")
	require.Error(t, err)
}
