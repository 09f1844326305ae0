package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/domain/workflow"
	"github.com/wiredwork/orcheo/internal/store"
)

// testSettingsTemplate is the minimal configuration every cmd/orcheo test
// needs: a simulated connector mode (no credentials required) and a
// workflow store root scoped to the test's temp directory.
const testSettingsTemplate = `
model_id: claude-test
connector_mode: simulated
workflow_store_root: %s
`

// newTestApp writes a settings file and returns a fresh AppContext and
// rootFlags pointing at it, mirroring how main wires the two before cobra
// parses any flags.
func newTestApp(t *testing.T) (app *AppContext, flags *rootFlags, storeRoot string) {
	t.Helper()
	dir := t.TempDir()
	storeRoot = filepath.Join(dir, "workflows")
	settingsPath := filepath.Join(dir, "settings.yaml")
	contents := fmt.Sprintf(testSettingsTemplate, storeRoot)
	require.NoError(t, os.WriteFile(settingsPath, []byte(contents), 0o644))

	return &AppContext{}, &rootFlags{configPath: settingsPath}, storeRoot
}

func sampleWorkflow(id string, version int) workflow.Workflow {
	return workflow.Workflow{
		ID:      id,
		Name:    "Sample Workflow",
		Team:    "default",
		Version: version,
		Nodes: []workflow.WorkflowNode{
			{
				ID:      "send_message",
				Name:    "Send Message",
				Service: "slack",
				Action:  "post_message",
				Parameters: []workflow.NodeParameter{
					{Name: "channel", Value: "#general"},
				},
			},
		},
	}
}

// seedWorkflow saves wf directly through the store, bypassing cobra, so a
// test can assert on "list"/"show" without first exercising "plan".
func seedWorkflow(t *testing.T, storeRoot string, wf workflow.Workflow) {
	t.Helper()
	s, err := store.NewFileStore(storeRoot)
	require.NoError(t, err)
	_, err = s.Save(context.Background(), wf)
	require.NoError(t, err)
}

func executeRoot(app *AppContext, flags *rootFlags, args ...string) (string, error) {
	root := newRootCmd(app, flags)
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
