package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCommand_AcceptsWellFormedWorkflow(t *testing.T) {
	app, flags, _ := newTestApp(t)
	path := writeWorkflowFile(t, sampleWorkflowJSON("notify-team", 1))

	out, err := executeRoot(app, flags, "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "valid")
	require.Contains(t, out, "1 nodes")
}

func TestValidateCommand_RejectsMissingID(t *testing.T) {
	app, flags, _ := newTestApp(t)
	wf := sampleWorkflow("", 1)
	raw, err := json.Marshal(wf)
	require.NoError(t, err)
	path := writeWorkflowFile(t, raw)

	_, err = executeRoot(app, flags, "validate", path)
	require.Error(t, err)
}

func TestValidateCommand_RejectsMalformedJSON(t *testing.T) {
	app, flags, _ := newTestApp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := executeRoot(app, flags, "validate", path)
	require.Error(t, err)
}

func TestValidateCommand_ErrorsOnMissingFile(t *testing.T) {
	app, flags, _ := newTestApp(t)

	_, err := executeRoot(app, flags, "validate", "/nonexistent/workflow.json")
	require.Error(t, err)
}

func sampleWorkflowJSON(id string, version int) []byte {
	raw, err := json.Marshal(sampleWorkflow(id, version))
	if err != nil {
		panic(err)
	}
	return raw
}

func writeWorkflowFile(t *testing.T, raw []byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "workflow.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}
