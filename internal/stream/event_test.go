package stream

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEventMarshalsTypeAndContent(t *testing.T) {
	ev := New(TypeError, "cycle detected")

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"error","content":"cycle detected"}`, string(raw))
}

func TestExecutionReportContentRoundTrips(t *testing.T) {
	ev := New(TypeExecutionReport, ExecutionReportContent{
		Report:  map[string]interface{}{"successful": 2},
		Summary: "2 nodes succeeded",
		Attempt: 1,
	})

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded struct {
		Type    Type `json:"type"`
		Content struct {
			Summary string `json:"summary"`
			Attempt int    `json:"attempt"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, TypeExecutionReport, decoded.Type)
	require.Equal(t, "2 nodes succeeded", decoded.Content.Summary)
	require.Equal(t, 1, decoded.Content.Attempt)
}
