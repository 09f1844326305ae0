package streamview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wiredwork/orcheo/internal/stream"
)

func TestUpdateAppendsTextLines(t *testing.T) {
	m := New(nil)
	updated, _ := m.Update(eventMsg{ok: true, event: stream.New(stream.TypeText, "hello")})
	m = updated.(Model)
	require.Len(t, m.Lines(), 1)
	require.Contains(t, m.Lines()[0], "hello")
}

func TestUpdateMarksFailedOnErrorEvent(t *testing.T) {
	m := New(nil)
	updated, _ := m.Update(eventMsg{ok: true, event: stream.New(stream.TypeError, "boom")})
	m = updated.(Model)
	require.True(t, m.Failed())
}

func TestUpdateFinishesWhenChannelCloses(t *testing.T) {
	m := New(nil)
	updated, cmd := m.Update(eventMsg{ok: false})
	m = updated.(Model)
	require.True(t, m.Finished())
	require.NotNil(t, cmd)
}

func TestUpdateRecordsExecutionReportAttempt(t *testing.T) {
	m := New(nil)
	updated, _ := m.Update(eventMsg{ok: true, event: stream.New(stream.TypeExecutionReport, stream.ExecutionReportContent{
		Attempt: 2, Summary: "2 succeeded",
	})})
	m = updated.(Model)
	require.Equal(t, 2, m.attempt)
	require.Contains(t, m.Lines()[0], "2 succeeded")
}
