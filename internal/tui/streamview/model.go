// Package streamview is the terminal UI that renders a Planner–Executor–
// Repair Loop run live: one line appended per stream.Event as it arrives
// on the run's event channel.
package streamview

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wiredwork/orcheo/internal/stream"
)

// eventMsg wraps one stream.Event read off the run's channel as a
// Bubbletea message.
type eventMsg struct {
	event stream.Event
	ok    bool
}

// Model is the Bubbletea state for one run's Stream Viewer.
type Model struct {
	events   <-chan stream.Event
	lines    []string
	attempt  int
	finished bool
	failed   bool
	quit     bool
}

// New constructs a Model that drains events until the channel closes.
func New(events <-chan stream.Event) Model {
	return Model{events: events}
}

// Init starts draining the event channel.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(events <-chan stream.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		return eventMsg{event: e, ok: ok}
	}
}

// Finished reports whether the underlying event channel has closed.
func (m Model) Finished() bool {
	return m.finished
}

// Failed reports whether a TypeError event was observed during the run.
func (m Model) Failed() bool {
	return m.failed
}

// Lines returns the rendered log, for non-interactive callers (e.g. when
// stdout isn't a TTY) that want the same text without a Bubbletea program.
func (m Model) Lines() []string {
	return m.lines
}

func (m *Model) appendf(format string, args ...interface{}) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}
