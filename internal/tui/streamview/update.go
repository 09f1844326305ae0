package streamview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wiredwork/orcheo/internal/stream"
)

// Update handles one Bubbletea message: either the next event off the
// run's channel, or a key/quit event from the terminal.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if !msg.ok {
			m.finished = true
			return m, tea.Quit
		}
		m.handleEvent(msg.event)
		if m.quit {
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quit = true
			return m, tea.Quit
		}

	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}

func (m *Model) handleEvent(e stream.Event) {
	switch e.Type {
	case stream.TypeText:
		m.appendf("%s %s", iconText, e.Content)

	case stream.TypeToolUse:
		c, _ := e.Content.(stream.ToolUseContent)
		m.appendf("%s %s %v", iconTool, c.Tool, c.Input)

	case stream.TypeToolResult:
		c, _ := e.Content.(stream.ToolResultContent)
		icon := iconOK
		if c.IsErr {
			icon = iconFail
		}
		m.appendf("%s %s -> %v", icon, c.Tool, c.Output)

	case stream.TypeWorkflow:
		m.appendf("%s drafted workflow", iconWorkflow)

	case stream.TypeExecutionReport:
		c, _ := e.Content.(stream.ExecutionReportContent)
		m.attempt = c.Attempt
		m.appendf("%s attempt %d\n%s", iconReport, c.Attempt, c.Summary)

	case stream.TypeConnectorBuilt:
		c, _ := e.Content.(stream.ConnectorBuiltContent)
		m.appendf("%s built connector for %q -> %s", iconBuilt, c.Service, c.Destination)

	case stream.TypeWorkflowSaved:
		c, _ := e.Content.(stream.WorkflowSavedContent)
		m.appendf("%s saved %s (team %s, v%d)", iconSaved, c.ID, c.Team, c.Version)

	case stream.TypeWorkspace:
		c, _ := e.Content.(stream.WorkspaceContent)
		m.appendf("%s workspace: %s", iconWorkspace, c.Path)

	case stream.TypeResult:
		c, _ := e.Content.(stream.ResultContent)
		m.appendf("%s %s", iconResult, c.Summary)

	case stream.TypeError:
		m.failed = true
		m.appendf("%s %v", iconFail, e.Content)

	default:
		m.appendf("? %s %v", e.Type, e.Content)
	}
}
