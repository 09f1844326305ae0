package streamview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders every line observed so far, newest at the bottom.
func (m Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Orcheo • Planner Run"))

	for _, line := range m.lines {
		sections = append(sections, styleLine(line))
	}

	if m.finished {
		if m.failed {
			sections = append(sections, failStyle.Render("run ended with errors"))
		} else {
			sections = append(sections, okStyle.Render("run complete"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, iconFail):
		return failStyle.Render(line)
	case strings.HasPrefix(line, iconOK):
		return okStyle.Render(line)
	case strings.HasPrefix(line, iconTool):
		return toolStyle.Render(line)
	default:
		return textStyle.Render(line)
	}
}
