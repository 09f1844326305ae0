package streamview

import "github.com/charmbracelet/lipgloss"

var (
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	toolStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

const (
	iconText      = "»"
	iconTool      = "⚙"
	iconOK        = "✓"
	iconFail      = "✗"
	iconWorkflow  = "▤"
	iconReport    = "▦"
	iconBuilt     = "⚒"
	iconSaved     = "⇩"
	iconWorkspace = "⌂"
	iconResult    = "●"
)
