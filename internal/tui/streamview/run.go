package streamview

import (
	"bufio"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/wiredwork/orcheo/internal/stream"
)

// Run drains events to completion, rendering them with the interactive
// Bubbletea program when stdout is a terminal, or as plain lines to out
// otherwise (matching the teacher's NonInteractive fallback for piped
// output and CI logs). It reports whether a TypeError event was observed.
func Run(events <-chan stream.Event, out io.Writer) (failed bool, err error) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runPlain(events, out)
	}

	p := tea.NewProgram(New(events))
	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("stream viewer: %w", err)
	}
	m, _ := finalModel.(Model)
	return m.Failed(), nil
}

func runPlain(events <-chan stream.Event, out io.Writer) (bool, error) {
	w := bufio.NewWriter(out)
	defer w.Flush()

	var m Model
	for e := range events {
		m.handleEvent(e)
	}
	for _, line := range m.lines {
		fmt.Fprintln(w, line)
	}
	return m.failed, nil
}
