package ui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// RunInitTUI starts the interactive wizard and returns the collected
// scaffold configuration.
func RunInitTUI(defaults ScaffoldConfig) (ScaffoldConfig, error) {
	if !isatty() {
		return ScaffoldConfig{}, fmt.Errorf("not running in a terminal, use --no-interactive flag")
	}

	p := tea.NewProgram(NewModel(defaults))

	finalModel, err := p.Run()
	if err != nil {
		return ScaffoldConfig{}, fmt.Errorf("TUI error: %w", err)
	}

	m := finalModel.(Model)
	if !m.Completed() {
		return ScaffoldConfig{}, fmt.Errorf("scaffold cancelled")
	}

	return m.GetConfig(), nil
}

// isatty checks if we're running in a terminal
func isatty() bool {
	fileInfo, _ := os.Stdout.Stat()
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
