// Package ui implements the interactive scaffold wizard for svgpan init.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Step represents the current step in the init flow.
type Step int

const (
	StepInputs Step = iota
	StepSummary
	StepComplete
)

// ScaffoldConfig holds the answers collected by the wizard.
type ScaffoldConfig struct {
	Dir     string
	Title   string
	SVGPath string
	Port    int
}

const (
	inputTitle = iota
	inputSVGPath
	inputPort
	inputCount
)

// Model represents the wizard state.
type Model struct {
	step         Step
	inputs       []textinput.Model
	currentInput int
	config       ScaffoldConfig
	errorMessage string
	quitting     bool
}

// NewModel builds the wizard pre-filled with defaults.
func NewModel(defaults ScaffoldConfig) Model {
	inputs := make([]textinput.Model, inputCount)

	title := textinput.New()
	title.Placeholder = "svgpan demo"
	title.SetValue(defaults.Title)
	title.CharLimit = 80
	title.Focus()
	inputs[inputTitle] = title

	svgPath := textinput.New()
	svgPath.Placeholder = "path/to/diagram.svg (empty for built-in sample)"
	svgPath.SetValue(defaults.SVGPath)
	svgPath.CharLimit = 256
	inputs[inputSVGPath] = svgPath

	port := textinput.New()
	port.Placeholder = "5173"
	if defaults.Port != 0 {
		port.SetValue(strconv.Itoa(defaults.Port))
	}
	port.CharLimit = 5
	inputs[inputPort] = port

	return Model{
		step:   StepInputs,
		inputs: inputs,
		config: defaults,
	}
}

// GetConfig returns the collected configuration.
func (m Model) GetConfig() ScaffoldConfig {
	return m.config
}

// Completed reports whether the wizard ran to the confirmation step.
func (m Model) Completed() bool {
	return m.step == StepComplete
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case StepInputs:
			return m.updateInputs(msg)
		case StepSummary:
			return m.updateSummary(msg)
		}
	}

	return m, nil
}

func (m Model) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab", "down":
		if msg.String() == "enter" && m.currentInput == inputCount-1 {
			if err := m.collect(); err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			m.errorMessage = ""
			m.step = StepSummary
			return m, nil
		}
		m.inputs[m.currentInput].Blur()
		m.currentInput = (m.currentInput + 1) % inputCount
		return m, m.inputs[m.currentInput].Focus()

	case "shift+tab", "up":
		m.inputs[m.currentInput].Blur()
		m.currentInput = (m.currentInput + inputCount - 1) % inputCount
		return m, m.inputs[m.currentInput].Focus()
	}

	var cmd tea.Cmd
	m.inputs[m.currentInput], cmd = m.inputs[m.currentInput].Update(msg)
	return m, cmd
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		m.step = StepComplete
		return m, tea.Quit
	case "n", "backspace":
		m.step = StepInputs
		return m, m.inputs[m.currentInput].Focus()
	}
	return m, nil
}

// collect validates the inputs into the config.
func (m *Model) collect() error {
	m.config.Title = strings.TrimSpace(m.inputs[inputTitle].Value())
	if m.config.Title == "" {
		m.config.Title = "svgpan demo"
	}

	m.config.SVGPath = strings.TrimSpace(m.inputs[inputSVGPath].Value())

	portVal := strings.TrimSpace(m.inputs[inputPort].Value())
	if portVal == "" {
		m.config.Port = 5173
		return nil
	}
	port, err := strconv.Atoi(portVal)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", portVal)
	}
	m.config.Port = port
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("svgpan init"))
	b.WriteString("\n")

	switch m.step {
	case StepInputs:
		labels := []string{"Demo page title", "SVG document", "Dev server port"}
		for i, input := range m.inputs {
			label := labelStyle.Render(labels[i])
			if i == m.currentInput {
				label = focusedStyle.Render(labels[i])
			}
			b.WriteString(fmt.Sprintf("%s\n%s\n\n", label, input.View()))
		}
		if m.errorMessage != "" {
			b.WriteString(errorStyle.Render(m.errorMessage))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("tab/↓ next • shift+tab/↑ previous • enter confirm • esc quit"))

	case StepSummary:
		svg := m.config.SVGPath
		if svg == "" {
			svg = "(built-in sample)"
		}
		summary := fmt.Sprintf("Title:  %s\nSVG:    %s\nPort:   %d",
			m.config.Title, svg, m.config.Port)
		b.WriteString(summaryStyle.Render(summary))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/y scaffold • n back • esc quit"))
	}

	b.WriteString("\n")
	return b.String()
}
