package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestWizardDefaultsFlowThrough(t *testing.T) {
	m := NewModel(ScaffoldConfig{Dir: ".", Title: "viewer", Port: 8080})

	var model tea.Model = m
	// Advance through all three inputs, then confirm the summary.
	for i := 0; i < 3; i++ {
		model, _ = model.(Model).Update(keyMsg("enter"))
	}
	model, _ = model.(Model).Update(keyMsg("enter"))

	final := model.(Model)
	if !final.Completed() {
		t.Fatal("wizard did not complete")
	}
	cfg := final.GetConfig()
	if cfg.Title != "viewer" {
		t.Errorf("Title = %q, want viewer", cfg.Title)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
}

func TestWizardEmptyTitleGetsDefault(t *testing.T) {
	m := NewModel(ScaffoldConfig{})

	var model tea.Model = m
	for i := 0; i < 3; i++ {
		model, _ = model.(Model).Update(keyMsg("enter"))
	}

	cfg := model.(Model).GetConfig()
	if cfg.Title != "svgpan demo" {
		t.Errorf("Title = %q, want default", cfg.Title)
	}
	if cfg.Port != 5173 {
		t.Errorf("Port = %d, want default 5173", cfg.Port)
	}
}

func TestWizardRejectsBadPort(t *testing.T) {
	m := NewModel(ScaffoldConfig{})

	var model tea.Model = m
	model, _ = model.(Model).Update(keyMsg("enter")) // title -> svg
	model, _ = model.(Model).Update(keyMsg("enter")) // svg -> port
	for _, r := range "99999999" {
		model, _ = model.(Model).Update(keyMsg(string(r)))
	}
	model, _ = model.(Model).Update(keyMsg("enter"))

	got := model.(Model)
	if got.step != StepInputs {
		t.Fatalf("step = %v, want StepInputs after invalid port", got.step)
	}
	if !strings.Contains(got.View(), "invalid port") {
		t.Error("expected validation error in view")
	}
}

func TestWizardEscCancels(t *testing.T) {
	m := NewModel(ScaffoldConfig{})

	model, _ := m.Update(keyMsg("esc"))
	if model.(Model).Completed() {
		t.Error("cancelled wizard reports completed")
	}
}
