package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lumen/internal/config"
)

func newReadyModel(t *testing.T) *Model {
	t.Helper()
	m := New(config.Default())
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	mm, ok := model.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", model)
	}
	return mm
}

func TestRunLineEvaluatesAndRecordsHistory(t *testing.T) {
	m := newReadyModel(t)
	m.runLine(`print 1 + 2;`)

	if len(m.history) != 1 || m.history[0] != `print 1 + 2;` {
		t.Errorf("history = %v, want [%q]", m.history, `print 1 + 2;`)
	}
	if !strings.Contains(m.content, "3") {
		t.Errorf("viewport content = %q, want it to contain %q", m.content, "3")
	}
}

func TestRunLinePersistsGlobalsAcrossCalls(t *testing.T) {
	m := newReadyModel(t)
	m.runLine(`var x = 10;`)
	m.runLine(`print x + 5;`)

	if !strings.Contains(m.content, "15") {
		t.Errorf("viewport content = %q, want it to contain %q", m.content, "15")
	}
}

func TestRunLineReportsCompileError(t *testing.T) {
	m := newReadyModel(t)
	m.runLine(`var;`)

	if !strings.Contains(m.content, "[exit 65]") {
		t.Errorf("viewport content = %q, want it to contain an exit-65 marker", m.content)
	}
}

func TestEmptyLineIsIgnored(t *testing.T) {
	m := newReadyModel(t)
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	mm := model.(*Model)
	if len(mm.history) != 0 {
		t.Errorf("history = %v, want empty after submitting a blank line", mm.history)
	}
}
