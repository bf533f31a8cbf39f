// Package repl implements the interactive Lumen shell: a Bubble Tea
// model wrapping one persistent *vm.VM, so globals and top-level state
// accumulate across lines exactly like the file-mode interpreter
// accumulates them across a whole script (spec §7). The model shape —
// an Init/Update/View struct styled with lipgloss — follows
// the teacher's internal/ui progress model.
package repl

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lumen/internal/compiler"
	"lumen/internal/config"
	"lumen/internal/vm"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	echoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const prompt = "lumen> "

// Model is the REPL's Bubble Tea state: one persistent VM, an input
// line, and a scrollback viewport.
type Model struct {
	vm       *vm.VM
	engine   compiler.Engine
	input    textinput.Model
	viewport viewport.Model
	content  string
	history  []string
	histFile string
	quitting bool
	ready    bool
}

// New constructs a REPL model. cfg.GC.Stress and cfg.REPL.HistoryFile
// configure the underlying VM and the on-quit history dump (spec §6
// CLI mode (a), SPEC_FULL.md §2 configuration section).
func New(cfg config.Config) *Model {
	v := vm.New()
	v.SetStressGC(cfg.GC.Stress)

	ti := textinput.New()
	ti.Placeholder = "print \"hello\";"
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.Focus()

	return &Model{
		vm:       v,
		input:    ti,
		histFile: cfg.REPL.HistoryFile,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 1
		vpHeight := msg.Height - headerHeight - 2
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.input.Width = msg.Width - len(prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			m.flushHistory()
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			if strings.TrimSpace(line) == "" {
				return m, nil
			}
			m.runLine(line)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runLine evaluates one line against the persistent VM, capturing its
// stdout/stderr into the scrollback viewport.
func (m *Model) runLine(line string) {
	m.history = append(m.history, line)

	var out bytes.Buffer
	prevOut, prevErr := m.vm.Stdout, m.vm.Stderr
	m.vm.Stdout = &out
	m.vm.Stderr = &out
	result := m.vm.Interpret(m.engine, line)
	m.vm.Stdout, m.vm.Stderr = prevOut, prevErr

	var b strings.Builder
	b.WriteString(echoStyle.Render(prompt + line))
	b.WriteString("\n")
	if out.Len() > 0 {
		b.WriteString(out.String())
	}
	if result != vm.ResultOK {
		b.WriteString(errorStyle.Render(fmt.Sprintf("[exit %d]", exitCode(result))))
		b.WriteString("\n")
	}

	m.appendLine(b.String())
}

func (m *Model) appendLine(s string) {
	if m.content != "" {
		m.content += "\n"
	}
	m.content += strings.TrimRight(s, "\n")
	m.viewport.SetContent(m.content)
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	if !m.ready {
		return "initializing...\n"
	}
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

func (m *Model) flushHistory() {
	if m.histFile == "" || len(m.history) == 0 {
		return
	}
	f, err := os.Create(m.histFile)
	if err != nil {
		return
	}
	defer f.Close()
	for _, line := range m.history {
		fmt.Fprintln(f, line)
	}
}

func exitCode(result vm.InterpretResult) int {
	switch result {
	case vm.ResultCompileError:
		return 65
	case vm.ResultRuntimeError:
		return 70
	default:
		return 0
	}
}
