// Package ui provides the Bubble Tea progress model shown while the
// `bench` subcommand drives the VM's garbage collector under stress,
// styled after the teacher's channel-fed progress model (bubbles
// progress+spinner, lipgloss styling, go-runewidth column widths).
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// BenchEvent reports one GC-stress iteration's outcome (spec §4.3's
// testable GC properties: bytes allocated, next collection threshold,
// and whether a collection ran this iteration: `bench --force-gc`
// collected, or bytes allocated dropped since the previous iteration).
type BenchEvent struct {
	Iteration      int
	Total          int
	BytesAllocated uint64
	NextGC         uint64
	Collected      bool
}

type eventMsg BenchEvent
type doneMsg struct{}

const maxLogLines = 12

// BenchModel is the bench subcommand's Bubble Tea model: one spinner,
// one progress bar, and a scrolling log of recent iterations.
type BenchModel struct {
	title   string
	events  <-chan BenchEvent
	spinner spinner.Model
	prog    progress.Model
	log     []string
	width   int
	done    bool
	total   int
}

// NewBenchModel returns a model that consumes events until the channel
// closes, tracking progress against total iterations.
func NewBenchModel(title string, total int, events <-chan BenchEvent) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	return &BenchModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		width:   80,
		total:   total,
	}
}

func (m *BenchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *BenchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		ev := BenchEvent(msg)
		cmd := m.applyEvent(ev)
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *BenchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString(truncate(line, m.width-2))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *BenchModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *BenchModel) applyEvent(ev BenchEvent) tea.Cmd {
	if ev.Total > 0 {
		m.total = ev.Total
	}
	mark := " "
	if ev.Collected {
		mark = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render("*")
	}
	line := fmt.Sprintf("%s iter %6d  allocated %10d B  next gc %10d B", mark, ev.Iteration, ev.BytesAllocated, ev.NextGC)
	m.log = append(m.log, line)
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}

	if m.total <= 0 {
		return nil
	}
	pct := float64(ev.Iteration) / float64(m.total)
	if pct > 1.0 {
		pct = 1.0
	}
	return m.prog.SetPercent(pct)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
