// Package tui hosts the console session in a terminal. It plays the part of
// the page around the console: it renders snapshots, animates new lines and
// unlocks the feature list when the session reports completion.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/comigor/lifeloop/internal/clock"
	"github.com/comigor/lifeloop/internal/console"
	"github.com/comigor/lifeloop/internal/logger"
	"github.com/comigor/lifeloop/internal/resolver"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rows taken by header, input, quick commands and borders
	chromeHeight = 9
)

// Options configures the terminal host.
type Options struct {
	SystemRate time.Duration
	OutputRate time.Duration
	Clock      clock.Clock
}

// Model is the Bubble Tea model for the console screen.
type Model struct {
	session *console.Session
	bridge  *bridge
	reveals *reveals

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles

	snap      console.Snapshot
	quickIdx  int
	completed bool
	width     int
	height    int
}

// New builds the screen and opens a fresh console session behind it.
func New(res *resolver.Resolver, cfg console.Config, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	b := newBridge()
	session := console.New(res, cfg,
		console.WithClock(opts.Clock),
		console.WithOnComplete(b.onComplete),
		console.WithOnChange(b.onChange),
	)

	ti := textinput.New()
	ti.Placeholder = "Ask about your future..."
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		session:  session,
		bridge:   b,
		reveals:  newReveals(opts.Clock, opts.SystemRate, opts.OutputRate, b.poke),
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		spinner:  sp,
		styles:   defaultStyles(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.spinner.Style = m.styles.busy
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.bridge.wait())
}

// Close tears down the session and every running animation.
func (m Model) Close() {
	m.session.Close()
	m.reveals.stop()
}

// Completed reports whether the session has signalled completion.
func (m Model) Completed() bool { return m.completed }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		m.input.Width = max(msg.Width-6, 10)
		m.render()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			m.session.Submit(m.input.Value())
			m.input.SetValue(m.session.Snapshot().PendingInput)
			m.refresh()
			return m, nil
		case tea.KeyTab:
			m.fillNextQuickCommand()
			m.refresh()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.snap.PendingInput {
			m.session.SetPendingInput(m.input.Value())
		}
		m.refresh()
		return m, cmd

	case refreshMsg:
		m.refresh()
		return m, m.bridge.wait()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.snap.IsProcessing {
			m.render()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) fillNextQuickCommand() {
	cmds := m.session.QuickCommands()
	if len(cmds) == 0 {
		return
	}
	q := cmds[m.quickIdx%len(cmds)]
	m.quickIdx++
	if m.session.FillQuickCommand(q) {
		m.input.SetValue(q)
		m.input.CursorEnd()
	}
}

// refresh pulls the latest snapshot, starts animations for new lines and
// reacts to completion.
func (m *Model) refresh() {
	m.snap = m.session.Snapshot()
	m.reveals.sync(m.snap.Log)
	if !m.completed && m.bridge.completed.Load() {
		m.completed = true
		logger.L.Info("tui: console complete, features unlocked")
	}
	m.render()
}

func (m *Model) render() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m Model) transcript() string {
	width := max(m.viewport.Width-4, 20)
	lines := make([]string, 0, len(m.snap.Log)+1)
	for _, msg := range m.snap.Log {
		text := m.reveals.visible(msg)
		switch msg.Kind {
		case console.KindInput:
			lines = append(lines, m.styles.prompt.Render("> ")+m.styles.input.Render(text))
		case console.KindOutput:
			lines = append(lines, m.styles.output.Width(width).Render(text))
		default:
			lines = append(lines, m.styles.system.Width(width).Render(text))
		}
	}
	if m.snap.IsProcessing {
		lines = append(lines, m.spinner.View()+m.styles.busy.Render(" AI agents processing..."))
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("● ● ●  LIFELOOP_TERMINAL"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.prompt.Render("> "))
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	b.WriteString(m.styles.hint.Render("Quick Commands (tab):"))
	b.WriteString("\n")
	cmds := m.session.QuickCommands()
	rendered := make([]string, len(cmds))
	for i, c := range cmds {
		rendered[i] = m.styles.command.Render(c)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))

	if m.completed {
		b.WriteString("\n\n")
		b.WriteString(m.featuresView())
	}
	return m.styles.frame.Render(b.String())
}

func (m Model) featuresView() string {
	var b strings.Builder
	b.WriteString(m.styles.header.Render("Simulation modules unlocked"))
	for _, f := range features {
		b.WriteString("\n")
		b.WriteString(m.styles.feature.Render(f.Title))
		b.WriteString(m.styles.hint.Render("  " + f.Subtitle))
	}
	return b.String()
}
