package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gosuda/govlang/ast"
	gruntime "github.com/gosuda/govlang/runtime"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	diagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	debugStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
)

// runStepper drives the program statement by statement inside a terminal UI.
// The interpreter runs in its own goroutine and blocks on the UI between
// statements and during READ prompts.
func runStepper(cfg stepperConfig) error {
	p := tea.NewProgram(newStepModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stepper: %w", err)
	}
	return nil
}

type stepModel struct {
	cfg      stepperConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	lines    []string
	status   string
	events   <-chan interpEvent
	resume   chan struct{}
	resp     chan string
	reading  bool
	done     bool
	err      error
}

func newStepModel(cfg stepperConfig) stepModel {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 4096
	return stepModel{
		cfg:      cfg,
		viewport: vp,
		input:    ti,
		status:   "starting",
	}
}

type eventMsg struct {
	ev interpEvent
}

func (m stepModel) Init() tea.Cmd {
	return startInterp(m.cfg)
}

func startInterp(cfg stepperConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan interpEvent, 256)
		go runInterp(cfg, events)
		return interpStartedMsg{events: events}
	}
}

func waitEvent(events <-chan interpEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// runInterp executes the program, forwarding output, diagnostics, step
// pauses, and READ prompts to the UI through the event channel.
func runInterp(cfg stepperConfig, events chan interpEvent) {
	in := gruntime.New()

	if cfg.loadEnv != "" {
		if err := loadSnapshot(in, cfg.loadEnv); err != nil {
			events <- doneEvent{err: err}
			close(events)
			return
		}
	}

	in.SetOutputHook(func(line string) {
		events <- outputEvent{line: line}
	})
	in.SetDiag(diagWriter{events: events})
	in.SetInputProvider(func() (string, error) {
		resp := make(chan string, 1)
		events <- promptEvent{resp: resp}
		return <-resp, nil
	})
	in.SetTracer(&stepTracer{events: events, level: cfg.level})

	in.Run(cfg.prog)

	var err error
	if cfg.dumpEnv != "" {
		err = dumpSnapshot(in, cfg.dumpEnv)
	}
	events <- doneEvent{err: err}
	close(events)
}

// stepTracer blocks the interpreter before every top-level statement until
// the UI resumes it.
type stepTracer struct {
	events chan interpEvent
	level  int
}

func (t *stepTracer) BeforeStatement(index int, stmt ast.Statement, env *gruntime.Env) {
	ev := stepEvent{
		index:  index,
		desc:   describe(stmt),
		resume: make(chan struct{}),
	}
	if t.level >= 2 {
		ev.vars = envLines(env)
	}
	t.events <- ev
	<-ev.resume
}

func (t *stepTracer) AfterStatement(index int, stmt ast.Statement, env *gruntime.Env) {}

// diagWriter forwards diagnostic lines to the UI.
type diagWriter struct {
	events chan interpEvent
}

func (w diagWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		w.events <- diagEvent{line: line}
	}
	return len(p), nil
}

func (m stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 2
		if m.viewport.Height < 1 {
			m.viewport.Height = 1
		}
		m.ready = true
		m.refresh()
		return m, nil

	case interpStartedMsg:
		m.events = msg.events
		m.status = "running"
		return m, waitEvent(m.events)

	case eventMsg:
		return m.handleEvent(msg.ev)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m stepModel) handleEvent(ev interpEvent) (tea.Model, tea.Cmd) {
	switch ev := ev.(type) {
	case outputEvent:
		m.appendLine(ev.line)
		return m, waitEvent(m.events)

	case diagEvent:
		m.appendLine(diagStyle.Render(ev.line))
		return m, waitEvent(m.events)

	case stepEvent:
		m.resume = ev.resume
		for _, line := range ev.vars {
			m.appendLine(debugStyle.Render("  " + line))
		}
		m.status = fmt.Sprintf("paused before statement #%d: %s (space/enter steps, q quits)", ev.index+1, ev.desc)
		return m, nil

	case promptEvent:
		m.resp = ev.resp
		m.reading = true
		m.input.SetValue("")
		m.input.Focus()
		m.status = "program is reading a line: type and press enter"
		return m, textinput.Blink

	case doneEvent:
		m.done = true
		m.err = ev.err
		if ev.err != nil {
			m.status = "failed: " + ev.err.Error() + " (q quits)"
		} else {
			m.status = "program finished (q quits)"
		}
		return m, nil
	}
	return m, waitEvent(m.events)
}

func (m stepModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.reading {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.reading = false
			m.input.Blur()
			m.resp <- m.input.Value()
			m.resp = nil
			m.status = "running"
			return m, waitEvent(m.events)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ", "enter":
		if m.resume != nil {
			resume := m.resume
			m.resume = nil
			m.status = "running"
			close(resume)
			return m, waitEvent(m.events)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *stepModel) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.refresh()
}

func (m *stepModel) refresh() {
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m stepModel) View() string {
	if !m.ready {
		return "starting..."
	}
	bottom := statusStyle.Render(m.status)
	if m.reading {
		bottom = m.input.View()
	}
	return m.viewport.View() + "\n" + bottom
}
