package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/James-HoneyBadger/Super-PILOT/runtime"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type model struct {
	cfg      appConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	events   <-chan tea.Msg
	pending  *pendingInput
	history  []string
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newModel(cfg appConfig) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 1024
	return model{
		cfg:      cfg,
		viewport: vp,
		input:    ti,
		status:   "starting",
	}
}

func startInterpreter(cfg appConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan tea.Msg, 256)
		go runInterpreter(cfg, events)
		return vmStartedMsg{events: events}
	}
}

func waitEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func (m model) Init() tea.Cmd {
	return startInterpreter(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		footer := 2
		if m.pending != nil {
			footer++
		}
		vh := msg.Height - footer
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitEvent(m.events)

	case vmOutputMsg:
		m.appendLine(msg.line)
		return m, waitEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{req: msg.req, resp: msg.resp}
		m.input.SetValue("")
		m.input.Focus()
		m.status = promptStatus(msg.req)
		return m, nil

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		if msg.err != nil {
			m.status = "failed"
			m.appendLine(errStyle.Render(msg.err.Error()))
		} else {
			m.status = "done (q to quit, r to rerun)"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.pending != nil {
				m.pending.resp <- ""
			}
			return m, tea.Quit
		case "enter":
			if m.pending != nil {
				m.pending.resp <- strings.TrimSpace(m.input.Value())
				m.pending = nil
				m.input.Blur()
				m.input.SetValue("")
				m.status = "running"
				return m, waitEvent(m.events)
			}
		}
		if m.pending != nil {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if !m.running {
				m.history = nil
				m.viewport.SetContent("")
				m.status = "restarting"
				return m, startInterpreter(m.cfg)
			}
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View()}
	if m.pending != nil {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	parts = append(parts, statusStyle.Render(m.status))
	return strings.Join(parts, "\n")
}

func (m *model) appendLine(line string) {
	m.history = append(m.history, line)
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func promptStatus(req runtime.InputRequest) string {
	kind := "text"
	if req.PreferNumeric {
		kind = "number"
	}
	return fmt.Sprintf("waiting for %s input (%s)", kind, req.Variable)
}
