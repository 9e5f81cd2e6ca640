package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/emberwood/engine"
)

// inputMode tracks what the engine is currently waiting on.
type inputMode int

const (
	modeIdle inputMode = iota // engine busy, input ignored
	modePrompt
	modeMenu
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed player input
}

// Model is the Bubble Tea model for the Emberwood TUI.
type Model struct {
	bridge *Bridge
	eng    *engine.Engine

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	mode        inputMode
	menuOptions []string

	width    int
	height   int
	ready    bool
	quitting bool
}

// requestMsg carries one engine UI request into the Update loop.
type requestMsg struct {
	req uiRequest
}

// New creates a TUI model over the given bridge. The engine pointer is
// only read while the engine goroutine is parked on the bridge, so the
// status bar can inspect state without a lock.
func New(b *Bridge, eng *engine.Engine) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		bridge:  b,
		eng:     eng,
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until the engine finishes
// or the player force-quits.
func Run(b *Bridge, eng *engine.Engine) error {
	m := New(b, eng)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init starts the request pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForRequest())
}

// waitForRequest blocks (in a Bubble Tea command goroutine) until the
// engine sends its next UI request.
func (m Model) waitForRequest() tea.Cmd {
	return func() tea.Msg {
		return requestMsg{req: <-m.bridge.requests}
	}
}

// Update handles messages (key presses, window resize, engine requests).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case requestMsg:
		return m.handleRequest(msg.req)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleRequest reacts to one engine UI call.
func (m Model) handleRequest(req uiRequest) (tea.Model, tea.Cmd) {
	switch req.kind {
	case reqDisplay:
		m.appendText(req.text)
		m.refreshViewport()
		return m, m.waitForRequest()

	case reqMenu:
		m.appendText(req.text)
		for i, opt := range req.options {
			m.rawLines = append(m.rawLines, rawLine{
				text: fmt.Sprintf("  %d) %s", i+1, opt),
				kind: kindMenuOption,
			})
		}
		m.mode = modeMenu
		m.menuOptions = req.options
		m.input.Prompt = "> "
		m.refreshViewport()
		return m, nil

	case reqPrompt:
		m.mode = modePrompt
		m.input.Prompt = req.text + " "
		m.refreshViewport()
		return m, nil

	case reqDone:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.mode == modeIdle {
		return m, nil
	}

	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	if m.mode == modeMenu {
		opt, ok := pickOption(input, m.menuOptions)
		if !ok {
			m.rawLines = append(m.rawLines, rawLine{
				text: fmt.Sprintf("Pick 1-%d.", len(m.menuOptions)),
				kind: kindSystem,
			})
			m.refreshViewport()
			return m, nil
		}
		input = opt
	}

	m.rawLines = append(m.rawLines, rawLine{text: m.input.Prompt + input, isInput: true})
	m.rawLines = append(m.rawLines, rawLine{})
	m.mode = modeIdle
	m.menuOptions = nil
	m.refreshViewport()

	return m, m.reply(input)
}

// reply delivers the answer to the parked engine, then resumes the pump.
func (m Model) reply(value string) tea.Cmd {
	return func() tea.Msg {
		m.bridge.replies <- value
		return requestMsg{req: <-m.bridge.requests}
	}
}

// pickOption resolves player input against a menu: a 1-based number, an
// exact option, or a unique case-insensitive prefix.
func pickOption(input string, options []string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	lower := strings.ToLower(input)
	match := ""
	for _, opt := range options {
		optLower := strings.ToLower(opt)
		if optLower == lower {
			return opt, true
		}
		if strings.HasPrefix(optLower, lower) {
			if match != "" {
				return "", false // ambiguous prefix
			}
			match = opt
		}
	}
	if match != "" {
		return match, true
	}
	return "", false
}

// appendText splits engine narration into classified raw lines.
func (m *Model) appendText(text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		rl := rawLine{text: line}
		if line != "" {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		if rl.isInput {
			styled = append(styled, stylePlayerInput.Render(wrapped))
		} else {
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
