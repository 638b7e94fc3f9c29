// Package tui provides the Bubble Tea digit entry widget.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/pitype/internal/model"
	"github.com/verte-zerg/pitype/internal/session"
)

// ConfigMsg applies a reloaded configuration to a running widget.
type ConfigMsg struct {
	Config model.Config
}

// Model implements the Bubble Tea widget and the session display surface.
type Model struct {
	config  model.Config
	session *session.Session
	frames  *frameScheduler
	input   textarea.Model
	help    help.Model
	keys    keyMap

	width  int
	height int

	inputEnabled bool
	timerText    string
	status       string
	cues         map[session.Cue]bool
	showDigits   bool

	attemptID string
	cmds      []tea.Cmd
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle      = pendingStyle.Underline(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	timerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	successTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	errorTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	boxStyle         = lipgloss.NewStyle().
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	successBoxStyle = boxStyle.BorderForeground(lipgloss.Color("#52C41A"))
	failureBoxStyle = boxStyle.BorderForeground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs the widget for the given target digits.
func NewModel(cfg model.Config, target string) *Model {
	return newModel(cfg, target, time.Now)
}

func newModel(cfg model.Config, target string, now func() time.Time) *Model {
	m := &Model{
		config:     cfg,
		frames:     newFrameScheduler(cfg.FrameInterval(), now),
		input:      newInput(cfg.RowWidth, len(target)),
		help:       help.New(),
		keys:       defaultKeyMap(),
		cues:       map[session.Cue]bool{},
		showDigits: cfg.ShowDigits,
	}
	m.help.ShowAll = m.showDigits
	m.session = session.New(target, cfg.RowWidth, m, m.frames)
	m.session.Reset()
	m.attemptID = uuid.NewString()
	slog.Info("attempt ready", "attempt", m.attemptID, "digits", len(target))
	return m
}

func newInput(rowWidth, digits int) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "digits after 3."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	resizeInput(&ta, rowWidth, digits)
	return ta
}

func resizeInput(ta *textarea.Model, rowWidth, digits int) {
	width, rows := digits, 1
	if rowWidth > 0 && rowWidth < digits {
		width = rowWidth
		rows = (digits + rowWidth - 1) / rowWidth
	}
	ta.SetWidth(width + 1)
	ta.SetHeight(rows)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.cmds = append(m.cmds, textarea.Blink)
	return m.flush()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case frameMsg:
		m.frames.fire(msg.handle)
	case ConfigMsg:
		m.applyConfig(msg.Config)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		case key.Matches(msg, m.keys.Help):
			m.showDigits = !m.showDigits
			m.help.ShowAll = m.showDigits
		default:
			m.handleInputKey(msg)
		}
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.cmds = append(m.cmds, cmd)
	}
	return m, m.flush()
}

// View implements tea.Model.
func (m *Model) View() string {
	box := boxStyle
	switch {
	case m.cues[session.CueSuccess]:
		box = successBoxStyle
	case m.cues[session.CueFailure]:
		box = failureBoxStyle
	}

	sections := []string{
		titleStyle.Render("π = 3."),
		box.Render(m.input.View()),
		timerStyle.Render(m.timerText),
		m.renderStatus(),
	}
	if m.showDigits {
		sections = append(sections, m.renderDigits())
	}
	sections = append(sections, m.help.View(m.keys))
	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.cues[session.CueSuccess]:
		return successTextStyle.Render(m.status)
	case m.cues[session.CueFailure]:
		return errorTextStyle.Render(m.status)
	default:
		return m.status
	}
}

func (m *Model) renderDigits() string {
	target := []rune(m.session.Target())
	typed := []rune(m.session.Typed())
	cursorIndex := -1
	if m.inputEnabled && len(typed) < len(target) {
		cursorIndex = len(typed)
	}
	runes := buildStyledDigits(target, typed, cursorIndex)
	return layoutRows(runes, m.config.RowWidth)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) {
	if !m.inputEnabled {
		return
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.cmds = append(m.cmds, cmd)
	if m.input.Value() == before {
		return
	}
	prev := m.session.State()
	m.session.OnInputChanged(m.input.Value())
	m.logTransition(prev)
}

func (m *Model) reset() {
	prev := m.session.State()
	m.session.Reset()
	m.attemptID = uuid.NewString()
	slog.Info("attempt reset", "attempt", m.attemptID, "from", prev.String())
}

func (m *Model) applyConfig(cfg model.Config) {
	m.config = cfg
	m.frames.interval = cfg.FrameInterval()
	m.showDigits = cfg.ShowDigits
	m.help.ShowAll = m.showDigits
	resizeInput(&m.input, cfg.RowWidth, len(m.session.Target()))
	m.session.SetRowWidth(cfg.RowWidth)
	slog.Info("config reloaded", "row_width", cfg.RowWidth, "fps", cfg.FPS, "show_digits", cfg.ShowDigits)
}

func (m *Model) logTransition(prev session.State) {
	cur := m.session.State()
	if cur == prev {
		return
	}
	slog.Info("attempt transition",
		"attempt", m.attemptID,
		"from", prev.String(),
		"to", cur.String(),
		"elapsed", session.FormatElapsed(m.session.Elapsed()),
		"digits", len(m.session.Typed()),
	)
}

func (m *Model) flush() tea.Cmd {
	cmds := append(m.frames.commands(), m.cmds...)
	m.cmds = nil
	return tea.Batch(cmds...)
}

// SetInput implements session.Display.
func (m *Model) SetInput(text string) {
	m.input.SetValue(text)
}

// SetInputEnabled implements session.Display.
func (m *Model) SetInputEnabled(enabled bool) {
	m.inputEnabled = enabled
	if enabled {
		m.cmds = append(m.cmds, m.input.Focus())
		return
	}
	m.input.Blur()
}

// SetTimer implements session.Display.
func (m *Model) SetTimer(text string) {
	m.timerText = text
}

// SetStatus implements session.Display.
func (m *Model) SetStatus(text string) {
	m.status = text
}

// AddCue implements session.Display.
func (m *Model) AddCue(c session.Cue) {
	m.cues[c] = true
}

// RemoveCue implements session.Display.
func (m *Model) RemoveCue(c session.Cue) {
	delete(m.cues, c)
}

// Focus implements session.Display.
func (m *Model) Focus() {
	m.cmds = append(m.cmds, m.input.Focus())
}
