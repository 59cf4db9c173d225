// Package editor is the interactive sticky note editor. It is both the input
// source and a presentation sink for the note engine.
package editor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/stickynote/pkg/contrast"
	"tableflip.dev/stickynote/pkg/engine"
	"tableflip.dev/stickynote/pkg/note"
	"tableflip.dev/stickynote/pkg/printers"
	"tableflip.dev/stickynote/pkg/tracker"
	"tableflip.dev/stickynote/pkg/tui/palette"
	"tableflip.dev/stickynote/pkg/tui/theme"
)

const pulseDuration = 600 * time.Millisecond

// Options configure the editor.
type Options struct {
	Gateway   engine.Gateway
	Default   note.Record
	MaxLength int
	Logger    *slog.Logger
	Tracker   tracker.Engine
}

type keyMap struct {
	Save      key.Binding
	NextColor key.Binding
	PrevColor key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "update")),
		NextColor: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next colour")),
		PrevColor: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev colour")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

type statusMsg tracker.Status

type pulseDoneMsg struct{ seq int }

// Model renders the note card, the text input and the colour picker.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	engine  *engine.Engine
	tracker tracker.Engine
	state   engine.State

	input   textinput.Model
	palette *palette.Palette
	keys    keyMap
	theme   theme.Theme

	// values pushed by the engine
	view engine.Presentation

	status   tracker.Status
	pulse    bool
	pulseSeq int

	width  int
	height int
}

// New builds the editor and runs startup reconciliation. The tracker runs
// under a context that ends with Close.
func New(ctx context.Context, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	def := opts.Default
	if def == (note.Record{}) {
		def = note.Default
	}

	in := textinput.New()
	in.Placeholder = "Write a note…"
	in.Prompt = "› "
	in.Focus()

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		input:   in,
		palette: palette.New(def.Color),
		keys:    defaultKeys(),
		theme:   theme.Default(),
		status:  tracker.Starting(),
	}
	if tracker.Active(opts.Tracker) {
		m.tracker = opts.Tracker
	} else {
		m.status = tracker.Status{Phase: tracker.Ready}
	}
	m.engine = engine.New(engine.Options{
		Gateway:   opts.Gateway,
		Sink:      m,
		Default:   def,
		MaxLength: opts.MaxLength,
		Logger:    opts.Logger,
	})
	m.state = m.engine.Start()
	m.syncInput()
	m.SetSize(80, 24)
	return m
}

// Run launches the editor in the alternate screen. The tracker is stopped
// when the editor exits.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Close stops the tracker. It is safe to call more than once.
func (m *Model) Close() {
	m.cancel()
}

// State returns the last reconciled state.
func (m *Model) State() engine.State {
	return m.state
}

// Status returns the tracker status shown in the loading line.
func (m *Model) Status() tracker.Status {
	return m.status
}

// Value is the current text in the input.
func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) SetDisplayText(s string)       { m.view.DisplayText = s }
func (m *Model) SetTextColor(s string)         { m.view.TextColor = s }
func (m *Model) SetBackgroundColor(s string)   { m.view.BackgroundColor = s }
func (m *Model) SetCharCount(current, max int) { m.view.CharCount, m.view.MaxLength = current, max }
func (m *Model) EnsureColorOption(s string)    { m.palette.Ensure(s) }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.tracker == nil {
		return nil
	}
	return m.startTracker()
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case statusMsg:
		return m, m.handleStatus(tracker.Status(msg))
	case pulseDoneMsg:
		if msg.seq == m.pulseSeq {
			m.pulse = false
		}
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, m.updateInput(msg)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Save):
		m.reconcile()
		return nil
	case key.Matches(msg, m.keys.NextColor):
		m.palette.Move(1)
		m.reconcile()
		return m.startPulse()
	case key.Matches(msg, m.keys.PrevColor):
		m.palette.Move(-1)
		m.reconcile()
		return m.startPulse()
	}
	return m.updateInput(msg)
}

// updateInput forwards msg to the text input. Typing and pasting both end up
// here; any change to the value is reconciled.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}
	m.reconcile()
	return tea.Batch(cmd, m.startPulse())
}

// reconcile sends the form values to the engine and corrects the input when
// the engine clamped the text.
func (m *Model) reconcile() {
	m.state = m.engine.Reconcile(note.Input(m.input.Value(), m.palette.Selected().Color))
	m.syncInput()
}

func (m *Model) syncInput() {
	if m.input.Value() != m.state.Record.Text {
		m.input.SetValue(m.state.Record.Text)
	}
}

func (m *Model) startPulse() tea.Cmd {
	m.pulse = true
	m.pulseSeq++
	seq := m.pulseSeq
	return tea.Tick(pulseDuration, func(time.Time) tea.Msg {
		return pulseDoneMsg{seq: seq}
	})
}

func (m *Model) startTracker() tea.Cmd {
	ctx, eng := m.ctx, m.tracker
	return func() tea.Msg {
		return statusMsg(tracker.StartStatus(ctx, eng))
	}
}

func (m *Model) waitTracker() tea.Cmd {
	ctx, eng := m.ctx, m.tracker
	return func() tea.Msg {
		st, ok := tracker.WaitError(ctx, eng)
		if !ok {
			return nil
		}
		return statusMsg(st)
	}
}

func (m *Model) handleStatus(st tracker.Status) tea.Cmd {
	m.status = st
	switch {
	case st.Phase == tracker.Ready:
		return m.waitTracker()
	case st.Phase == tracker.Failed && st.Message == tracker.MsgEngineError:
		return m.waitTracker()
	}
	return nil
}

// SetSize configures the editor dimensions.
func (m *Model) SetSize(width, height int) {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	m.width = width
	m.height = height
	inputWidth := m.contentWidth() - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.SetWidth(inputWidth)
}

func (m *Model) contentWidth() int {
	w := m.width - 8
	if w > 60 {
		w = 60
	}
	if w < 16 {
		w = 16
	}
	return w
}

// View renders the editor.
func (m *Model) View() string {
	t := m.theme
	width := m.contentWidth()

	lines := []string{t.Panel.Title.Render("Sticky note")}
	if m.status.Visible() {
		style := t.Status.Loading
		if m.status.Phase == tracker.Failed {
			style = t.Status.Error
		}
		lines = append(lines, style.Render(m.status.Message))
	}
	lines = append(lines,
		"",
		printers.RenderCard(m.view, width),
		"",
		m.input.View(),
		m.renderCounter(),
		"",
		t.Panel.Label.Render("Colour"),
		m.renderPalette(),
		"",
		t.Footer.Help.Render(m.helpLine()),
	)

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return t.Panel.Frame.Render(body)
}

func (m *Model) renderCounter() string {
	counter := m.theme.Footer.Counter.Render(printers.Counter(m.view.CharCount, m.view.MaxLength))
	if m.pulse {
		counter += " " + m.theme.Footer.Pulse.Render("● saved")
	}
	return counter
}

func (m *Model) renderPalette() string {
	opts := m.palette.Options()
	sel := m.palette.Selected()
	swatch := "   "
	if _, ok := contrast.Luminance(sel.Color); ok {
		swatch = lipgloss.NewStyle().Background(lipgloss.Color("#" + strings.TrimPrefix(sel.Color, "#"))).Render(swatch)
	}
	label := m.theme.Palette.Selected.Render(sel.Label)
	pos := m.theme.Palette.Option.Render(fmt.Sprintf("(%d/%d)", m.palette.Index()+1, len(opts)))
	return fmt.Sprintf("%s ‹ %s › %s", swatch, label, pos)
}

func (m *Model) helpLine() string {
	bindings := []key.Binding{m.keys.Save, m.keys.NextColor, m.keys.PrevColor, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
