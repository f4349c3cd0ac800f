// Package ui provides the interactive board.
// The bubbletea Update loop is the only place the board is mutated;
// lookups run as commands and report back with lookupDoneMsg.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"visualtodo/internal/board"
	"visualtodo/internal/logging"
	"visualtodo/internal/output"
	"visualtodo/internal/service"
)

type focus int

const (
	focusInput focus = iota
	focusGrid
)

// lookupDoneMsg carries a finished lookup back onto the Update loop.
type lookupDoneMsg struct {
	query  string
	result service.ImageResult
	err    error
}

// Model is the bubbletea model for the board screen.
type Model struct {
	ctx      context.Context
	board    *board.Board
	finder   service.ImageFinder
	logger   *log.Logger
	input    textinput.Model
	focus    focus
	selected int
	inflight int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inputStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(output.CardWidth*output.CardColumns - 2)
)

// NewModel creates a model. ctx bounds every lookup the model starts.
// The board's pending input seeds the text field.
func NewModel(ctx context.Context, b *board.Board, finder service.ImageFinder, logger *log.Logger) *Model {
	if b == nil {
		b = board.New(nil, logger)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = promptStyle
	ti.Placeholder = "Enter a todo"
	ti.PlaceholderStyle = dimStyle
	ti.Width = output.CardWidth*output.CardColumns - 8
	ti.SetValue(b.Input())
	ti.Focus()

	return &Model{
		ctx:      ctx,
		board:    b,
		finder:   finder,
		logger:   logger,
		input:    ti,
		selected: -1,
	}
}

// Board returns the board the model renders.
func (m *Model) Board() *board.Board { return m.board }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case lookupDoneMsg:
		m.inflight--
		m.board.Resolve(msg.query, msg.result, msg.err)
		if m.input.Value() != m.board.Input() {
			m.input.SetValue(m.board.Input())
		}
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		return m, m.switchFocus()
	}

	if m.focus == focusGrid {
		return m.handleGridKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.board.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.board.Store().Len()
	switch msg.Type {
	case tea.KeyLeft:
		m.moveSelection(-1, n)
	case tea.KeyRight:
		m.moveSelection(1, n)
	case tea.KeyUp:
		m.moveSelection(-output.CardColumns, n)
	case tea.KeyDown:
		m.moveSelection(output.CardColumns, n)
	case tea.KeySpace, tea.KeyEnter:
		m.board.ToggleAt(m.selected)
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusInput && m.board.Store().Len() > 0 {
		m.focus = focusGrid
		m.input.Blur()
		if m.selected < 0 {
			m.selected = 0
		}
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) moveSelection(delta, n int) {
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
}

// submit starts one lookup for the pending input.
// The input stays in place until the lookup succeeds.
func (m *Model) submit() tea.Cmd {
	query := m.board.Input()
	m.inflight++
	m.logger.Debug("lookup dispatched", "query", query)
	return lookupCmd(m.ctx, m.finder, query)
}

func lookupCmd(ctx context.Context, finder service.ImageFinder, query string) tea.Cmd {
	return func() tea.Msg {
		res, err := finder.Lookup(ctx, query)
		return lookupDoneMsg{query: query, result: res, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Visual Todo"))
	b.WriteString("\n\n")

	selected := -1
	if m.focus == focusGrid {
		selected = m.selected
	}
	b.WriteString(output.RenderGrid(m.board.Tasks(), selected))
	b.WriteString("\n\n")

	if m.inflight > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("looking up %d…", m.inflight)))
		b.WriteString("\n")
	}

	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n")

	b.WriteString(dimStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) helpLine() string {
	if m.focus == focusGrid {
		return "arrows: move • space: toggle • tab: input • q/esc: quit"
	}
	return "enter: add • tab: cards • esc: quit"
}
