// Package tui is the interactive todo browser: a count field, a fetch on
// enter, and the sorted results underneath.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todobrowser/internal/logging"
	"github.com/idilsaglam/todobrowser/internal/model"
	"github.com/idilsaglam/todobrowser/internal/store/httpstore"
	"github.com/idilsaglam/todobrowser/internal/ui"
)

// Source fetches up to limit todos.
type Source interface {
	Fetch(ctx context.Context, limit int) ([]model.Todo, error)
}

// Options tune the browser. Zero values pick the defaults: classic theme,
// English collation, no logging.
type Options struct {
	Theme  ui.Theme
	Sorter model.Sorter
	Logger *log.Logger
}

// Static page text.
const (
	headerText  = "Todo List"
	promptText  = "Enter number of Todos below:"
	buttonText  = "Fetch Todos"
	resultsText = "Todos: "
)

// chromeLines is how many rows the header, form and help take.
const chromeLines = 11

type todosFetchedMsg struct {
	seq   int
	limit int
	todos []model.Todo
}

type fetchFailedMsg struct {
	seq   int
	limit int
	err   error
}

// Model is the browser state. The input text and the result set are
// independent: submitting never clears the field.
type Model struct {
	source Source
	sorter model.Sorter
	theme  ui.Theme
	logger *log.Logger

	input   textinput.Model
	results []model.Todo // raw, as last received
	list    list.Model
	help    help.Model
	keys    keyMap

	// seq numbers submissions; applied is the seq of the batch on screen.
	seq     int
	applied int

	width, height int
}

// initialTodos is what the page starts with. Nothing is fetched up front.
func initialTodos() []model.Todo {
	return []model.Todo{}
}

// New builds the browser around src.
func New(src Source, opts Options) Model {
	theme := opts.Theme
	if theme.Name == "" {
		theme = ui.ThemeByName("classic")
	}
	sorter := opts.Sorter
	if sorter.Lang.IsRoot() {
		sorter = model.NewSorter("en")
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "1-100"
	ti.CharLimit = 8
	ti.Width = 10
	ti.Focus()

	l := list.New(nil, todoDelegate{theme: theme}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = theme.Muted

	m := Model{
		source:  src,
		sorter:  sorter,
		theme:   theme,
		logger:  logger,
		input:   ti,
		list:    l,
		help:    help.New(),
		keys:    defaultKeys(),
		results: initialTodos(),
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

// Run starts the browser full screen and blocks until the user quits.
func Run(src Source, opts Options) error {
	p := tea.NewProgram(New(src, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Input returns the current text of the count field.
func (m Model) Input() string { return m.input.Value() }

// Results returns the result set as received, unsorted.
func (m Model) Results() []model.Todo { return m.results }

// Sorted returns the result set in display order.
func (m Model) Sorted() []model.Todo { return m.sorter.Sort(m.results) }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PgUp, m.keys.PgDown, m.keys.Home, m.keys.End):
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

	case todosFetchedMsg:
		if msg.seq < m.applied {
			// Overlapping requests apply in arrival order.
			m.logger.Warn("older request resolved last", "seq", msg.seq, "shown", m.applied)
		}
		m.logger.Info("todos fetched", "seq", msg.seq, "limit", msg.limit, "count", len(msg.todos))
		m.results = msg.todos
		m.applied = msg.seq
		m.list.SetItems(toItems(m.Sorted()))
		m.list.Select(0)
		return m, nil

	case fetchFailedMsg:
		m.logger.Error("fetch todos failed",
			"seq", msg.seq,
			"limit", msg.limit,
			"kind", httpstore.Classify(msg.err),
			"err", msg.err,
		)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit fetches when the field holds a count in range and does nothing
// otherwise.
func (m Model) submit() (Model, tea.Cmd) {
	n, ok := model.ParseCount(m.input.Value())
	if !ok {
		m.logger.Debug("ignoring submit", "input", m.input.Value())
		return m, nil
	}
	m.seq++
	m.logger.Debug("submitting", "seq", m.seq, "limit", n)
	return m, fetchCmd(m.source, m.seq, n)
}

func fetchCmd(src Source, seq, limit int) tea.Cmd {
	return func() tea.Msg {
		todos, err := src.Fetch(context.Background(), limit)
		if err != nil {
			return fetchFailedMsg{seq: seq, limit: limit, err: err}
		}
		return todosFetchedMsg{seq: seq, limit: limit, todos: todos}
	}
}

func (m *Model) resize() {
	h := m.height - chromeLines
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width
}

func (m Model) View() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render(headerText))
	b.WriteString("\n")
	b.WriteString(promptText)
	b.WriteString("\n")
	b.WriteString(t.Frame([]string{
		m.input.View(),
		t.Accent.Render("[ " + buttonText + " ]") + t.Muted.Render("  enter"),
	}))
	b.WriteString("\n\n")
	b.WriteString(t.Title.Render(resultsText))
	b.WriteString("\n")

	if len(m.results) > 0 {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
