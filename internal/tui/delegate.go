package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/todobrowser/internal/model"
	"github.com/idilsaglam/todobrowser/internal/ui"
)

// todoItem adapts model.Todo to bubbles/list.Item.
type todoItem struct {
	model.Todo
}

func (i todoItem) FilterValue() string { return i.Title }

// todoDelegate renders one line per todo: position, title, status suffix.
type todoDelegate struct {
	theme ui.Theme
}

func (d todoDelegate) Height() int                               { return 1 }
func (d todoDelegate) Spacing() int                              { return 0 }
func (d todoDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Accent.Render("> ")
	}
	num := d.theme.Muted.Render(fmt.Sprintf("%3d.", index+1))
	fmt.Fprintf(w, "%s%s %s%s", prefix, num, it.Title, d.theme.Status(it.Completed, it.Suffix()))
}

func toItems(todos []model.Todo) []list.Item {
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoItem{Todo: t})
	}
	return items
}
