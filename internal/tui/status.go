package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/samuelcardenasg23/book-play/internal/book"
	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
)

type statusItem struct {
	status book.Status
}

func (i statusItem) Title() string       { return StatusStyles[i.status].Label }
func (i statusItem) Description() string { return string(i.status) }
func (i statusItem) FilterValue() string { return StatusStyles[i.status].Label }

type statusDelegate struct{}

func (statusDelegate) Height() int                         { return 1 }
func (statusDelegate) Spacing() int                        { return 0 }
func (statusDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (statusDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	si, ok := item.(statusItem)
	if !ok {
		return
	}
	cursor := "  "
	if idx == m.Index() {
		cursor = "> "
	}
	_, _ = fmt.Fprint(w, cursor+RenderStatus(si.status))
}

type statusModel struct {
	list   list.Model
	title  string
	action SelectionAction
	chosen book.Status
}

func newStatusModel(title string, initial book.Status) *statusModel {
	items := make([]list.Item, len(book.AllStatuses))
	selected := 0
	for i, s := range book.AllStatuses {
		items[i] = statusItem{status: s}
		if s == initial {
			selected = i
		}
	}

	l := list.New(items, statusDelegate{}, 30, len(items))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Select(selected)

	return &statusModel{list: l, title: title, chosen: initial}
}

func (m *statusModel) Init() tea.Cmd { return nil }

func (m *statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(statusItem); ok {
				m.chosen = item.status
				m.action = ActionSelected
				return m, tea.Quit
			}
		case "esc":
			m.action = ActionSkipped
			return m, tea.Quit
		case "ctrl+c", "q":
			m.action = ActionStopped
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *statusModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(m.title),
		m.list.View(),
		helpStyle.Render("Up/Down navigate | Enter choose | Esc keep current | q stop"),
	)
}

// SelectStatus asks for a reading status. Esc keeps initial.
func SelectStatus(title string, initial book.Status) (book.Status, error) {
	finalModel, err := runProgram(newStatusModel(title, initial))
	if err != nil {
		return initial, err
	}

	typed, ok := finalModel.(*statusModel)
	if !ok {
		return initial, fmt.Errorf("unexpected program result")
	}
	if typed.action == ActionStopped {
		return initial, bperrors.NewStopProcessingError("status selection stopped by user")
	}
	return typed.chosen, nil
}
