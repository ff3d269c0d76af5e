// Package tui provides interactive terminal UI components.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bperrors "github.com/samuelcardenasg23/book-play/internal/errors"
	"github.com/samuelcardenasg23/book-play/internal/search"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20

	// DefaultDebounce is the pause after the last keystroke before a search runs.
	DefaultDebounce = 300 * time.Millisecond
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
	// ActionStopped indicates the user stopped processing entirely.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *search.Candidate
}

// CandidateSearcher produces candidates for a query.
type CandidateSearcher interface {
	Search(ctx context.Context, query string) []search.Candidate
}

type candidateItem struct {
	search.Candidate
}

func (i candidateItem) Title() string       { return i.Label }
func (i candidateItem) Description() string { return i.ID }
func (i candidateItem) FilterValue() string { return i.Label }

type candidateDelegate struct {
	styles itemStyles
}

func (d candidateDelegate) Height() int                         { return 3 }
func (d candidateDelegate) Spacing() int                        { return 0 }
func (d candidateDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d candidateDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	candidate, ok := item.(candidateItem)
	if !ok {
		return
	}

	line := d.styles.titleText.Render(truncate(candidate.Label, m.Width()-4))

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(line))
}

type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// debounceMsg fires when the input has been idle. Only the tick carrying
// the latest tag starts a search.
type debounceMsg struct {
	tag   int
	query string
}

type resultsMsg struct {
	ticket     search.Ticket
	candidates []search.Candidate
}

type searchModel struct {
	ctx      context.Context
	searcher CandidateSearcher
	session  *search.Session
	debounce time.Duration

	input textinput.Model
	list  list.Model
	focus focusArea

	tag       int
	searching bool
	searched  bool
	result    SelectionResult
}

func newSearchModel(ctx context.Context, searcher CandidateSearcher, initialQuery string) *searchModel {
	input := textinput.New()
	input.Placeholder = "Title, author or ISBN"
	input.Prompt = "Search: "
	input.CharLimit = 256
	input.SetValue(initialQuery)
	input.Focus()

	l := list.New(nil, candidateDelegate{styles: newItemStyles()}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &searchModel{
		ctx:      ctx,
		searcher: searcher,
		session:  search.NewSession(),
		debounce: DefaultDebounce,
		input:    input,
		list:     l,
		result:   SelectionResult{Action: ActionNone},
	}
}

func (m *searchModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if strings.TrimSpace(m.input.Value()) != "" {
		cmds = append(cmds, m.startSearch(m.input.Value()))
	}
	return tea.Batch(cmds...)
}

func (m *searchModel) scheduleSearch() tea.Cmd {
	m.tag++
	tag, query := m.tag, m.input.Value()
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{tag: tag, query: query}
	})
}

func (m *searchModel) startSearch(query string) tea.Cmd {
	ticket := m.session.Begin(query)
	m.searching = true
	searcher, ctx := m.searcher, m.ctx
	return func() tea.Msg {
		return resultsMsg{ticket: ticket, candidates: searcher.Search(ctx, ticket.Query)}
	}
}

func (m *searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.tag != m.tag {
			return m, nil
		}
		return m, m.startSearch(msg.query)

	case resultsMsg:
		if !m.session.Apply(msg.ticket, msg.candidates) {
			return m, nil
		}
		m.searching = false
		m.searched = true
		candidates := m.session.Candidates()
		items := make([]list.Item, len(candidates))
		for i, c := range candidates {
			items[i] = candidateItem{Candidate: c}
		}
		return m, m.list.SetItems(items)

	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-8, 5)
		m.list.SetSize(width, height)
		m.input.Width = width - len(m.input.Prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		case "esc":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		case "enter":
			if selected, ok := m.list.SelectedItem().(candidateItem); ok {
				candidate := selected.Candidate
				m.result = SelectionResult{Action: ActionSelected, Selection: &candidate}
				return m, tea.Quit
			}
			return m, nil
		case "tab":
			m.toggleFocus()
			return m, nil
		case "q":
			if m.focus == focusList {
				m.result = SelectionResult{Action: ActionStopped}
				return m, tea.Quit
			}
		case "down":
			if m.focus == focusInput && len(m.list.Items()) > 0 {
				m.toggleFocus()
				return m, nil
			}
		}
	}

	if m.focus == focusInput {
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			return m, tea.Batch(cmd, m.scheduleSearch())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *searchModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *searchModel) statusLine() string {
	switch {
	case m.searching:
		return "Searching..."
	case !m.searched:
		return "Start typing to search"
	case len(m.list.Items()) == 0:
		return fmt.Sprintf("No results for %q", m.session.Query())
	default:
		return fmt.Sprintf("%d results for %q", len(m.list.Items()), m.session.Query())
	}
}

func (m *searchModel) View() string {
	header := headerStyle.Render("Find a book")
	help := helpStyle.Render("Type to search | Tab/Down list | Enter select | Esc skip | q/Ctrl+C stop")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.input.View(),
		statusLineStyle.Render(m.statusLine()),
		m.list.View(),
		help,
	)
}

// SearchAndSelect runs the live search UI. Stopping returns a
// StopProcessingError alongside the result.
func SearchAndSelect(ctx context.Context, searcher CandidateSearcher, initialQuery string) (SelectionResult, error) {
	m := newSearchModel(ctx, searcher, initialQuery)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	typed, ok := finalModel.(*searchModel)
	if !ok {
		return SelectionResult{}, fmt.Errorf("unexpected program result")
	}
	if typed.result.Action == ActionStopped {
		return typed.result, bperrors.NewStopProcessingError("selection stopped by user")
	}
	return typed.result, nil
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if width <= 0 || len(runes) <= width {
		return value
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
