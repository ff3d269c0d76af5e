package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/samuelcardenasg23/book-play/internal/book"
)

// StatusStyle is how a status is shown in the terminal.
type StatusStyle struct {
	Label string
	Color lipgloss.Color
}

// StatusStyles maps every status to its label and color.
var StatusStyles = map[book.Status]StatusStyle{
	book.StatusForPurchase: {Label: "For Purchase", Color: lipgloss.Color("161")},
	book.StatusOwned:       {Label: "Owned", Color: lipgloss.Color("39")},
	book.StatusReading:     {Label: "Reading", Color: lipgloss.Color("214")},
	book.StatusRead:        {Label: "Read", Color: lipgloss.Color("70")},
}

// RenderStatus renders a status as a colored badge.
func RenderStatus(status book.Status) string {
	style, ok := StatusStyles[status]
	if !ok {
		return string(status)
	}
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(style.Color).
		Foreground(lipgloss.Color("230")).
		Render(style.Label)
}

type itemStyles struct {
	normal    lipgloss.Style
	selected  lipgloss.Style
	titleText lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)
