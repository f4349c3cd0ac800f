package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"visualtodo/internal/service"
)

// Card geometry.
const (
	CardWidth   = 30
	CardColumns = 2
	doneMark    = "✓ done"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(CardWidth)

	selectedCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("39"))

	completeCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("42"))

	nameStyle  = lipgloss.NewStyle().Bold(true)
	urlStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(1, 2)
)

// RenderCard renders one task card: name, image URL and the completion overlay.
func RenderCard(task service.Task, selected bool) string {
	inner := CardWidth - 2
	lines := []string{
		nameStyle.Render(truncate(normalizeName(task.Name), inner)),
		urlStyle.Render(truncate(task.ImageURL, inner)),
	}
	if task.Complete {
		lines = append(lines, doneStyle.Render(doneMark))
	} else {
		lines = append(lines, "")
	}

	style := cardStyle
	switch {
	case selected:
		style = selectedCardStyle
	case task.Complete:
		style = completeCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

// RenderGrid lays tasks out in rows of CardColumns cards.
// selected is the index of the highlighted card, or -1 for none.
func RenderGrid(tasks []service.Task, selected int) string {
	if len(tasks) == 0 {
		return emptyStyle.Render(EmptyBoard)
	}

	var rows []string
	for start := 0; start < len(tasks); start += CardColumns {
		end := start + CardColumns
		if end > len(tasks) {
			end = len(tasks)
		}
		cards := make([]string, 0, CardColumns)
		for i := start; i < end; i++ {
			cards = append(cards, RenderCard(tasks[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// truncate shortens s to at most n display cells, ending with an ellipsis.
func truncate(s string, n int) string {
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
