package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colGap separates table columns.
const colGap = 2

// RenderTable renders an aligned table with a styled header and separator.
// Widths are measured on visible characters so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	return renderTable(headers, rows, -1)
}

// RenderTableCursor renders a table with the row at cursor highlighted.
func RenderTableCursor(headers []string, rows [][]string, cursor int) string {
	return renderTable(headers, rows, cursor)
}

func renderTable(headers []string, rows [][]string, cursor int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(prefix string, cells []string, style func(int, string) string) {
		b.WriteString(prefix)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style(i, cell))
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", max(widths[i]-lipgloss.Width(cell), 0)+colGap))
			}
		}
		b.WriteString("\n")
	}

	prefix := ""
	if cursor >= 0 {
		prefix = "  "
	}
	writeRow(prefix, headers, func(_ int, h string) string { return StyleHeader.Render(h) })

	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(prefix, seps, func(_ int, s string) string { return StyleDim.Render(s) })

	for r, row := range rows {
		p := prefix
		if r == cursor {
			p = StylePurple.Render("▸ ")
		}
		writeRow(p, row, func(_ int, c string) string { return c })
	}
	return b.String()
}
