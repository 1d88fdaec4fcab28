package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	AppName = "aromabench"
)

// KeyHint is one "key description" pair of the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Counts is the document summary shown on the right of the header.
type Counts struct {
	Fragrances int
	Patterns   int
	Completed  int
}

// IsTooSmall reports whether the terminal cannot fit the frame.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the operator to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("The window is %d x %d.\n\n%s needs at least %d x %d.",
		width, height, AppName, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// bar is the rounded card style of the header and footer.
func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// spread places center in the middle of width cells, with left and right
// pinned to the edges and at least one space between parts.
func spread(left, center, right string, width int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max((width-cw)/2-lw, 1)
	gapR := max(width-lw-gapL-cw-rw, 1)
	return left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right
}

// RenderHeader draws the app name, the breadcrumb and the document counts.
func RenderHeader(title string, c Counts, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + AppName)
	crumb := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	counts := lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("✿ %d", c.Fragrances)) +
		"   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("▤ %d/%d", c.Completed, c.Patterns))

	// 4 cells go to the border and its padding.
	return bar(width).Render(spread(name, crumb, counts, max(width-4, 0)))
}

// RenderFooter draws the key hints, wrapped to fit width. A non-empty
// status takes its own line above them.
func RenderFooter(hints []KeyHint, status string, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var lines []string
	if status != "" {
		lines = append(lines, "  "+theme.ErrorText.Render(status))
	}
	line := " "
	for _, h := range hints {
		part := "  " + keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if line != " " && lipgloss.Width(line+part) > width-4 {
			lines = append(lines, line)
			line = " "
		}
		line += part
	}
	lines = append(lines, line)
	return bar(width).Render(strings.Join(lines, "\n"))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Truncate shortens s to at most n cells, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// Window returns the [start, end) range of a list of n rows that keeps
// selected visible in height rows.
func Window(n, selected, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
