package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

// ProgressBar displays a horizontal bar of done out of total steps.
type ProgressBar struct {
	Label     string
	Done      int
	Total     int
	ShowCount bool
	Width     int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, done, total int, showCount bool, width int) ProgressBar {
	return ProgressBar{
		Label:     label,
		Done:      done,
		Total:     total,
		ShowCount: showCount,
		Width:     width,
	}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Done) / float64(p.Total)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	countWidth := 0
	if p.ShowCount {
		countWidth = len(fmt.Sprintf("  %d/%d", p.Total, p.Total))
	}

	barWidth := p.Width - labelWidth - countWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowCount {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d", p.Done, p.Total))
	}

	return result
}
