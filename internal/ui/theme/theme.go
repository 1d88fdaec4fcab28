package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: muted floral tones on a dark background.
var (
	Primary   = lipgloss.Color("#C084FC") // Lilac
	Secondary = lipgloss.Color("#F9A8D4") // Rose petal
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#4ADE80") // Leaf
	Warning   = lipgloss.Color("#FB923C") // Citrus
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#1C1917") // Stone
	BgCard    = lipgloss.Color("#292524") // Warm slate
	Border    = lipgloss.Color("#44403C") // Stone border
)

// ChoiceColors tints the four answer choices A-D.
var ChoiceColors = [4]color.Color{
	lipgloss.Color("#60A5FA"), // A
	lipgloss.Color("#4ADE80"), // B
	lipgloss.Color("#FBBF24"), // C
	lipgloss.Color("#F472B6"), // D
}

// ChoiceColor returns the color of choice index i, or TextDim when out of
// range.
func ChoiceColor(i int) color.Color {
	if i < 0 || i >= len(ChoiceColors) {
		return TextDim
	}
	return ChoiceColors[i]
}

// ChoiceLetter returns "A".."D" for choice index i.
func ChoiceLetter(i int) string {
	if i < 0 || i >= len(ChoiceColors) {
		return "?"
	}
	return string(rune('A' + i))
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Complete = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	Partial = lipgloss.NewStyle().
		Foreground(Warning)

	Empty = lipgloss.NewStyle().
		Foreground(TextDim)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Winner = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgDark).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
