package theme

import "github.com/charmbracelet/lipgloss"

// Base palette
var (
	ColorMet  = lipgloss.Color("#73d29b") // at or above the usage goal
	ColorNear = lipgloss.Color("#ffe3b3") // within the near buffer under it
	ColorFar  = lipgloss.Color("#f07070") // further under
)

// Background tones (dark theme)
var (
	ColorCardBg     = lipgloss.Color("#232438")
	ColorBorder     = lipgloss.Color("#3a3b52")
	ColorMutedText  = lipgloss.Color("#6b6d8a")
	ColorBodyText   = lipgloss.Color("#c8cad8")
	ColorBrightText = lipgloss.Color("#ecedf5")
)

// Common styles
var (
	MetStyle  = lipgloss.NewStyle().Foreground(ColorMet)
	NearStyle = lipgloss.NewStyle().Foreground(ColorNear)
	FarStyle  = lipgloss.NewStyle().Foreground(ColorFar)

	CardStyle = lipgloss.NewStyle().
			Background(ColorCardBg).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBrightText).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMutedText)

	BodyStyle = lipgloss.NewStyle().
			Foreground(ColorBodyText)
)
