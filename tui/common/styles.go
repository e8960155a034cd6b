package common

import "github.com/charmbracelet/lipgloss"

var (
	// AppTitleStyle styles the application title. Rendered at call site with content.
	AppTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6600")).
			Padding(1, 2, 0, 1)

	// TaglineStyle styles the app's tagline.
	TaglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555")). // Dimmed grey
			Italic(true).
			MarginLeft(1)

	// TimestampStyle styles timestamps.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D"))

	// ContentStyle styles post text.
	ContentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CAD3F5"))

	// DimStyle styles secondary details: counters, boosters, urls.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Faint(true)

	// CursorStyle marks the focused row.
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true)

	// TabActiveStyle styles the selected category tab.
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600")).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	// TabInactiveStyle styles the other category tabs.
	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6E738D")).
				Padding(0, 1)

	// BadgeStyle styles category badges next to posts.
	BadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A9A9A9")).
			Background(lipgloss.Color("#2F2F2F")).
			Padding(0, 1).
			Faint(true)

	// BarMatchStyle styles time bar cells holding posts of the current view.
	BarMatchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6600"))

	// BarOtherStyle styles the remaining time bar cells.
	BarOtherStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45475A"))

	// StatusBarStyle styles the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6E738D")).
			Padding(1, 0, 0, 0)

	// WarningStyle styles the overlap notice.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EED49F"))

	// ConfirmStyle styles the delete confirmation prompt.
	ConfirmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true).
			Padding(0, 1)

	// ErrorStyle styles error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ED8796")).
			Bold(true)

	// SuccessStyle styles success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6DA95")).
			Bold(true)
)
