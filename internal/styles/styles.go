package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - warm dark theme
var (
	// Primary colors
	Primary   = lipgloss.Color("#C08457") // Caramel
	Secondary = lipgloss.Color("#8AA1B1") // Slate blue
	Accent    = lipgloss.Color("#E0B15C") // Honey

	// Status colors
	Success = lipgloss.Color("#7FB77E")
	Warning = lipgloss.Color("#E0B15C")
	Error   = lipgloss.Color("#D9665B")

	// Text colors
	TextPrimary   = lipgloss.Color("#F3E9DC")
	TextSecondary = lipgloss.Color("#C9B8A6")
	TextMuted     = lipgloss.Color("#8C7B6B")
	TextSubtle    = lipgloss.Color("#5E5146")

	// Background colors
	BgPrimary   = lipgloss.Color("#1E1915")
	BgSecondary = lipgloss.Color("#2A231D")
	BgTertiary  = lipgloss.Color("#3A3029")

	// Border colors
	BorderNormal = lipgloss.Color("#4A3E35")
	BorderActive = lipgloss.Color("#C08457")

	LinkColor             = lipgloss.Color("#8AB4D8")
	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")

	// Markdown style used by the help overlay
	CurrentMarkdownTheme = "dark"
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	Link = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	Logo = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Danger = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Toast styles for status messages
var (
	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(ToastSuccessTextColor).
			Bold(true).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(ToastErrorTextColor).
			Bold(true).
			Padding(0, 1)
)

// Row list styles
var (
	RowNormal = lipgloss.NewStyle().
			Foreground(TextPrimary)

	RowSelected = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(BgTertiary)

	RowPlaceholder = lipgloss.NewStyle().
			Foreground(TextSubtle).
			Italic(true)

	RowChecked = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true)

	Cursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Counter = lipgloss.NewStyle().
		Foreground(TextSecondary)

	CounterEmpty = lipgloss.NewStyle().
			Foreground(TextSubtle)

	LinkBadge = lipgloss.NewStyle().
			Foreground(LinkColor)

	Trash = lipgloss.NewStyle().
		Foreground(TextMuted)

	TrashHot = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Bar element styles (shared by header/footer)
var (
	BarTitle = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Bold(true)

	BarText = lipgloss.NewStyle().
		Foreground(TextMuted)

	BarChip = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	BarChipActive = lipgloss.NewStyle().
			Foreground(BgPrimary).
			Background(Primary).
			Padding(0, 1).
			Bold(true)
)

// Modal styles
var (
	ModalBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Background(BgSecondary).
			Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			MarginBottom(1)

	MenuBox = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Error).
		Padding(0, 1)

	MenuItem = lipgloss.NewStyle().
			Foreground(TextPrimary)

	MenuItemDanger = lipgloss.NewStyle().
			Foreground(Error)
)

// Gate screen
var (
	GateBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary).
		Padding(1, 4).
		Align(lipgloss.Center)
)
