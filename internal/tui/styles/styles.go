package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon color scheme - IBM Carbon inspired
// Following base16 oxocarbon-dark palette
var (
	// Base colors
	OxocarbonBlack  = lipgloss.Color("#161616") // Darkest background
	OxocarbonBase00 = lipgloss.Color("#262626") // UI elements (lighter than bg)
	OxocarbonBase01 = lipgloss.Color("#393939") // Borders, secondary UI
	OxocarbonBase02 = lipgloss.Color("#525252") // Disabled/muted elements
	OxocarbonBase03 = lipgloss.Color("#767676") // Disabled/muted elements
	OxocarbonBase04 = lipgloss.Color("#dde1e6") // Secondary foreground
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // Primary foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	// Accent colors
	OxocarbonTeal    = lipgloss.Color("#3ddbd9")
	OxocarbonBlue    = lipgloss.Color("#78a9ff")
	OxocarbonPink    = lipgloss.Color("#ee5396")
	OxocarbonRed     = lipgloss.Color("#ff5252")
	OxocarbonCyan    = lipgloss.Color("#33b1ff")
	OxocarbonMagenta = lipgloss.Color("#ff7eb6")
	OxocarbonGreen   = lipgloss.Color("#42be65")
	OxocarbonPurple  = lipgloss.Color("#be95ff") // main accent
	OxocarbonMauve   = lipgloss.Color("#d1aaff")
)

var (
	// Panel is the bordered box every section is drawn in
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(OxocarbonBase01).
			Padding(0, 1)

	// ActivePanelStyle marks the panel that currently receives typed input
	ActivePanelStyle = PanelStyle.
				BorderForeground(OxocarbonPurple)

	// Title style
	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	// Label style for "Key: value" rows
	LabelStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan)

	ValueStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Italic(true)

	// Tabs
	TabStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Bold(true)

	TabSeparatorStyle = lipgloss.NewStyle().
				Foreground(OxocarbonBase02)

	// List item titles
	ItemTitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Bold(true)

	SelectedItemTitleStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPurple).
				Bold(true)

	WatchedBadgeStyle = lipgloss.NewStyle().
				Foreground(OxocarbonGreen).
				Bold(true)

	CreatorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan)

	DurationStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMagenta)

	DateStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve)

	ViewsStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase04)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase01)

	SelectedSeparatorStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPurple)

	// Selection gutter drawn left of the selected item
	GutterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple).
			Bold(true)

	// Fuzzy suggestion styles
	SuggestionStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	SuggestionMatchStyle = lipgloss.NewStyle().
				Foreground(OxocarbonPink).
				Bold(true)

	// Toggle values
	OnStyle = lipgloss.NewStyle().
		Foreground(OxocarbonGreen).
		Bold(true)

	OffStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	SortStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMagenta)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed)

	// Footer style for status messages
	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple)
)
