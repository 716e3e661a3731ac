package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nostromo/mother/internal/settings"
)

// Layout constants
const (
	// Input
	InputBorderHeight = 2
	InputPaddingLeft  = 1

	// Viewport
	MinViewportHeight = 1

	// Layout
	HeaderHeight       = 2
	SuggestionsHeight  = 1
	HelpHeight         = 1
	MessagePaddingLeft = 2

	// Scanlines are drawn every ScanlineInterval lines.
	ScanlineInterval = 3
)

// Palette of a color theme.
type Palette struct {
	Main lipgloss.Color
	Dark lipgloss.Color
}

// Palettes by color theme.
var Palettes = map[settings.ColorTheme]Palette{
	settings.ColorThemeGreen:      {Main: "#00ff41", Dark: "#001100"},
	settings.ColorThemeYellow:     {Main: "#ffaa00", Dark: "#1a1100"},
	settings.ColorThemeBlue:       {Main: "#00aaff", Dark: "#001122"},
	settings.ColorThemeRed:        {Main: "#ff0040", Dark: "#220011"},
	settings.ColorThemePurple:     {Main: "#aa00ff", Dark: "#110022"},
	settings.ColorThemeCyan:       {Main: "#00ffaa", Dark: "#001122"},
	settings.ColorThemeAlienEarth: {Main: "#ffb86c", Dark: "#0d1a26"},
}

// Fixed colors
var (
	ErrorColor = lipgloss.Color("#ff0040")
	DimColor   = lipgloss.Color("#4b5563")
)

// Styles of the terminal for one palette.
type Styles struct {
	Palette Palette

	Title       lipgloss.Style
	Status      lipgloss.Style
	CrewLabel   lipgloss.Style
	Crew        lipgloss.Style
	MotherLabel lipgloss.Style
	Mother      lipgloss.Style
	Cursor      lipgloss.Style
	Input       lipgloss.Style
	InputLocked lipgloss.Style
	Suggestion  lipgloss.Style
	Help        lipgloss.Style
	Scanline    lipgloss.Style
	Spinner     lipgloss.Style
	Error       lipgloss.Style
}

// New returns the styles of a color theme. Unknown themes fall back to green.
func New(theme settings.ColorTheme) Styles {
	palette, ok := Palettes[theme]
	if !ok {
		palette = Palettes[settings.ColorThemeGreen]
	}
	return Styles{
		Palette: palette,

		Title: lipgloss.NewStyle().
			Background(palette.Main).
			Foreground(palette.Dark).
			Bold(true),

		Status: lipgloss.NewStyle().
			Background(palette.Main).
			Foreground(palette.Dark),

		CrewLabel: lipgloss.NewStyle().
			Foreground(palette.Main).
			Faint(true),

		Crew: lipgloss.NewStyle().
			Foreground(palette.Main).
			PaddingLeft(MessagePaddingLeft),

		MotherLabel: lipgloss.NewStyle().
			Foreground(palette.Main).
			Bold(true),

		Mother: lipgloss.NewStyle().
			Foreground(palette.Main).
			PaddingLeft(MessagePaddingLeft),

		Cursor: lipgloss.NewStyle().
			Foreground(palette.Main).
			Blink(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(palette.Main).
			PaddingLeft(InputPaddingLeft),

		InputLocked: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(DimColor).
			PaddingLeft(InputPaddingLeft),

		Suggestion: lipgloss.NewStyle().
			Foreground(palette.Main).
			Faint(true),

		Help: lipgloss.NewStyle().
			Foreground(DimColor).
			Italic(true),

		Scanline: lipgloss.NewStyle().
			Faint(true),

		Spinner: lipgloss.NewStyle().
			Foreground(palette.Main),

		Error: lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true),
	}
}

// InputFrameWidth is the horizontal space taken by the input border and padding.
func (s Styles) InputFrameWidth() int {
	return s.Input.GetHorizontalFrameSize()
}

// MessageFrameWidth is the horizontal space taken by message padding.
func (s Styles) MessageFrameWidth() int {
	return s.Mother.GetHorizontalFrameSize()
}
