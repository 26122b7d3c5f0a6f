package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyjson/internal/jsondoc"
)

// Mode is the light/dark signal the graph colors follow
type Mode int

const (
	Dark Mode = iota
	Light
)

func (m Mode) String() string {
	if m == Light {
		return "light"
	}
	return "dark"
}

// Toggle returns the other mode
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// Theme defines the color scheme and styling
type Theme struct {
	Name string
	Mode Mode

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Graph
	Connector   lipgloss.Color
	MoreRow     lipgloss.Color
	Match       lipgloss.Color
	MatchActive lipgloss.Color

	// Table colors
	TableHeader      lipgloss.Color
	TableRowEven     lipgloss.Color
	TableRowOdd      lipgloss.Color
	TableRowSelected lipgloss.Color

	// JSON colors
	JSONKey     lipgloss.Color
	JSONString  lipgloss.Color
	JSONNumber  lipgloss.Color
	JSONBoolean lipgloss.Color
	JSONNull    lipgloss.Color
	JSONArray   lipgloss.Color
	JSONObject  lipgloss.Color
}

// KindColor maps a JSON kind to its node color
func (t Theme) KindColor(k jsondoc.Kind) lipgloss.Color {
	switch k {
	case jsondoc.KindString:
		return t.JSONString
	case jsondoc.KindNumber:
		return t.JSONNumber
	case jsondoc.KindBool:
		return t.JSONBoolean
	case jsondoc.KindArray:
		return t.JSONArray
	case jsondoc.KindObject:
		return t.JSONObject
	default:
		return t.JSONNull
	}
}

// GetTheme returns a theme by name. Unknown names fall back to the default
// dark theme.
func GetTheme(name string) Theme {
	switch strings.ToLower(name) {
	case "light":
		return LightTheme()
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	case "catppuccin-latte":
		return CatppuccinLatteTheme()
	default:
		return DefaultTheme()
	}
}

// Counterpart returns the theme of the same family for the other mode
func Counterpart(t Theme) Theme {
	switch t.Name {
	case "catppuccin-mocha":
		return CatppuccinLatteTheme()
	case "catppuccin-latte":
		return CatppuccinMochaTheme()
	case "light":
		return DefaultTheme()
	default:
		return LightTheme()
	}
}
