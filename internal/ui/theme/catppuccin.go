package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// A soothing pastel theme for cozy TUIs
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",
		Mode: Dark,

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Graph
		Connector:   lipgloss.Color("#585b70"), // Surface2
		MoreRow:     lipgloss.Color("#74c7ec"), // Sapphire
		Match:       lipgloss.Color("#45475a"), // Surface1
		MatchActive: lipgloss.Color("#f9e2af"), // Yellow

		// Table colors
		TableHeader:      lipgloss.Color("#89b4fa"), // Blue
		TableRowEven:     lipgloss.Color("#1e1e2e"), // Base
		TableRowOdd:      lipgloss.Color("#181825"), // Mantle
		TableRowSelected: lipgloss.Color("#313244"), // Surface0

		// JSON colors
		JSONKey:     lipgloss.Color("#89b4fa"), // Blue
		JSONString:  lipgloss.Color("#a6e3a1"), // Green
		JSONNumber:  lipgloss.Color("#fab387"), // Peach
		JSONBoolean: lipgloss.Color("#f9e2af"), // Yellow
		JSONNull:    lipgloss.Color("#6c7086"), // Overlay0
		JSONArray:   lipgloss.Color("#cba6f7"), // Mauve
		JSONObject:  lipgloss.Color("#f5c2e7"), // Pink
	}
}

// CatppuccinLatteTheme returns the light Catppuccin flavor
func CatppuccinLatteTheme() Theme {
	return Theme{
		Name: "catppuccin-latte",
		Mode: Light,

		Background: lipgloss.Color("#eff1f5"), // Base
		Foreground: lipgloss.Color("#4c4f69"), // Text
		Muted:      lipgloss.Color("#9ca0b0"), // Overlay0

		Border:        lipgloss.Color("#bcc0cc"), // Surface1
		BorderFocused: lipgloss.Color("#1e66f5"), // Blue
		Selection:     lipgloss.Color("#ccd0da"), // Surface0
		Cursor:        lipgloss.Color("#dc8a78"), // Rosewater

		Success: lipgloss.Color("#40a02b"), // Green
		Warning: lipgloss.Color("#df8e1d"), // Yellow
		Error:   lipgloss.Color("#d20f39"), // Red
		Info:    lipgloss.Color("#04a5e5"), // Sky

		Connector:   lipgloss.Color("#acb0be"), // Surface2
		MoreRow:     lipgloss.Color("#209fb5"), // Sapphire
		Match:       lipgloss.Color("#ccd0da"), // Surface0
		MatchActive: lipgloss.Color("#df8e1d"), // Yellow

		TableHeader:      lipgloss.Color("#1e66f5"), // Blue
		TableRowEven:     lipgloss.Color("#eff1f5"), // Base
		TableRowOdd:      lipgloss.Color("#e6e9ef"), // Mantle
		TableRowSelected: lipgloss.Color("#ccd0da"), // Surface0

		JSONKey:     lipgloss.Color("#1e66f5"), // Blue
		JSONString:  lipgloss.Color("#40a02b"), // Green
		JSONNumber:  lipgloss.Color("#fe640b"), // Peach
		JSONBoolean: lipgloss.Color("#df8e1d"), // Yellow
		JSONNull:    lipgloss.Color("#9ca0b0"), // Overlay0
		JSONArray:   lipgloss.Color("#8839ef"), // Mauve
		JSONObject:  lipgloss.Color("#ea76cb"), // Pink
	}
}
