package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "dark",
		Mode: Dark,

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("244"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Graph
		Connector:   lipgloss.Color("240"),
		MoreRow:     lipgloss.Color("75"),
		Match:       lipgloss.Color("58"),
		MatchActive: lipgloss.Color("136"),

		// Table colors
		TableHeader:      lipgloss.Color("62"),
		TableRowEven:     lipgloss.Color("235"),
		TableRowOdd:      lipgloss.Color("236"),
		TableRowSelected: lipgloss.Color("237"),

		// JSON colors
		JSONKey:     lipgloss.Color("117"),
		JSONString:  lipgloss.Color("180"),
		JSONNumber:  lipgloss.Color("150"),
		JSONBoolean: lipgloss.Color("75"),
		JSONNull:    lipgloss.Color("244"),
		JSONArray:   lipgloss.Color("141"),
		JSONObject:  lipgloss.Color("212"),
	}
}

// LightTheme returns the default light theme
func LightTheme() Theme {
	return Theme{
		Name: "light",
		Mode: Light,

		Background: lipgloss.Color("255"),
		Foreground: lipgloss.Color("235"),
		Muted:      lipgloss.Color("245"),

		Border:        lipgloss.Color("250"),
		BorderFocused: lipgloss.Color("25"),
		Selection:     lipgloss.Color("254"),
		Cursor:        lipgloss.Color("240"),

		Success: lipgloss.Color("28"),
		Warning: lipgloss.Color("130"),
		Error:   lipgloss.Color("160"),
		Info:    lipgloss.Color("25"),

		Connector:   lipgloss.Color("250"),
		MoreRow:     lipgloss.Color("25"),
		Match:       lipgloss.Color("229"),
		MatchActive: lipgloss.Color("221"),

		TableHeader:      lipgloss.Color("25"),
		TableRowEven:     lipgloss.Color("255"),
		TableRowOdd:      lipgloss.Color("254"),
		TableRowSelected: lipgloss.Color("153"),

		JSONKey:     lipgloss.Color("24"),
		JSONString:  lipgloss.Color("94"),
		JSONNumber:  lipgloss.Color("28"),
		JSONBoolean: lipgloss.Color("26"),
		JSONNull:    lipgloss.Color("245"),
		JSONArray:   lipgloss.Color("91"),
		JSONObject:  lipgloss.Color("162"),
	}
}
