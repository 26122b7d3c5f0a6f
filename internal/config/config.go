package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rebeliceyang/lazyjson/internal/geom"
	"github.com/rebeliceyang/lazyjson/internal/graph"
	"github.com/rebeliceyang/lazyjson/internal/tooltip"
	"github.com/rebeliceyang/lazyjson/internal/viewport"
)

// AppName names the config directory and the environment prefix
const AppName = "lazyjson"

// Config holds all application configuration
type Config struct {
	Graph    GraphConfig    `mapstructure:"graph"`
	Viewport ViewportConfig `mapstructure:"viewport"`
	Tooltip  TooltipConfig  `mapstructure:"tooltip"`
	Timing   TimingConfig   `mapstructure:"timing"`
	UI       UIConfig       `mapstructure:"ui"`
	History  HistoryConfig  `mapstructure:"history"`
	Log      LogConfig      `mapstructure:"log"`
}

type GraphConfig struct {
	ExpansionBudget           int `mapstructure:"expansion_budget"`
	PageSize                  int `mapstructure:"page_size"`
	ExpandAllConfirmThreshold int `mapstructure:"expand_all_confirm_threshold"`
}

type ViewportConfig struct {
	MinScale       float64 `mapstructure:"min_scale"`
	MaxScale       float64 `mapstructure:"max_scale"`
	ZoomStep       float64 `mapstructure:"zoom_step"`
	FitMargin      float64 `mapstructure:"fit_margin"`
	DefaultOffsetX float64 `mapstructure:"default_offset_x"`
	DefaultOffsetY float64 `mapstructure:"default_offset_y"`
	NodeWidth      float64 `mapstructure:"node_width"`
	NodeHeight     float64 `mapstructure:"node_height"`
	ColumnGap      float64 `mapstructure:"column_gap"`
	RowGap         float64 `mapstructure:"row_gap"`
	PanStep        float64 `mapstructure:"pan_step"`
}

// TooltipConfig is measured in terminal cells
type TooltipConfig struct {
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	Offset      float64 `mapstructure:"offset"`
	Margin      float64 `mapstructure:"margin"`
	HideDelayMs int     `mapstructure:"hide_delay_ms"`
}

type TimingConfig struct {
	DocumentDebounceMs int `mapstructure:"document_debounce_ms"`
	SearchDebounceMs   int `mapstructure:"search_debounce_ms"`
	ToastDurationMs    int `mapstructure:"toast_duration_ms"`
	DoubleClickMs      int `mapstructure:"double_click_ms"`
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	ShowHelpBar  bool   `mapstructure:"show_help_bar"`
}

type HistoryConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxEntries int  `mapstructure:"max_entries"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		Graph: GraphConfig{
			ExpansionBudget:           graph.DefaultExpansionBudget,
			PageSize:                  graph.DefaultPageSize,
			ExpandAllConfirmThreshold: graph.DefaultExpandAllThreshold,
		},
		Viewport: ViewportConfig{
			MinScale:       0.3,
			MaxScale:       3.0,
			ZoomStep:       0.1,
			FitMargin:      4,
			DefaultOffsetX: 2,
			DefaultOffsetY: 1,
			NodeWidth:      24,
			NodeHeight:     1,
			ColumnGap:      6,
			RowGap:         1,
			PanStep:        4,
		},
		Tooltip: TooltipConfig{
			Width:       40,
			Height:      8,
			Offset:      2,
			Margin:      1,
			HideDelayMs: 300,
		},
		Timing: TimingConfig{
			DocumentDebounceMs: 800,
			SearchDebounceMs:   300,
			ToastDurationMs:    4000,
			DoubleClickMs:      400,
		},
		UI: UIConfig{
			Theme:        "dark",
			MouseEnabled: true,
			ShowHelpBar:  true,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 200,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// setDefaults registers every default with viper so environment overrides
// apply to keys missing from the file
func setDefaults(v *viper.Viper) {
	d := GetDefaults()
	v.SetDefault("graph.expansion_budget", d.Graph.ExpansionBudget)
	v.SetDefault("graph.page_size", d.Graph.PageSize)
	v.SetDefault("graph.expand_all_confirm_threshold", d.Graph.ExpandAllConfirmThreshold)
	v.SetDefault("viewport.min_scale", d.Viewport.MinScale)
	v.SetDefault("viewport.max_scale", d.Viewport.MaxScale)
	v.SetDefault("viewport.zoom_step", d.Viewport.ZoomStep)
	v.SetDefault("viewport.fit_margin", d.Viewport.FitMargin)
	v.SetDefault("viewport.default_offset_x", d.Viewport.DefaultOffsetX)
	v.SetDefault("viewport.default_offset_y", d.Viewport.DefaultOffsetY)
	v.SetDefault("viewport.node_width", d.Viewport.NodeWidth)
	v.SetDefault("viewport.node_height", d.Viewport.NodeHeight)
	v.SetDefault("viewport.column_gap", d.Viewport.ColumnGap)
	v.SetDefault("viewport.row_gap", d.Viewport.RowGap)
	v.SetDefault("viewport.pan_step", d.Viewport.PanStep)
	v.SetDefault("tooltip.width", d.Tooltip.Width)
	v.SetDefault("tooltip.height", d.Tooltip.Height)
	v.SetDefault("tooltip.offset", d.Tooltip.Offset)
	v.SetDefault("tooltip.margin", d.Tooltip.Margin)
	v.SetDefault("tooltip.hide_delay_ms", d.Tooltip.HideDelayMs)
	v.SetDefault("timing.document_debounce_ms", d.Timing.DocumentDebounceMs)
	v.SetDefault("timing.search_debounce_ms", d.Timing.SearchDebounceMs)
	v.SetDefault("timing.toast_duration_ms", d.Timing.ToastDurationMs)
	v.SetDefault("timing.double_click_ms", d.Timing.DoubleClickMs)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("ui.mouse_enabled", d.UI.MouseEnabled)
	v.SetDefault("ui.show_help_bar", d.UI.ShowHelpBar)
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.max_entries", d.History.MaxEntries)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

// Load loads configuration. An explicit file must exist; otherwise
// config.yaml is searched in the user config directory, "." and "./config",
// and a missing file just means defaults. LAZYJSON_SECTION_KEY environment
// variables override both.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Add config paths in priority order
		if dir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the viewer cannot work with
func (c *Config) Validate() error {
	switch {
	case c.Graph.ExpansionBudget < 0:
		return fmt.Errorf("graph.expansion_budget must not be negative")
	case c.Graph.PageSize <= 0:
		return fmt.Errorf("graph.page_size must be positive")
	case c.Viewport.MinScale <= 0 || c.Viewport.MaxScale < c.Viewport.MinScale:
		return fmt.Errorf("viewport scale range [%g, %g] is invalid", c.Viewport.MinScale, c.Viewport.MaxScale)
	case c.Viewport.NodeWidth < 4 || c.Viewport.NodeHeight < 1:
		return fmt.Errorf("viewport node size %gx%g is too small", c.Viewport.NodeWidth, c.Viewport.NodeHeight)
	}
	return nil
}

// GraphOptions returns the construction options
func (c *Config) GraphOptions() graph.Options {
	return graph.Options{
		ExpansionBudget: c.Graph.ExpansionBudget,
		PageSize:        c.Graph.PageSize,
	}
}

// Metrics returns the layout node sizes
func (c *Config) Metrics() graph.Metrics {
	return graph.Metrics{
		NodeWidth:  c.Viewport.NodeWidth,
		NodeHeight: c.Viewport.NodeHeight,
		ColumnGap:  c.Viewport.ColumnGap,
		RowGap:     c.Viewport.RowGap,
	}
}

// ViewportConfig returns the viewport bounds
func (c *Config) ViewportConfig() viewport.Config {
	return viewport.Config{
		MinScale:      c.Viewport.MinScale,
		MaxScale:      c.Viewport.MaxScale,
		DefaultScale:  1,
		DefaultOffset: geom.Point{X: c.Viewport.DefaultOffsetX, Y: c.Viewport.DefaultOffsetY},
		FitMargin:     c.Viewport.FitMargin,
	}
}

// TooltipOptions returns the popup geometry in cells
func (c *Config) TooltipOptions() tooltip.Options {
	return tooltip.Options{
		Width:  c.Tooltip.Width,
		Height: c.Tooltip.Height,
		Offset: c.Tooltip.Offset,
		Margin: c.Tooltip.Margin,
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// TooltipHideDelay returns the tooltip grace period
func (c *Config) TooltipHideDelay() time.Duration { return ms(c.Tooltip.HideDelayMs) }

// DocumentDebounce returns the quiet period before a changed document is rebuilt
func (c *Config) DocumentDebounce() time.Duration { return ms(c.Timing.DocumentDebounceMs) }

// SearchDebounce returns the quiet period before a query is applied
func (c *Config) SearchDebounce() time.Duration { return ms(c.Timing.SearchDebounceMs) }

// ToastDuration returns how long notifications stay up
func (c *Config) ToastDuration() time.Duration { return ms(c.Timing.ToastDurationMs) }

// DoubleClick returns the double-click window
func (c *Config) DoubleClick() time.Duration { return ms(c.Timing.DoubleClickMs) }

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}
