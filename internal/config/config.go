package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/validation"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database"`
	Search   SearchConfig   `mapstructure:"search" toml:"search"`
	UI       UIConfig       `mapstructure:"ui" toml:"ui"`
	Keys     KeyConfig      `mapstructure:"keys" toml:"keys"`
	Launcher LauncherConfig `mapstructure:"launcher" toml:"launcher"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path" toml:"path"`
	Timeout     time.Duration `mapstructure:"timeout" toml:"timeout"`
	SearchIndex string        `mapstructure:"search_index" toml:"search_index"`
}

type SearchConfig struct {
	HintText   string `mapstructure:"hint_text" toml:"hint_text"`
	MaxResults int    `mapstructure:"max_results" toml:"max_results"`

	// DisabledProviders names search providers that are not loaded.
	DisabledProviders []string `mapstructure:"disabled_providers" toml:"disabled_providers"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors" toml:"colors"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary" toml:"primary"`
	Secondary  string `mapstructure:"secondary" toml:"secondary"`
	Accent     string `mapstructure:"accent" toml:"accent"`
	Background string `mapstructure:"background" toml:"background"`
	Surface    string `mapstructure:"surface" toml:"surface"`
	Text       string `mapstructure:"text" toml:"text"`
	Muted      string `mapstructure:"muted" toml:"muted"`
	Error      string `mapstructure:"error" toml:"error"`
	Success    string `mapstructure:"success" toml:"success"`
}

// KeyConfig holds bubbletea key names (as in tea.KeyMsg.String()).
type KeyConfig struct {
	Quit      string `mapstructure:"quit" toml:"quit"`
	Toggle    string `mapstructure:"toggle" toml:"toggle"`
	RunDialog string `mapstructure:"run_dialog" toml:"run_dialog"`
	NextTab   string `mapstructure:"next_tab" toml:"next_tab"`
	PrevTab   string `mapstructure:"prev_tab" toml:"prev_tab"`
}

type LauncherConfig struct {
	DefaultOpener string `mapstructure:"default_opener" toml:"default_opener"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        validation.DefaultDBPath(),
			Timeout:     1 * time.Second,
			SearchIndex: validation.DefaultIndexPath(),
		},
		Search: SearchConfig{
			HintText:          "Type to search…",
			MaxResults:        8,
			DisabledProviders: []string{},
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#729FCF",
				Secondary:  "#8AE234",
				Accent:     "#FCE94F",
				Background: "#1E1E1E",
				Surface:    "#2E3436",
				Text:       "#EEEEEC",
				Muted:      "#888A85",
				Error:      "#EF2929",
				Success:    "#73D216",
			},
		},
		Keys: KeyConfig{
			Quit:      "q",
			Toggle:    "ctrl+o",
			RunDialog: "ctrl+r",
			NextTab:   "tab",
			PrevTab:   "shift+tab",
		},
		Launcher: LauncherConfig{
			DefaultOpener: getDefaultOpener(),
		},
		Log: LogConfig{
			Level: "OFF",
			File:  debuglog.DefaultPath(),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "xdg-open"
	}
}

// Load reads configPath, or config.toml from the default config directory
// and the working directory. A missing file yields the defaults.
// OVERVIEW_* environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(validation.DefaultConfigPath()))
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("OVERVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := expandPaths(&config); err != nil {
		return nil, err
	}
	if config.Search.MaxResults < 0 {
		return nil, fmt.Errorf("search.max_results must not be negative")
	}

	return &config, nil
}

// setDefaults registers every leaf key so a file that sets one key of a
// section keeps the defaults of the others, and so env overrides apply.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)
	v.SetDefault("database.search_index", cfg.Database.SearchIndex)

	v.SetDefault("search.hint_text", cfg.Search.HintText)
	v.SetDefault("search.max_results", cfg.Search.MaxResults)
	v.SetDefault("search.disabled_providers", cfg.Search.DisabledProviders)

	c := cfg.UI.Colors
	for key, val := range map[string]string{
		"primary": c.Primary, "secondary": c.Secondary, "accent": c.Accent,
		"background": c.Background, "surface": c.Surface, "text": c.Text,
		"muted": c.Muted, "error": c.Error, "success": c.Success,
	} {
		v.SetDefault("ui.colors."+key, val)
	}

	v.SetDefault("keys.quit", cfg.Keys.Quit)
	v.SetDefault("keys.toggle", cfg.Keys.Toggle)
	v.SetDefault("keys.run_dialog", cfg.Keys.RunDialog)
	v.SetDefault("keys.next_tab", cfg.Keys.NextTab)
	v.SetDefault("keys.prev_tab", cfg.Keys.PrevTab)

	v.SetDefault("launcher.default_opener", cfg.Launcher.DefaultOpener)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

func expandPaths(cfg *Config) error {
	for _, p := range []*string{&cfg.Database.Path, &cfg.Database.SearchIndex, &cfg.Log.File} {
		if *p == "" {
			continue
		}
		expanded, err := validation.ExpandPath(*p)
		if err != nil {
			return fmt.Errorf("config path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings keep the TOML readable.
	v.Set("database", map[string]any{
		"path":         config.Database.Path,
		"timeout":      config.Database.Timeout.String(),
		"search_index": config.Database.SearchIndex,
	})
	v.Set("search", config.Search)
	v.Set("ui", config.UI)
	v.Set("keys", config.Keys)
	v.Set("launcher", config.Launcher)
	v.Set("log", config.Log)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
