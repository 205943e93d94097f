package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/filetug/dirtug/pkg/colors"
	"github.com/filetug/dirtug/pkg/dirview"
	"github.com/filetug/dirtug/pkg/fsutils"
)

const (
	UserDir          = "~/.dirtug"
	settingsFileName = "settings.yaml"
)

// Config is read once at startup and passed to the components that need it.
type Config struct {
	Colors   map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Theme    string            `json:"theme,omitempty" yaml:"theme,omitempty"`
	PageSize int               `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Align    string            `json:"align,omitempty" yaml:"align,omitempty"`
	Watch    bool              `json:"watch,omitempty" yaml:"watch,omitempty"`
}

var userHomeDir = fsutils.ExpandHome

// DefaultPath is the settings file used when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(userHomeDir(UserDir), settingsFileName)
}

var (
	readYAMLFile = fsutils.ReadYAMLFile
	readJSONFile = fsutils.ReadJSONFile
)

// Load reads the settings file at path. A missing file yields the zero
// Config. Files ending in .json are decoded as JSON, anything else as YAML.
func Load(path string) (cfg Config, err error) {
	path = fsutils.ExpandHome(path)
	read := readYAMLFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		read = readJSONFile
	}
	if err = read(path, false, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if _, err = ParseAlign(cfg.Align); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.PageSize < 0 {
		return Config{}, fmt.Errorf("invalid config %s: page_size must not be negative, got %d", path, cfg.PageSize)
	}
	return cfg, nil
}

// ExtensionColors builds the lookup table: theme colours first, then the
// explicitly configured ones on top.
func (c Config) ExtensionColors() colors.ExtensionColors {
	table := colors.ExtensionColors{}
	if c.Theme != "" {
		table = colors.ThemeExtensionColors(c.Theme)
	}
	return table.Merge(colors.ParseExtensionColors(c.Colors))
}

// ViewOptions maps the view related settings to dirview options.
func (c Config) ViewOptions() []dirview.ViewOption {
	align, _ := ParseAlign(c.Align)
	return []dirview.ViewOption{
		dirview.WithAlign(align),
		dirview.WithPageSize(c.PageSize),
	}
}

func ParseAlign(s string) (dirview.VerticalAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "top":
		return dirview.AlignTop, nil
	case "center", "middle":
		return dirview.AlignCenter, nil
	case "bottom":
		return dirview.AlignBottom, nil
	default:
		return dirview.AlignTop, fmt.Errorf("unknown align %q", s)
	}
}
