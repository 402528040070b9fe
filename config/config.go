package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory.
const AppName = "blitzcrop"

// Config holds runtime configuration for cropping and app behavior.
// Fields may be loaded from a YAML file and overridden by command-line flags.
type Config struct {
	Debug bool `yaml:"debug"`
	Dark  bool `yaml:"dark"`

	// Output
	FileNameTemplate string `yaml:"file_name_template"`
	Quality          int    `yaml:"quality"`
	ForgetMetadata   bool   `yaml:"forget_metadata"`
	Overwrite        bool   `yaml:"overwrite"`

	// Review and gesture
	AdvanceOnAccept bool    `yaml:"advance_on_accept"`
	Interpolation   string  `yaml:"interpolation"`
	MinSelectionPx  float64 `yaml:"min_selection_px"`

	// Loading
	Recursive      bool `yaml:"recursive"`
	PrefetchRadius int  `yaml:"prefetch_radius"`
	CacheSize      int  `yaml:"cache_size"`

	// Window
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`
}

var interpolations = []string{"nearest", "bilinear", "catmullrom"}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		FileNameTemplate: "{image.stem}_{now}{image.suffix}",
		Quality:          95,
		AdvanceOnAccept:  true,
		Interpolation:    "catmullrom",
		MinSelectionPx:   4,
		PrefetchRadius:   1,
		CacheSize:        8,
		WindowWidth:      400,
		WindowHeight:     600,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.FileNameTemplate) == "" {
		c.FileNameTemplate = DefaultConfig().FileNameTemplate
	}
	if c.Quality < 1 || c.Quality > 100 {
		c.Quality = 95
	}
	c.Interpolation = strings.ToLower(strings.TrimSpace(c.Interpolation))
	if !validInterpolation(c.Interpolation) {
		c.Interpolation = "catmullrom"
	}
	if c.MinSelectionPx <= 0 {
		c.MinSelectionPx = 4
	}
	if c.PrefetchRadius < 0 {
		c.PrefetchRadius = 0
	}
	if c.PrefetchRadius > 8 {
		c.PrefetchRadius = 8
	}
	if c.CacheSize < 2*c.PrefetchRadius+1 {
		c.CacheSize = 2*c.PrefetchRadius + 1
	}
	if c.WindowWidth < 200 {
		c.WindowWidth = 400
	}
	if c.WindowHeight < 200 {
		c.WindowHeight = 600
	}
	return nil
}

func validInterpolation(s string) bool {
	for _, v := range interpolations {
		if s == v {
			return true
		}
	}
	return false
}

// Interpolations lists the accepted interpolation names.
func Interpolations() []string { return append([]string(nil), interpolations...) }

// DefaultPath returns the config file location under the XDG config home.
// On Linux: ~/.config/blitzcrop/config.yaml
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load attempts to read configuration from the given YAML file path. If the file does not
// exist it returns DefaultConfig(). On YAML error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in YAML format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
