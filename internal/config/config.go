// Package config loads the core's configuration from viper-backed
// files and environment variables, and watches the file for hot
// reload (spec.md §6). Only gap, ratio, and preset values are safe to
// hot-swap; workspace topology changes arriving through a reload are
// rejected by the caller via tilingerr.InvalidArgument (the actor
// decides that, this package only parses and diffs).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yourorg/tilecore/internal/model"
)

// WorkspaceSpec is one entry of tiling.workspaces.
type WorkspaceSpec struct {
	Name          string `mapstructure:"name"`
	Screen        string `mapstructure:"screen"`
	Layout        string `mapstructure:"layout"`
	PresetOnOpen  string `mapstructure:"preset_on_open"`
}

// GapsSpec is tiling.gaps, with optional per-screen overrides keyed by
// screen name.
type GapsSpec struct {
	OuterTop    float64             `mapstructure:"outer_top"`
	OuterRight  float64             `mapstructure:"outer_right"`
	OuterBottom float64             `mapstructure:"outer_bottom"`
	OuterLeft   float64             `mapstructure:"outer_left"`
	InnerH      float64             `mapstructure:"inner_h"`
	InnerV      float64             `mapstructure:"inner_v"`
	PerScreen   map[string]GapsSpec `mapstructure:"per_screen"`
}

// PresetSpec is one named floating-window recipe under
// tiling.floating.presets.
type PresetSpec struct {
	Name   string  `mapstructure:"name"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// BarSpec is bar.height / bar.padding, consumed only as the main
// screen's outer-top gap.
type BarSpec struct {
	Height  float64 `mapstructure:"height"`
	Padding float64 `mapstructure:"padding"`
}

// AnimationSpec is tiling.animation: the effect applier's frame-transition
// duration and the settling window afterward during which the state
// actor ignores geometry events (spec.md §4.4).
type AnimationSpec struct {
	Enabled         bool          `mapstructure:"enabled"`
	Duration        time.Duration `mapstructure:"duration"`
	SettlingWindow  time.Duration `mapstructure:"settling_window"`
}

// TilingSpec is the tiling.* key group.
type TilingSpec struct {
	Workspaces []WorkspaceSpec         `mapstructure:"workspaces"`
	Gaps       GapsSpec                `mapstructure:"gaps"`
	Master     struct {
		Ratio int `mapstructure:"ratio"` // percentage, 10..90
	} `mapstructure:"master"`
	Floating struct {
		Presets []PresetSpec `mapstructure:"presets"`
	} `mapstructure:"floating"`
	Animation AnimationSpec `mapstructure:"animation"`
}

// Config is the complete configuration tree the core reads (spec.md
// §6); everything under it is treated as opaque data by the core
// except where this package validates ranges.
type Config struct {
	Tiling TilingSpec `mapstructure:"tiling"`
	Bar    BarSpec    `mapstructure:"bar"`
}

// MasterRatio returns tiling.master.ratio as a [0.1, 0.9] fraction.
func (c Config) MasterRatio() float64 {
	r := float64(c.Tiling.Master.Ratio) / 100.0
	if r < 0.1 {
		return 0.1
	}
	if r > 0.9 {
		return 0.9
	}
	return r
}

// Loader wraps a viper instance bound to a config file plus
// environment variable overrides, following the same
// AddConfigPath/AutomaticEnv convention as the teacher's configuration
// manager.
type Loader struct {
	v      *viper.Viper
	logger *logrus.Logger
}

// NewLoader builds a Loader that reads configFile (a path with or
// without its .yaml extension) from configPath and "."/"./configs",
// plus TILECORE_-prefixed environment overrides.
func NewLoader(logger *logrus.Logger, configPath, configFile string) *Loader {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(configFile, ".yaml"))
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/tilecore")
	v.AddConfigPath("$HOME/.tilecore")

	v.AutomaticEnv()
	v.SetEnvPrefix("TILECORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("tiling.master.ratio", 60)
	v.SetDefault("tiling.gaps.inner_h", 8.0)
	v.SetDefault("tiling.gaps.inner_v", 8.0)
	v.SetDefault("tiling.animation.enabled", true)
	v.SetDefault("tiling.animation.duration", 150*time.Millisecond)
	v.SetDefault("tiling.animation.settling_window", 100*time.Millisecond)
	v.SetDefault("bar.height", 0.0)

	return &Loader{v: v, logger: logger}
}

// Load reads and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Tiling.Master.Ratio != 0 && (cfg.Tiling.Master.Ratio < 10 || cfg.Tiling.Master.Ratio > 90) {
		return fmt.Errorf("tiling.master.ratio must be in [10, 90], got %d", cfg.Tiling.Master.Ratio)
	}
	seen := map[string]bool{}
	for _, ws := range cfg.Tiling.Workspaces {
		if ws.Name == "" {
			return fmt.Errorf("tiling.workspaces entry missing name")
		}
		if seen[ws.Name] {
			return fmt.Errorf("tiling.workspaces has duplicate name %q", ws.Name)
		}
		seen[ws.Name] = true
		if ws.Layout != "" {
			if _, ok := model.ParseLayoutTag(ws.Layout); !ok {
				return fmt.Errorf("tiling.workspaces[%s].layout %q is not a known layout tag", ws.Name, ws.Layout)
			}
		}
	}
	return nil
}

// ReloadFunc is invoked on every config file change: cfg is the freshly
// parsed and validated configuration, or nil alongside a non-nil err if
// reparsing failed. It is the caller's job (the state actor) to diff
// topology against the previous config and reject changes it cannot
// apply live; this package only reports reparse/validate outcomes, it
// never judges topology itself.
type ReloadFunc func(cfg *Config, err error)

// Watch enables viper's fsnotify-backed file watch and invokes fn with
// every reparse attempt, success or failure, so the caller can
// surface a rejected reload rather than only seeing it in a log line.
// A failed reparse leaves the last good config in effect; fn is still
// called, with a nil cfg, so the failure reaches whoever is waiting on
// the reload rather than only this package's log output.
func (l *Loader) Watch(fn ReloadFunc) {
	l.v.WatchConfig()
	l.v.OnConfigChange(func(e fsnotify.Event) {
		l.logger.WithField("file", e.Name).Info("config file changed, reloading")
		var cfg Config
		if err := l.v.Unmarshal(&cfg); err != nil {
			err = fmt.Errorf("config reload: unmarshal failed, keeping previous config: %w", err)
			l.logger.WithError(err).Warn("config reload failed")
			fn(nil, err)
			return
		}
		if err := validate(&cfg); err != nil {
			err = fmt.Errorf("config reload: validation failed, keeping previous config: %w", err)
			l.logger.WithError(err).Warn("config reload failed")
			fn(nil, err)
			return
		}
		fn(&cfg, nil)
	})
}
