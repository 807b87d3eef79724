// Package config stores persistent application settings for the clock
// viewer: a JSON file in the user's config directory, overlaid by
// CLOCKVIEW_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/tween"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CLOCKVIEW"

// AppConfig stores persistent application settings
type AppConfig struct {
	FacePath     string `json:"face_path,omitempty"`
	ScaleMode    string `json:"scale_mode"`
	DarkTheme    bool   `json:"dark_theme"`
	Animate      bool   `json:"animate"`
	TweenMillis  int    `json:"tween_ms"`
	Easing       string `json:"easing,omitempty"`
	SnapshotSize int    `json:"snapshot_size"`
}

// envOverlay holds the variables that override the file. Pointer fields
// stay nil when the variable is unset.
type envOverlay struct {
	Face    *string `envconfig:"FACE"`
	Scale   *string `envconfig:"SCALE"`
	Dark    *bool   `envconfig:"DARK"`
	Animate *bool   `envconfig:"ANIMATE"`
	TweenMS *int    `envconfig:"TWEEN_MS"`
	Easing  *string `envconfig:"EASING"`
}

// Default returns the settings used when no config file exists.
func Default() *AppConfig {
	return &AppConfig{
		ScaleMode:    dial.ScaleFitCenter.String(),
		DarkTheme:    true,
		Animate:      true,
		TweenMillis:  int(tween.DefaultDuration / time.Millisecond),
		SnapshotSize: 512,
	}
}

// Path returns the path to the config file, creating its directory.
func Path() (string, error) {
	var configDir string
	// Use platform-appropriate config directory
	if appData := os.Getenv("APPDATA"); appData != "" {
		configDir = filepath.Join(appData, "OpenClockView")
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config", "openclockview")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the config file and applies environment overrides.
func Load() (*AppConfig, error) {
	path, err := Path()
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads settings from path. A missing file yields Default().
// Keys absent from the file keep their default values.
func LoadFile(path string) (*AppConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from CLOCKVIEW_* variables.
func ApplyEnv(cfg *AppConfig) error {
	var env envOverlay
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if env.Face != nil {
		cfg.FacePath = *env.Face
	}
	if env.Scale != nil {
		cfg.ScaleMode = *env.Scale
	}
	if env.Dark != nil {
		cfg.DarkTheme = *env.Dark
	}
	if env.Animate != nil {
		cfg.Animate = *env.Animate
	}
	if env.TweenMS != nil {
		cfg.TweenMillis = *env.TweenMS
	}
	if env.Easing != nil {
		cfg.Easing = *env.Easing
	}
	return nil
}

// Save writes cfg to the default path.
func Save(cfg *AppConfig) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path as indented JSON.
func SaveFile(path string, cfg *AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Scale parses ScaleMode, falling back to fit_center when empty.
func (c *AppConfig) Scale() (dial.ScaleMode, error) {
	if c.ScaleMode == "" {
		return dial.ScaleFitCenter, nil
	}
	return dial.ParseScaleMode(c.ScaleMode)
}

// TweenDuration is TweenMillis as a duration.
func (c *AppConfig) TweenDuration() time.Duration {
	return time.Duration(c.TweenMillis) * time.Millisecond
}

// NewTweener returns the tween driver described by the settings.
func (c *AppConfig) NewTweener() (*tween.Driver, error) {
	easing, err := tween.ParseEasing(c.Easing)
	if err != nil {
		return nil, err
	}
	return tween.NewDriver(c.TweenDuration(), easing), nil
}
