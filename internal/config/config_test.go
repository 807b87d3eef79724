package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/tween"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", "")
	// envconfig also falls back to the unprefixed names.
	for _, k := range []string{"FACE", "SCALE", "DARK", "ANIMATE", "TWEEN_MS", "EASING"} {
		for _, name := range []string{EnvPrefix + "_" + k, k} {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return home
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("Load() = %+v, want %+v", cfg, Default())
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "openclockview")); err != nil {
		t.Fatalf("config dir not created: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	want := Default()
	want.FacePath = "/faces/station.face"
	want.ScaleMode = dial.ScaleCenterCrop.String()
	want.DarkTheme = false
	want.TweenMillis = 120
	if err := Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *got != *want {
		t.Fatalf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"dark_theme": false}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if cfg.DarkTheme {
		t.Fatalf("DarkTheme = true, want false")
	}
	if !cfg.Animate || cfg.TweenMillis != 300 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"tween_ms": "fast"}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("LoadFile returned nil error")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)
	if err := Save(Default()); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	t.Setenv("CLOCKVIEW_FACE", "night.face")
	t.Setenv("CLOCKVIEW_SCALE", "fit_xy")
	t.Setenv("CLOCKVIEW_ANIMATE", "false")
	t.Setenv("CLOCKVIEW_TWEEN_MS", "75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FacePath != "night.face" || cfg.ScaleMode != "fit_xy" || cfg.Animate || cfg.TweenMillis != 75 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if !cfg.DarkTheme {
		t.Fatalf("unset CLOCKVIEW_DARK changed DarkTheme")
	}
}

func TestEnvRejectsBadValue(t *testing.T) {
	isolate(t)
	t.Setenv("CLOCKVIEW_TWEEN_MS", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("Load returned nil error")
	}
}

func TestAppDataPath(t *testing.T) {
	isolate(t)
	appData := t.TempDir()
	t.Setenv("APPDATA", appData)
	path, err := Path()
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if want := filepath.Join(appData, "OpenClockView", "config.json"); path != want {
		t.Fatalf("Path() = %q, want %q", path, want)
	}
}

func TestDerivedSettings(t *testing.T) {
	cfg := Default()
	cfg.ScaleMode = ""
	if m, err := cfg.Scale(); err != nil || m != dial.ScaleFitCenter {
		t.Fatalf("Scale() = %s, %v, want fit_center", m, err)
	}
	cfg.ScaleMode = "sideways"
	if _, err := cfg.Scale(); err == nil {
		t.Fatalf("Scale() with bad name returned nil error")
	}

	cfg.TweenMillis = 0
	d, err := cfg.NewTweener()
	if err != nil {
		t.Fatalf("NewTweener returned error: %v", err)
	}
	if d.Duration() != tween.DefaultDuration {
		t.Fatalf("Duration() = %v, want %v", d.Duration(), tween.DefaultDuration)
	}
	cfg.TweenMillis = 50
	if cfg.TweenDuration() != 50*time.Millisecond {
		t.Fatalf("TweenDuration() = %v, want 50ms", cfg.TweenDuration())
	}
	cfg.Easing = "wobble"
	if _, err := cfg.NewTweener(); err == nil {
		t.Fatalf("NewTweener with bad easing returned nil error")
	}
}
