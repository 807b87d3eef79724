package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenClockView/internal/config"
	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/face"
)

var (
	// Global flags
	verbose  bool
	facePath string
)

var rootCmd = &cobra.Command{
	Use:   "clockview",
	Short: "OpenClockView - analog clock face viewer and renderer",
	Long: `OpenClockView (clockview) loads clock face files and provides:
  - an interactive window with draggable hands
  - headless rendering of faces to PNG, WebP, BMP or TIFF
  - face inspection and hand hit-testing

Examples:
  clockview ui                                  # Launch interactive GUI
  clockview render -o clock.png --time 10:10    # Render the built-in face
  clockview info --face station.face            # Show face summary
  clockview probe 128 15 --time 00:00:00        # Which hand is at (128, 15)?`,
	Version: "0.9.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&facePath, "face", "f", "",
		"face file to load (default: configured face, else built-in)")
}

// loadSettings reads the app config, letting --face override its face path.
func loadSettings() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if facePath != "" {
		cfg.FacePath = facePath
	}
	return cfg, nil
}

// loadClock builds the clock for the selected face.
func loadClock() (*dial.Clock, *face.Face, *config.AppConfig, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, nil, nil, err
	}
	c, f, err := face.Load(cfg.FacePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load face: %w", err)
	}
	if verbose {
		name := cfg.FacePath
		if name == "" {
			name = "built-in face"
		}
		dw, dh := c.DialSize()
		log.Printf("Loaded %s: %d hands, dial %gx%g", name, c.NumHands(), dw, dh)
	}
	return c, f, cfg, nil
}

// parseClockTime accepts RFC 3339 or a wall time (15:04:05 or 15:04) on the
// day of now. An empty string means now.
func parseClockTime(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want 15:04:05, 15:04 or RFC 3339)", s)
}
