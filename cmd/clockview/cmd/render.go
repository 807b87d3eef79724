package cmd

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/raster"
)

var (
	renderOut        string
	renderSize       int
	renderWidth      int
	renderHeight     int
	renderTime       string
	renderScale      string
	renderBackground string
	renderInterp     string
)

var interpolators = map[string]draw.Interpolator{
	"nearest":    draw.NearestNeighbor,
	"approx":     draw.ApproxBiLinear,
	"bilinear":   draw.BiLinear,
	"catmullrom": draw.CatmullRom,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a clock face to an image file",
	Long: `Render the face at a given time without opening a window. The output
format follows the file extension: .png, .webp, .bmp, .tif or .tiff.

Examples:
  clockview render -o clock.png --time 10:10:30
  clockview render -f station.face -o station.webp --size 1024
  clockview render -o wide.png --width 800 --height 300 --scale center_crop`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output image file")
	renderCmd.Flags().IntVarP(&renderSize, "size", "s", 0,
		"square output size in pixels (default: configured snapshot size)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 0, "output width, overrides --size")
	renderCmd.Flags().IntVar(&renderHeight, "height", 0, "output height, overrides --size")
	renderCmd.Flags().StringVarP(&renderTime, "time", "t", "", "time to show (15:04:05, 15:04 or RFC 3339)")
	renderCmd.Flags().StringVar(&renderScale, "scale", "", "scale mode (default: from face)")
	renderCmd.Flags().StringVar(&renderBackground, "background", "", "background color #rrggbb[aa] (default: transparent)")
	renderCmd.Flags().StringVar(&renderInterp, "interp", "bilinear", "resampling: nearest, approx, bilinear, catmullrom")

	renderCmd.MarkFlagRequired("out")
}

func runRender(cmd *cobra.Command, args []string) error {
	interp, ok := interpolators[strings.ToLower(renderInterp)]
	if !ok {
		return fmt.Errorf("unknown interpolator %q", renderInterp)
	}
	bg, err := parseColor(renderBackground)
	if err != nil {
		return err
	}
	t, err := parseClockTime(renderTime, time.Now())
	if err != nil {
		return err
	}

	c, _, cfg, err := loadClock()
	if err != nil {
		return err
	}
	if renderScale != "" {
		mode, err := dial.ParseScaleMode(renderScale)
		if err != nil {
			return err
		}
		c.SetScaleMode(mode)
	}
	c.SetTime(t, false)

	w, h := renderSize, renderSize
	if w <= 0 {
		w, h = cfg.SnapshotSize, cfg.SnapshotSize
	}
	if renderWidth > 0 {
		w = renderWidth
	}
	if renderHeight > 0 {
		h = renderHeight
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid output size %dx%d", w, h)
	}

	r := &raster.Renderer{Interp: interp}
	if bg != nil {
		r.Background = bg
	}
	img := r.Snapshot(c, w, h)
	if err := raster.WriteFile(renderOut, img); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	fmt.Printf("Wrote %s (%dx%d, %s, %s)\n", renderOut, w, h, c.ScaleMode(), t.Format(time.TimeOnly))
	return nil
}

// parseColor reads #rrggbb or #rrggbbaa. Empty means no background.
func parseColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
