package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/face"
	"github.com/OpenTraceLab/OpenClockView/pkg/sprite"
)

var (
	outputJSON bool
)

// FaceInfo represents structured face information
type FaceInfo struct {
	Path             string     `json:"path,omitempty"`
	DialWidth        int        `json:"dial_width"`
	DialHeight       int        `json:"dial_height"`
	Scale            string     `json:"scale"`
	Is24Hour         bool       `json:"is_24_hour"`
	DrawReversed     bool       `json:"draw_reversed"`
	AdjustViewBounds bool       `json:"adjust_view_bounds"`
	Padding          [4]float64 `json:"padding"`
	SyncInterval     string     `json:"sync_interval,omitempty"`
	Hands            []HandInfo `json:"hands"`
}

// HandInfo represents one hand of a face
type HandInfo struct {
	Index          int        `json:"index"`
	Name           string     `json:"name"`
	Sprite         string     `json:"sprite,omitempty"`
	SpriteWidth    int        `json:"sprite_width"`
	SpriteHeight   int        `json:"sprite_height"`
	DegreesPerUnit float64    `json:"degrees_per_unit"`
	StartAngle     float64    `json:"start_angle"`
	Pivot          [2]float64 `json:"pivot"`
	Interval       string     `json:"interval,omitempty"`
	Value          float64    `json:"value"`
	Interactive    bool       `json:"interactive"`
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show face information",
	Long: `Load a face and print its dial, settings and hands.

Supports JSON output format for integration with other tools.

Examples:
  clockview info
  clockview info --face station.face --json`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVar(&outputJSON, "json", false,
		"output as JSON (for programmatic access)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	c, f, cfg, err := loadClock()
	if err != nil {
		return err
	}

	info := buildFaceInfo(cfg.FacePath, c, f)
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	return outputHumanFormat(info)
}

func buildFaceInfo(path string, c *dial.Clock, f *face.Face) *FaceInfo {
	dw, dh := c.DialSize()
	p := c.Padding()
	info := &FaceInfo{
		Path:             path,
		DialWidth:        int(dw),
		DialHeight:       int(dh),
		Scale:            c.ScaleMode().String(),
		Is24Hour:         c.Is24Hour(),
		DrawReversed:     c.DrawReversed(),
		AdjustViewBounds: c.AdjustViewBounds(),
		Padding:          [4]float64{p.Left, p.Top, p.Right, p.Bottom},
		Hands:            make([]HandInfo, c.NumHands()),
	}
	if d := c.SyncInterval(); d > 0 {
		info.SyncInterval = d.String()
	}

	for i, h := range c.Hands() {
		hi := HandInfo{
			Index:          i,
			DegreesPerUnit: h.DegreesPerUnit,
			StartAngle:     h.StartAngle,
			Pivot:          [2]float64{h.PivotX, h.PivotY},
			Value:          h.Value,
			Interactive:    h.Interactive(),
		}
		if i < len(f.Hands) {
			hi.Name = f.Hands[i].Name
			hi.Sprite = f.Hands[i].Sprite
		}
		sz := sprite.Size(h.Sprite)
		hi.SpriteWidth, hi.SpriteHeight = sz.X, sz.Y
		if h.Interval > 0 {
			hi.Interval = h.Interval.String()
		}
		info.Hands[i] = hi
	}
	return info
}

func outputHumanFormat(info *FaceInfo) error {
	name := info.Path
	if name == "" {
		name = "(built-in)"
	}
	fmt.Printf("Face: %s\n", name)
	fmt.Printf("  Dial: %dx%d\n", info.DialWidth, info.DialHeight)
	fmt.Printf("  Scale: %s\n", info.Scale)
	fmt.Printf("  24 hour: %v\n", info.Is24Hour)
	fmt.Printf("  Draw reversed: %v\n", info.DrawReversed)
	fmt.Printf("  Adjust view bounds: %v\n", info.AdjustViewBounds)
	fmt.Printf("  Padding: %g %g %g %g\n", info.Padding[0], info.Padding[1], info.Padding[2], info.Padding[3])
	if info.SyncInterval != "" {
		fmt.Printf("  Sync interval: %s\n", info.SyncInterval)
	}

	fmt.Printf("\nHands (%d):\n", len(info.Hands))
	for _, h := range info.Hands {
		fmt.Printf("  [%d] %s\n", h.Index, h.Name)
		fmt.Printf("      Sprite: %dx%d %s\n", h.SpriteWidth, h.SpriteHeight, h.Sprite)
		fmt.Printf("      Degrees/unit: %g  Start angle: %g\n", h.DegreesPerUnit, h.StartAngle)
		fmt.Printf("      Pivot: (%g, %g)  Value: %g\n", h.Pivot[0], h.Pivot[1], h.Value)
		if h.Interval != "" {
			fmt.Printf("      Interval: %s\n", h.Interval)
		}
		if !h.Interactive {
			fmt.Printf("      (not interactive)\n")
		}
	}
	return nil
}
