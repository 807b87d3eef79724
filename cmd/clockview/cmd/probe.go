package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
)

var (
	probeTime   string
	probeWidth  float64
	probeHeight float64
	probeScale  string
	probeTo     string
)

var probeCmd = &cobra.Command{
	Use:   "probe [x y]",
	Short: "Hit-test a view point or list hand tips",
	Long: `Lay the face out in a view and report which hand a touch at (x, y) would
grab. Without a point, print every hand's tip in view coordinates. With --to,
drag the grabbed hand from (x, y) to the given point and print its new value.

Examples:
  clockview probe --time 00:00:00
  clockview probe 128 15 --time 00:00:00
  clockview probe 128 56 --to 200,128 --time 00:00:00`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)

	probeCmd.Flags().StringVarP(&probeTime, "time", "t", "", "time to show (15:04:05, 15:04 or RFC 3339)")
	probeCmd.Flags().Float64Var(&probeWidth, "width", 0, "view width (default: dial width plus padding)")
	probeCmd.Flags().Float64Var(&probeHeight, "height", 0, "view height (default: dial height plus padding)")
	probeCmd.Flags().StringVar(&probeScale, "scale", "", "scale mode (default: from face)")
	probeCmd.Flags().StringVar(&probeTo, "to", "", "drag the hit hand to x,y")
}

func runProbe(cmd *cobra.Command, args []string) error {
	t, err := parseClockTime(probeTime, time.Now())
	if err != nil {
		return err
	}
	c, f, _, err := loadClock()
	if err != nil {
		return err
	}
	if probeScale != "" {
		mode, err := dial.ParseScaleMode(probeScale)
		if err != nil {
			return err
		}
		c.SetScaleMode(mode)
	}
	c.SetTime(t, false)

	w, h := c.MinSize()
	if probeWidth > 0 {
		w = probeWidth
	}
	if probeHeight > 0 {
		h = probeHeight
	}
	c.SetViewSize(w, h)

	handName := func(i int) string {
		if i < len(f.Hands) && f.Hands[i].Name != "" {
			return f.Hands[i].Name
		}
		return fmt.Sprintf("#%d", i)
	}

	if len(args) == 0 {
		dw, dh := c.DialSize()
		m := c.Matrix()
		fmt.Printf("View %gx%g, scale %s, matrix %s\n", w, h, c.ScaleMode(), m)
		for i, hand := range c.Hands() {
			if !hand.Interactive() {
				fmt.Printf("  [%d] %-8s not interactive\n", i, handName(i))
				continue
			}
			tip := m.MapPoint(hand.Tip(dw, dh))
			fmt.Printf("  [%d] %-8s tip (%.1f, %.1f)  value %g\n", i, handName(i), tip.X, tip.Y, hand.Value)
		}
		return nil
	}

	at, err := parsePoint(args[0], args[1])
	if err != nil {
		return err
	}
	if !c.HandlePointer(dial.PointerEvent{Kind: dial.PointerDown, Position: at}) {
		fmt.Printf("No hand at (%g, %g)\n", at.X, at.Y)
		return nil
	}
	i := c.Dragging()
	fmt.Printf("Hit hand %d (%s) at (%g, %g)\n", i, handName(i), at.X, at.Y)

	if probeTo == "" {
		c.HandlePointer(dial.PointerEvent{Kind: dial.PointerCancel})
		return nil
	}
	xy := strings.SplitN(probeTo, ",", 2)
	if len(xy) != 2 {
		return fmt.Errorf("invalid --to %q (want x,y)", probeTo)
	}
	to, err := parsePoint(xy[0], xy[1])
	if err != nil {
		return err
	}
	old := c.HandValue(i)
	c.HandlePointer(dial.PointerEvent{Kind: dial.PointerMove, Position: to})
	c.HandlePointer(dial.PointerEvent{Kind: dial.PointerUp, Position: to})
	fmt.Printf("Dragged to (%g, %g): value %.2f -> %.2f\n", to.X, to.Y, old, c.HandValue(i))
	return nil
}

func parsePoint(xs, ys string) (r2.Vec, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return r2.Vec{}, fmt.Errorf("invalid x %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return r2.Vec{}, fmt.Errorf("invalid y %q: %w", ys, err)
	}
	return r2.Vec{X: x, Y: y}, nil
}
