package ui

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"
	"time"

	"gioui.org/app"
	gfont "gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"github.com/oligo/gioview/menu"
	"github.com/oligo/gioview/theme"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/OpenTraceLab/OpenClockView/internal/config"
	"github.com/OpenTraceLab/OpenClockView/pkg/dial"
	"github.com/OpenTraceLab/OpenClockView/pkg/face"
	"github.com/OpenTraceLab/OpenClockView/pkg/raster"
)

// pickResult carries the outcome of a file dialog back to the UI goroutine.
type pickResult struct {
	open bool
	path string
	err  error
}

// App is the clock viewer window.
type App struct {
	window *app.Window
	ops    op.Ops

	gvTheme  *theme.Theme
	darkMode bool
	cfg      *config.AppConfig
	verbose  bool

	clock    *ClockWidget
	facePath string

	openIcon *widget.Icon
	saveIcon *widget.Icon
	nowIcon  *widget.Icon
	openBtn  widget.Clickable
	saveBtn  widget.Clickable
	nowBtn   widget.Clickable

	scaleMenu    *menu.DropdownMenu
	scaleMenuBtn widget.Clickable

	animateSwitch  widget.Bool
	followSwitch   widget.Bool
	is24Switch     widget.Bool
	darkModeSwitch widget.Bool

	explorer *explorer.Explorer
	results  chan pickResult

	logs          []string
	logText       string
	logSelectable widget.Selectable
	logList       widget.List
	monoShaper    *text.Shaper

	statusText string
}

// New creates the viewer window from cfg and loads cfg.FacePath, falling
// back to the built-in face when it cannot be loaded.
func New(w *app.Window, cfg *config.AppConfig, verbose bool) (*App, error) {
	if w == nil {
		w = new(app.Window)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	w.Option(app.Title("OpenClockView"), app.Size(unit.Dp(720), unit.Dp(860)))

	driver, err := cfg.NewTweener()
	if err != nil {
		return nil, err
	}
	scale, err := cfg.Scale()
	if err != nil {
		return nil, err
	}

	a := &App{
		window:   w,
		gvTheme:  theme.NewTheme("", nil, true),
		darkMode: cfg.DarkTheme,
		cfg:      cfg,
		verbose:  verbose,
		explorer: explorer.NewExplorer(w),
		results:  make(chan pickResult, 1),
	}
	if mono := filterMonoFaces(); len(mono) > 0 {
		a.monoShaper = text.NewShaper(text.WithCollection(mono), text.NoSystemFonts())
	}
	if icon, err := widget.NewIcon(icons.FileFolderOpen); err == nil {
		a.openIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ContentSave); err == nil {
		a.saveIcon = icon
	}
	if icon, err := widget.NewIcon(icons.ActionSchedule); err == nil {
		a.nowIcon = icon
	}
	a.logSelectable.WrapPolicy = text.WrapGraphemes
	a.logList.Axis = layout.Vertical
	a.logList.ScrollToEnd = true

	a.clock = NewClockWidget(nil, driver)
	a.clock.Follow = true
	a.clock.Animate = cfg.Animate
	a.clock.OnInvalidate = w.Invalidate
	if verbose {
		a.clock.Logf = a.Logf
	}
	a.animateSwitch.Value = cfg.Animate
	a.followSwitch.Value = true
	a.darkModeSwitch.Value = a.darkMode
	a.scaleMenu = a.buildScaleMenu()
	a.applyPalette()

	a.Logf("[BOOT] OpenClockView started")
	if !a.loadFace(cfg.FacePath) {
		a.loadFace("")
	}
	if a.facePath == "" {
		a.clock.Clock.SetScaleMode(scale)
	}
	return a, nil
}

// Run blocks processing window events until the window closes.
func (a *App) Run() error {
	for {
		e := a.window.Event()
		a.explorer.ListenEvents(e)
		switch ev := e.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&a.ops, ev)
			a.layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}

func (a *App) layout(gtx layout.Context) layout.Dimensions {
	a.drainResults()
	a.handleKeys(gtx)

	paint.FillShape(gtx.Ops, a.gvTheme.Palette.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(a.layoutToolbar),
		layout.Flexed(1, a.layoutClock),
		layout.Rigid(a.layoutLogPane),
		layout.Rigid(a.layoutStatusBar),
	)
}

func (a *App) handleKeys(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "O", Required: key.ModShortcut},
			key.Filter{Name: "S", Required: key.ModShortcut},
			key.Filter{Name: "N", Required: key.ModShortcut},
		)
		if !ok {
			break
		}
		ke, ok := ev.(key.Event)
		if !ok || ke.State != key.Press {
			continue
		}
		switch ke.Name {
		case "O":
			a.openFacePicker()
		case "S":
			a.saveSnapshot()
		case "N":
			a.syncNow()
		}
	}
}

func (a *App) layoutToolbar(gtx layout.Context) layout.Dimensions {
	if a.openBtn.Clicked(gtx) {
		a.openFacePicker()
	}
	if a.saveBtn.Clicked(gtx) {
		a.saveSnapshot()
	}
	if a.nowBtn.Clicked(gtx) {
		a.syncNow()
	}
	if a.scaleMenu != nil && a.scaleMenuBtn.Clicked(gtx) {
		a.scaleMenu.ToggleVisibility(gtx)
	}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx layout.Context) layout.Dimensions {
			paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return layout.Dimensions{Size: gtx.Constraints.Min}
		}),
		layout.Stacked(a.layoutToolbarRow),
	)
}

func (a *App) layoutToolbarRow(gtx layout.Context) layout.Dimensions {
	spacer := layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout)
	return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.openBtn, a.openIcon, "Open face")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.saveBtn, a.saveIcon, "Save snapshot")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.iconButton(gtx, &a.nowBtn, a.nowIcon, "Now")
			}),
			spacer,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				dims := material.Button(a.gvTheme.Theme, &a.scaleMenuBtn, a.clock.Clock.ScaleMode().String()).Layout(gtx)
				if a.scaleMenu != nil {
					a.scaleMenu.Layout(gtx, a.gvTheme)
				}
				return dims
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, "Animate", &a.animateSwitch, a.setAnimate)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, "Follow", &a.followSwitch, a.setFollow)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, "24h", &a.is24Switch, a.set24Hour)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return a.layoutToggle(gtx, "Dark", &a.darkModeSwitch, a.setDarkMode)
			}),
		)
	})
}

func (a *App) iconButton(gtx layout.Context, btn *widget.Clickable, icon *widget.Icon, label string) layout.Dimensions {
	if icon == nil {
		return material.Button(a.gvTheme.Theme, btn, label).Layout(gtx)
	}
	b := material.IconButton(a.gvTheme.Theme, btn, icon, label)
	b.Size = unit.Dp(20)
	b.Inset = layout.UniformInset(unit.Dp(8))
	return b.Layout(gtx)
}

func (a *App) layoutToggle(gtx layout.Context, title string, control *widget.Bool, onChange func(bool)) layout.Dimensions {
	prev := control.Value
	return layout.Inset{Left: unit.Dp(12)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(material.Body2(a.gvTheme.Theme, title).Layout),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				d := material.Switch(a.gvTheme.Theme, control, title).Layout(gtx)
				if prev != control.Value {
					onChange(control.Value)
				}
				return d
			}),
		)
	})
}

func (a *App) layoutClock(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(unit.Dp(16)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		if a.clock.Clock != nil && a.clock.Clock.AdjustViewBounds() {
			// Let the height follow the dial aspect ratio.
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			gtx.Constraints.Min.Y = 0
			return layout.Center.Layout(gtx, a.clock.Layout)
		}
		gtx.Constraints.Min = gtx.Constraints.Max
		return a.clock.Layout(gtx)
	})
}

func (a *App) layoutLogPane(gtx layout.Context) layout.Dimensions {
	h := gtx.Dp(unit.Dp(120))
	gtx.Constraints.Min.Y = h
	gtx.Constraints.Max.Y = h
	paint.FillShape(gtx.Ops, a.gvTheme.Bg2, clip.Rect{Max: gtx.Constraints.Max}.Op())

	return layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(6), Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min = gtx.Constraints.Max
		return a.logList.Layout(gtx, 1, func(gtx layout.Context, _ int) layout.Dimensions {
			label := material.Body2(a.gvTheme.Theme, a.logText)
			label.State = &a.logSelectable
			label.WrapPolicy = text.WrapGraphemes
			label.Alignment = text.Start
			label.Font.Typeface = gfont.Typeface("Go Mono")
			if a.monoShaper != nil {
				label.Shaper = a.monoShaper
			}
			label.Color = a.opaqueFg()
			label.SelectionColor = a.selectionColor()
			return label.Layout(gtx)
		})
	})
}

func (a *App) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Left: unit.Dp(16), Right: unit.Dp(16), Top: unit.Dp(8), Bottom: unit.Dp(8)}
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				msg := a.statusText
				if msg == "" {
					msg = "Ready"
				}
				return material.Body2(a.gvTheme.Theme, msg).Layout(gtx)
			}),
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions { return layout.Dimensions{} }),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(180))
				return material.Body2(a.gvTheme.Theme, a.readout()).Layout(gtx)
			}),
		)
	})
}

// readout formats the hand values for the status bar.
func (a *App) readout() string {
	c := a.clock.Clock
	if c == nil {
		return ""
	}
	parts := make([]string, 0, c.NumHands())
	for i := 0; i < c.NumHands(); i++ {
		parts = append(parts, fmt.Sprintf("%.1f", c.HandValue(i)))
	}
	return strings.Join(parts, " : ")
}

func (a *App) openFacePicker() {
	go func() {
		file, err := a.explorer.ChooseFile("face")
		if err != nil {
			if err != explorer.ErrUserDecline {
				a.post(pickResult{open: true, err: err})
			}
			return
		}
		defer file.Close()

		if f, ok := file.(*os.File); ok {
			a.post(pickResult{open: true, path: f.Name()})
		} else {
			a.post(pickResult{open: true, err: fmt.Errorf("unable to get file path from picker")})
		}
	}()
}

// saveSnapshot renders the clock on the UI goroutine and writes it from a
// background file dialog.
func (a *App) saveSnapshot() {
	c := a.clock.Clock
	if c == nil {
		return
	}
	vw, vh := c.ViewSize()
	n := a.cfg.SnapshotSize
	img := raster.Snapshot(c, n, n)
	c.SetViewSize(vw, vh)

	go func() {
		out, err := a.explorer.CreateFile("clock.png")
		if err != nil {
			if err != explorer.ErrUserDecline {
				a.post(pickResult{err: err})
			}
			return
		}
		name := "clock.png"
		if f, ok := out.(*os.File); ok {
			name = f.Name()
		}
		err = raster.Encode(out, img, raster.FormatPNG)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		a.post(pickResult{path: name, err: err})
	}()
}

func (a *App) post(r pickResult) {
	a.results <- r
	a.window.Invalidate()
}

func (a *App) drainResults() {
	for {
		select {
		case r := <-a.results:
			switch {
			case r.err != nil && r.open:
				a.Logf("[ERROR] File picker failed: %v", r.err)
			case r.err != nil:
				a.Logf("[ERROR] Snapshot failed: %v", r.err)
			case r.open:
				a.loadFace(r.path)
			default:
				a.Logf("[INFO] Snapshot saved to %s", r.path)
			}
		default:
			return
		}
	}
}

// loadFace replaces the displayed clock. An empty path loads the built-in
// face.
func (a *App) loadFace(path string) bool {
	c, f, err := face.Load(path)
	if err != nil {
		a.Logf("[ERROR] Failed to load face: %v", err)
		return false
	}
	a.clock.SetClock(c)
	a.installListener(c)
	c.SetTime(time.Now(), false)
	a.facePath = path
	a.is24Switch.Value = c.Is24Hour()

	dw, dh := c.DialSize()
	name := path
	if name == "" {
		name = "built-in face"
	}
	a.Logf("[INFO] Loaded %s: %d hands, dial %gx%g, scale %s", name, len(f.Hands), dw, dh, c.ScaleMode())

	if path != "" && path != a.cfg.FacePath {
		a.cfg.FacePath = path
		a.saveConfig()
	}
	return true
}

func (a *App) installListener(c *dial.Clock) {
	c.SetListener(dial.Listener{
		Begin: func(i int) bool {
			a.statusText = fmt.Sprintf("Dragging hand %d", i)
			return true
		},
		Changed: func(i int, v, old float64) {
			a.statusText = fmt.Sprintf("Hand %d: %.2f", i, v)
		},
		End: func(i int) {
			a.statusText = ""
			a.Logf("[INFO] Hand %d set to %.2f", i, c.HandValue(i))
			if a.clock.Follow {
				a.setFollow(false)
				a.Logf("[INFO] Following wall time paused")
			}
		},
	})
}

func (a *App) buildScaleMenu() *menu.DropdownMenu {
	opts := make([]menu.MenuOption, 0, len(dial.ScaleModes))
	for _, mode := range dial.ScaleModes {
		m := mode
		opts = append(opts, menu.MenuOption{
			OnClicked: func() error {
				a.setScaleMode(m)
				return nil
			},
			Layout: func(gtx menu.C, th *theme.Theme) menu.D {
				lbl := material.Body1(th.Theme, m.String())
				if a.clock.Clock != nil && m == a.clock.Clock.ScaleMode() {
					lbl.Color = th.Palette.ContrastBg
				}
				return layout.Inset{Left: unit.Dp(4), Right: unit.Dp(4)}.Layout(gtx, lbl.Layout)
			},
		})
	}
	drop := menu.NewDropdownMenu([][]menu.MenuOption{opts})
	drop.MaxWidth = unit.Dp(220)
	return drop
}

func (a *App) setScaleMode(mode dial.ScaleMode) {
	c := a.clock.Clock
	if c == nil || c.ScaleMode() == mode {
		return
	}
	c.SetScaleMode(mode)
	a.cfg.ScaleMode = mode.String()
	a.saveConfig()
	a.Logf("[INFO] Scale mode switched to %s", mode)
}

func (a *App) syncNow() {
	if a.clock.Clock == nil {
		return
	}
	a.clock.Clock.SetTime(time.Now(), a.clock.Animate)
	a.Logf("[INFO] Hands set to current time")
}

func (a *App) setAnimate(enabled bool) {
	a.clock.Animate = enabled
	a.animateSwitch.Value = enabled
	a.cfg.Animate = enabled
	a.saveConfig()
}

func (a *App) setFollow(enabled bool) {
	a.clock.Follow = enabled
	a.followSwitch.Value = enabled
	if enabled {
		a.syncNow()
	}
}

// set24Hour switches the hour scale and retunes the hour hand when it uses
// one of the preset rates.
func (a *App) set24Hour(enabled bool) {
	c := a.clock.Clock
	if c == nil {
		return
	}
	c.SetIs24Hour(enabled)
	if c.NumHands() > dial.HandHour {
		h := c.Hand(dial.HandHour)
		switch {
		case enabled && h.DegreesPerUnit == 30:
			h.DegreesPerUnit = 15
		case !enabled && h.DegreesPerUnit == 15:
			h.DegreesPerUnit = 30
		}
	}
	c.SetTime(time.Now(), a.clock.Animate)
	a.Logf("[INFO] 24 hour dial %v", enabled)
	a.invalidate()
}

func (a *App) setDarkMode(enabled bool) {
	if a.darkMode == enabled {
		return
	}
	a.darkMode = enabled
	a.darkModeSwitch.Value = enabled
	a.applyPalette()
	a.cfg.DarkTheme = enabled
	a.saveConfig()
	if enabled {
		a.Logf("[INFO] Theme switched to dark mode")
	} else {
		a.Logf("[INFO] Theme switched to light mode")
	}
	a.invalidate()
}

func (a *App) saveConfig() {
	if err := config.Save(a.cfg); err != nil {
		a.Logf("[ERROR] Failed to save settings: %v", err)
	}
}

func (a *App) applyPalette() {
	if a.gvTheme == nil {
		return
	}
	if a.darkMode {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 18, G: 20, B: 26, A: 255},
			Fg:         color.NRGBA{R: 233, G: 236, B: 245, A: 255},
			ContrastBg: color.NRGBA{R: 120, G: 150, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 12, G: 16, B: 24, A: 255},
			Bg2:        color.NRGBA{R: 34, G: 40, B: 50, A: 255},
		})
	} else {
		a.gvTheme.WithPalette(theme.Palette{
			Bg:         color.NRGBA{R: 245, G: 247, B: 253, A: 255},
			Fg:         color.NRGBA{R: 34, G: 37, B: 49, A: 255},
			ContrastBg: color.NRGBA{R: 80, G: 120, B: 255, A: 255},
			ContrastFg: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			Bg2:        color.NRGBA{R: 225, G: 230, B: 244, A: 255},
		})
	}
}

func (a *App) invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

// Logf appends a timestamped line to the log pane. It must be called from
// the UI goroutine.
func (a *App) Logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if a.verbose {
		log.Print(msg)
	}
	entry := fmt.Sprintf("[%s] %s", time.Now().Format(time.Stamp), msg)
	a.logs = append(a.logs, entry)
	a.logText = strings.Join(a.logs, "\n")
	a.logSelectable.SetText(a.logText)
	a.invalidate()
}

func (a *App) opaqueFg() color.NRGBA {
	fg := a.gvTheme.Palette.Fg
	fg.A = 0xFF
	return fg
}

func (a *App) selectionColor() color.NRGBA {
	bg := a.gvTheme.Palette.ContrastBg
	if bg.A == 0 {
		bg.A = 0xFF
	}
	return color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0x88}
}

func filterMonoFaces() []gfont.FontFace {
	var mono []gfont.FontFace
	for _, ff := range gofont.Collection() {
		if ff.Font.Typeface == gfont.Typeface("Go Mono") {
			mono = append(mono, ff)
		}
	}
	return mono
}
