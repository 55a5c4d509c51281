package view

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-universe/model"
	"github.com/sheikhrachel/go-universe/utils"
)

const (
	viewHeader   = "header"
	viewStatus   = "status"
	viewUniverse = "universe"
	viewHelp     = "help"

	leftColumnWidth = 28
	minWindowHeight = 12
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is an interactive terminal front end for a grid. Every grid
// access happens on the gocui main loop goroutine.
type ConsoleUI struct {
	grid  *model.Grid
	gui   *gocui.Gui
	keys  []keyBinding
	stats *utils.Stats
	rng   *utils.RNG

	density  float64
	interval time.Duration

	generation int
	stopRun    chan struct{}

	liveFiller string
	deadFiller string
}

// NewConsoleUI builds the terminal UI around grid
func NewConsoleUI(grid *model.Grid, cfg utils.Config) (*ConsoleUI, error) {
	gui, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to create gui")
	}

	t := &ConsoleUI{
		grid:       grid,
		gui:        gui,
		stats:      utils.NewStats(),
		rng:        utils.NewRNG(cfg.Seed),
		density:    cfg.RandomDensity,
		interval:   cfg.FrameRate,
		liveFiller: aurora.Green("█").String(),
		deadFiller: "░",
	}
	t.gui.Mouse = true
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'q', "Q", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Clear", t.cmdClear, ""},
		{'w', "W", "Random", t.cmdRandom, ""},
		{'g', "G", "Glider", t.cmdGlider, ""},
		{'p', "P", "Pulsar", t.cmdPulsar, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdToggle, viewUniverse},
	}
	t.gui.SetManagerFunc(t.layout)

	for _, kb := range t.keys {
		h := kb.handler
		if err := t.gui.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error {
			return h(v)
		}); err != nil {
			t.gui.Close()
			return nil, errors.Wrapf(err, "[NewConsoleUI] failed to bind key %s", kb.name)
		}
	}

	return t, nil
}

// Start runs the UI until the user quits
func (t *ConsoleUI) Start() error {
	defer t.gui.Close()
	defer t.halt()
	if err := t.gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] main loop failed")
	}
	return nil
}

func (t *ConsoleUI) step() {
	start := time.Now()
	t.grid.Tick()
	t.generation++
	t.stats.Update(t.generation, t.grid.LiveCells(), time.Since(start))
}

// halt stops a running simulation; only called on the gui goroutine
func (t *ConsoleUI) halt() {
	if t.stopRun != nil {
		close(t.stopRun)
		t.stopRun = nil
	}
}

func (t *ConsoleUI) run() {
	if t.stopRun != nil {
		return
	}
	stop := make(chan struct{})
	t.stopRun = stop
	interval := t.interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.gui.Update(func(*gocui.Gui) error {
					select {
					case <-stop:
					default:
						t.step()
					}
					return nil
				})
			}
		}
	}()
}

func (t *ConsoleUI) renderUniverse(v *gocui.View) {
	v.Clear()
	maxW, maxH := v.Size()
	width, height := int(t.grid.Width()), int(t.grid.Height())
	crop := width > maxW || height > maxH

	var b bytes.Buffer
	for row := 0; row < height && row < maxH; row++ {
		if row != 0 {
			b.WriteByte('\n')
		}
		if crop && row == maxH-1 {
			b.WriteString(aurora.Red("The universe is larger than the view").String())
			break
		}
		for col := 0; col < width && col < maxW; col++ {
			cell, err := t.grid.Cell(uint32(row), uint32(col))
			if err == nil && cell == model.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(v *gocui.View) {
	mode := aurora.Blue("waiting").String()
	if t.stopRun != nil {
		mode = aurora.Cyan("running").String()
	}
	v.Clear()
	_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", t.grid.Width(), t.grid.Height()))
	_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", t.interval))
	_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", t.generation))
	_, _ = fmt.Fprintln(v, renderProp("Live cells", "%v", t.grid.LiveCells()))
	_, _ = fmt.Fprintln(v, renderProp("Tick time", "%v", t.stats.LastTickDuration.Round(time.Microsecond)))
	_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", mode))
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Green(name).String()+": "+valueFormat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.header(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewUniverse)
		_ = g.DeleteView(viewHelp)
		return nil
	}
	if err := t.header(g, 2, "Conway's Game of Life"); err != nil {
		return err
	}

	v, err := g.SetView(viewStatus, 0, 3, leftColumnWidth, maxY-4)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Status"
	t.renderStatus(v)

	v, err = g.SetView(viewUniverse, leftColumnWidth+1, 3, maxX-1, maxY-4)
	if err != nil && err != gocui.ErrUnknownView {
		return err
	}
	v.Title = "Universe"
	t.renderUniverse(v)

	v, err = g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		names := make([]string, 0, len(t.keys))
		for _, k := range t.keys {
			names = append(names, aurora.Green(k.name).String()+": "+k.descr)
		}
		_, _ = fmt.Fprintln(v, "KEYS: "+strings.Join(names, ", "))
	}
	return nil
}

func (t *ConsoleUI) header(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := max(0, (maxX-len(text))/2)
	_, _ = fmt.Fprintln(v, strings.Repeat(" ", pad)+text)
	return nil
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	t.step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.halt()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.halt()
	t.grid.ResetAllDead()
	t.generation = 0
	return nil
}

func (t *ConsoleUI) cmdRandom(_ *gocui.View) error {
	t.grid.Reset(t.rng.Seed(t.density))
	t.generation = 0
	return nil
}

func (t *ConsoleUI) cmdGlider(_ *gocui.View) error {
	t.grid.InsertGlider(t.grid.Height()/2, t.grid.Width()/2)
	return nil
}

func (t *ConsoleUI) cmdPulsar(_ *gocui.View) error {
	t.grid.InsertPulsar(t.grid.Height()/2, t.grid.Width()/2)
	return nil
}

func (t *ConsoleUI) cmdToggle(v *gocui.View) error {
	col, row := v.Cursor()
	ox, oy := v.Origin()
	// clicks outside the grid are ignored
	_ = t.grid.ToggleCell(uint32(row+oy), uint32(col+ox))
	return nil
}
