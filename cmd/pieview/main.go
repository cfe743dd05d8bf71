// Command pieview is a terminal viewer for pie chart files. Hovering a slice
// with the mouse shows its label.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/viper"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
	"github.com/ha1tch/pie-toolkit/pkg/piefile"
	"github.com/ha1tch/pie-toolkit/pkg/pieraster"
)

// Config holds persistent viewer settings
type Config struct {
	Stroke     string  // slice outline color
	FontSize   float64 // tooltip font size in points
	Background string  // chart background
	LastFile   string  // last opened chart
	LogFile    string  // debug log destination; empty disables logging
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Stroke:     "black",
		FontSize:   10,
		Background: "white",
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pieview.toml"
	}
	return filepath.Join(home, ".pieview.toml")
}

// LoadConfig loads configuration from a TOML file. Missing files and
// missing keys fall back to the defaults.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("stroke", cfg.Stroke)
	v.SetDefault("font_size", cfg.FontSize)
	v.SetDefault("background", cfg.Background)
	if err := v.ReadInConfig(); err != nil {
		return cfg
	}
	cfg.Stroke = v.GetString("stroke")
	cfg.FontSize = v.GetFloat64("font_size")
	cfg.Background = v.GetString("background")
	cfg.LastFile = v.GetString("last_file")
	cfg.LogFile = v.GetString("log_file")
	return cfg
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, cfg Config) error {
	v := viper.New()
	v.Set("stroke", cfg.Stroke)
	v.Set("font_size", cfg.FontSize)
	v.Set("background", cfg.Background)
	v.Set("last_file", cfg.LastFile)
	if cfg.LogFile != "" {
		v.Set("log_file", cfg.LogFile)
	}
	return v.WriteConfigAs(path)
}

// MessageType for status messages
type MessageType int

const (
	MsgInfo  MessageType = iota
	MsgError             // shown in red
)

// Viewer holds all viewer state
type Viewer struct {
	screen   tcell.Screen
	config   Config
	filename string
	file     *piefile.File

	events *pieraster.Dispatcher
	chart  *pieraster.Chart
	view   viewport
	inside bool // pointer is over the chart rectangle

	message     string
	messageType MessageType
}

func newViewer(screen tcell.Screen, cfg Config) *Viewer {
	return &Viewer{
		screen: screen,
		config: cfg,
		events: pieraster.NewDispatcher(),
	}
}

func main() {
	cfg := LoadConfig(ConfigPath())

	filename := cfg.LastFile
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}
	if filename == "" {
		fmt.Fprintln(os.Stderr, "Usage: pieview <chart.json>")
		os.Exit(1)
	}

	// The screen owns stderr, so debug output goes to a file.
	if cfg.LogFile != "" {
		lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log %s: %v\n", cfg.LogFile, err)
			os.Exit(1)
		}
		defer lf.Close()
		pie.SetLogger(slog.New(slog.NewTextHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.Clear()

	v := newViewer(screen, cfg)
	if err := v.load(filename); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", filename, err)
		os.Exit(1)
	}

	v.run()
	v.close()
	screen.Fini()

	v.config.LastFile, _ = filepath.Abs(v.filename)
	if err := SaveConfig(ConfigPath(), v.config); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
	}
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.relayout()
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		case *tcell.EventMouse:
			v.handleMouse(ev)
		}
	}
}

// load reads a chart file and draws it on a fresh chart. On error the
// current chart stays on screen.
func (v *Viewer) load(path string) error {
	f, err := piefile.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := f.Config.Normalize()
	chart, err := pieraster.New(f.Chart(), pieraster.NewSurfaces(cfg.Width, cfg.Height), v.events, pieraster.Options{
		Stroke:     v.config.Stroke,
		FontSize:   v.config.FontSize,
		Background: v.config.Background,
	})
	if err != nil {
		return err
	}
	if err := chart.Draw(f.Slices); err != nil {
		chart.Close()
		return err
	}

	v.close()
	v.filename = path
	v.file = f
	v.chart = chart
	v.inside = false
	v.relayout()
	return nil
}

func (v *Viewer) close() {
	if v.chart != nil {
		v.chart.Close()
		v.chart = nil
	}
}

// relayout fits the chart into the screen above the status lines and tells
// the chart where it now sits.
func (v *Viewer) relayout() {
	if v.chart == nil {
		return
	}
	w, h := v.screen.Size()
	b := v.chart.Surfaces().Main.Bounds()
	v.view = fitChart(w, h-2, b.Dx(), b.Dy())
	v.chart.SetPlacement(v.view.placement())
}

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			if err := v.load(v.filename); err != nil {
				v.showMessage(err.Error(), MsgError)
			} else {
				v.showMessage("Reloaded", MsgInfo)
			}
		}
	}
	return false
}

// handleMouse turns terminal mouse motion into pointer events. Leaving the
// chart rectangle is a pointer-leave.
func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	if v.chart == nil {
		return
	}
	x, y := ev.Position()
	if v.view.contains(x, y) {
		v.inside = true
		v.events.PointerMove(v.view.pointer(x, y))
		return
	}
	if v.inside {
		v.inside = false
		v.events.PointerLeave()
	}
}

func (v *Viewer) showMessage(msg string, msgType MessageType) {
	v.message = msg
	v.messageType = msgType
}
