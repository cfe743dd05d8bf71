package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

const budget = `{
  "name": "budget",
  "slices": [
    {"pct": 0.5, "color": "red", "label": "Rent"},
    {"pct": 0.25, "color": "green", "label": "Food"},
    {"pct": 0.25, "color": "blue"}
  ]
}`

func TestFitChart(t *testing.T) {
	tests := []struct {
		cols, rows, w, h int
		want             viewport
		description      string
	}{
		{80, 25, 250, 250, viewport{left: 15, top: 0, cols: 50, rows: 25, pxW: 50, pxH: 50}, "height bound"},
		{100, 10, 250, 250, viewport{left: 40, top: 0, cols: 20, rows: 10, pxW: 20, pxH: 20}, "short terminal"},
		{150, 60, 300, 100, viewport{left: 0, top: 17, cols: 150, rows: 25, pxW: 150, pxH: 50}, "width bound"},
		{0, 25, 250, 250, viewport{}, "no columns"},
		{80, 25, 0, 250, viewport{}, "empty image"},
		{1, 1, 250, 250, viewport{}, "too small"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got := fitChart(tt.cols, tt.rows, tt.w, tt.h)
			if got != tt.want {
				t.Errorf("fitChart(%d, %d, %d, %d) = %+v, want %+v", tt.cols, tt.rows, tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestViewportPointer(t *testing.T) {
	vp := fitChart(80, 25, 250, 250)
	if !vp.contains(15, 0) || !vp.contains(64, 24) {
		t.Error("corners of the chart rectangle must be inside")
	}
	if vp.contains(14, 0) || vp.contains(65, 0) || vp.contains(20, 25) {
		t.Error("cells beside the chart rectangle must be outside")
	}

	ev := vp.pointer(40, 18)
	if ev.ClientX != 40.5 || ev.ClientY != 37 {
		t.Errorf("pointer(40, 18) = %+v, want the cell centre (40.5, 37)", ev)
	}
	p := vp.placement()
	if p.Left != 15 || p.Top != 0 || p.Width != 50 || p.Height != 50 {
		t.Errorf("placement = %+v", p)
	}
}

// newTestViewer returns a viewer on an 80x27 simulated screen showing the
// budget chart.
func newTestViewer(t *testing.T) (*Viewer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.json")
	if err := os.WriteFile(path, []byte(budget), 0644); err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 27)

	v := newViewer(screen, DefaultConfig())
	if err := v.load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(v.close)
	return v, path
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func hovered(v *Viewer) string {
	label, ok := v.chart.Hovered()
	if !ok {
		return ""
	}
	return label
}

func TestMouseHover(t *testing.T) {
	v, _ := newTestViewer(t)

	tests := []struct {
		x, y        int
		want        string
		description string
	}{
		{40, 18, "50%: Rent", "bottom half"},
		{31, 8, "25%: Food", "upper left quarter"},
		{50, 5, "25%", "upper right quarter"},
		{15, 0, "", "inside the rectangle, outside the disc"},
		{2, 2, "", "outside the chart rectangle"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			v.handleMouse(tcell.NewEventMouse(tt.x, tt.y, tcell.ButtonNone, tcell.ModNone))
			if got := hovered(v); got != tt.want {
				t.Errorf("mouse at (%d, %d): hovered %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMouseLeaveClearsTooltip(t *testing.T) {
	v, _ := newTestViewer(t)

	v.handleMouse(tcell.NewEventMouse(40, 18, tcell.ButtonNone, tcell.ModNone))
	if !v.inside {
		t.Fatal("pointer should be inside the chart")
	}
	v.handleMouse(tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone))
	if v.inside {
		t.Error("pointer should have left the chart")
	}
	for i := 3; i < len(v.chart.Surfaces().Tip.Pix); i += 4 {
		if v.chart.Surfaces().Tip.Pix[i] != 0 {
			t.Fatal("tooltip layer not cleared on leave")
		}
	}
}

func TestDrawStatusBar(t *testing.T) {
	v, _ := newTestViewer(t)
	v.handleMouse(tcell.NewEventMouse(40, 18, tcell.ButtonNone, tcell.ModNone))
	v.draw()

	status := rowText(v.screen, 26)
	if !strings.Contains(status, "budget.json") {
		t.Errorf("status bar %q lacks the file name", status)
	}
	if !strings.Contains(status, "50%: Rent") {
		t.Errorf("status bar %q lacks the hovered label", status)
	}
	if help := rowText(v.screen, 25); !strings.Contains(help, "q/Esc:Quit") {
		t.Errorf("help bar %q", help)
	}
}

func TestDrawChartCells(t *testing.T) {
	v, _ := newTestViewer(t)
	v.draw()

	r, _, style, _ := v.screen.GetContent(40, 20)
	if r != '▀' {
		t.Fatalf("chart cell rune = %q, want upper half block", r)
	}
	fg, _, _ := style.Decompose()
	red, green, blue := fg.RGB()
	if red < 200 || green > 60 || blue > 60 {
		t.Errorf("cell in the first slice is %d,%d,%d, want red", red, green, blue)
	}

	// Outside the chart rectangle nothing is painted.
	if r, _, _, _ := v.screen.GetContent(2, 2); r != ' ' {
		t.Errorf("cell outside the chart = %q", r)
	}
}

func TestReload(t *testing.T) {
	v, path := newTestViewer(t)
	if err := os.WriteFile(path, []byte(`{"slices": [{"pct": 1, "color": "purple", "label": "All"}]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if quit := v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)); quit {
		t.Fatal("r must not quit")
	}
	if v.message != "Reloaded" || v.messageType != MsgInfo {
		t.Errorf("message = %q (%v)", v.message, v.messageType)
	}
	if n := len(v.chart.Labels()); n != 1 {
		t.Errorf("reloaded chart has %d labels, want 1", n)
	}
	if move, leave := v.events.Handlers(); move != 1 || leave != 1 {
		t.Errorf("handlers after reload = %d/%d, want the old chart deregistered", move, leave)
	}

	v.handleMouse(tcell.NewEventMouse(31, 8, tcell.ButtonNone, tcell.ModNone))
	if got := hovered(v); got != "100%: All" {
		t.Errorf("hovered %q after reload", got)
	}
}

func TestReloadErrorKeepsChart(t *testing.T) {
	v, path := newTestViewer(t)
	old := v.chart
	if err := os.WriteFile(path, []byte(`{"slices": [`), 0644); err != nil {
		t.Fatal(err)
	}

	v.handleKey(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	if v.messageType != MsgError {
		t.Errorf("message type = %v, want MsgError", v.messageType)
	}
	if v.chart != old {
		t.Error("failed reload replaced the chart")
	}
	v.handleMouse(tcell.NewEventMouse(40, 18, tcell.ButtonNone, tcell.ModNone))
	if got := hovered(v); got != "50%: Rent" {
		t.Errorf("hovered %q, want the old chart still live", got)
	}
}

func TestQuitKeys(t *testing.T) {
	v, _ := newTestViewer(t)
	tests := []struct {
		ev          *tcell.EventKey
		want        bool
		description string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true, "q quits"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, "Esc quits"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true, "Ctrl+C quits"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false, "other keys do not"},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if got := v.handleKey(tt.ev); got != tt.want {
				t.Errorf("handleKey = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pieview.toml")

	if got := LoadConfig(path); got != DefaultConfig() {
		t.Errorf("missing file: got %+v, want defaults", got)
	}

	cfg := Config{Stroke: "gray", FontSize: 12, Background: "black", LastFile: "/tmp/a.json", LogFile: "/tmp/pieview.log"}
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatal(err)
	}
	if got := LoadConfig(path); got != cfg {
		t.Errorf("round trip: got %+v, want %+v", got, cfg)
	}

	partial := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(partial, []byte("stroke = \"red\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Stroke = "red"
	if got := LoadConfig(partial); got != want {
		t.Errorf("partial file: got %+v, want %+v", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"Hello", 10, "Hello"},
		{"Hello, World", 5, "Hell…"},
		{"日本語テキスト", 5, "日本…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
