package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"

	"github.com/ha1tch/pie-toolkit/pkg/pieraster"
)

// Styles
var (
	styleDefault  = tcell.StyleDefault
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleLabel    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorNavy).Bold(true)
	styleMsgInfo  = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorNavy)
	styleMsgError = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorNavy).Bold(true)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const helpText = "Mouse:Hover  r:Reload  q/Esc:Quit"

// viewport is where the chart sits on screen. Each cell shows two pixels
// stacked vertically, so the chart is pxW pixels wide and pxH = 2*rows
// pixels tall.
type viewport struct {
	left, top  int // top-left cell
	cols, rows int // size in cells
	pxW, pxH   int // size in half-cell pixels
}

// fitChart scales an imgW x imgH image to fit a cols x rows cell area,
// keeping its aspect ratio, and centres it.
func fitChart(cols, rows, imgW, imgH int) viewport {
	if cols <= 0 || rows <= 0 || imgW <= 0 || imgH <= 0 {
		return viewport{}
	}
	scale := math.Min(float64(cols)/float64(imgW), float64(2*rows)/float64(imgH))
	pxW := int(float64(imgW) * scale)
	pxH := int(float64(imgH) * scale)
	pxH -= pxH % 2
	if pxW < 1 || pxH < 2 {
		return viewport{}
	}
	vp := viewport{cols: pxW, rows: pxH / 2, pxW: pxW, pxH: pxH}
	vp.left = (cols - vp.cols) / 2
	vp.top = (rows - vp.rows) / 2
	return vp
}

func (vp viewport) empty() bool { return vp.cols == 0 || vp.rows == 0 }

func (vp viewport) contains(x, y int) bool {
	return x >= vp.left && x < vp.left+vp.cols && y >= vp.top && y < vp.top+vp.rows
}

// placement is the chart rectangle in half-cell units, the client
// coordinate space pointer events use.
func (vp viewport) placement() pieraster.ClientRect {
	return pieraster.ClientRect{
		Left:   float64(vp.left),
		Top:    float64(2 * vp.top),
		Width:  float64(vp.pxW),
		Height: float64(vp.pxH),
	}
}

// pointer returns the pointer event for the centre of cell (x, y).
func (vp viewport) pointer(x, y int) pieraster.PointerEvent {
	return pieraster.PointerEvent{
		ClientX: float64(x) + 0.5,
		ClientY: float64(2*y) + 1,
	}
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	if v.chart != nil && !v.view.empty() {
		v.drawChart()
	}
	v.drawStatusBar(w, h)
}

// drawChart paints the composite image with upper half blocks: the top
// pixel of a cell is the foreground, the bottom pixel the background.
func (v *Viewer) drawChart() {
	src := v.chart.Composite()
	dst := image.NewRGBA(image.Rect(0, 0, v.view.pxW, v.view.pxH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	for row := 0; row < v.view.rows; row++ {
		for col := 0; col < v.view.cols; col++ {
			top := cellColor(dst.RGBAAt(col, 2*row))
			bottom := cellColor(dst.RGBAAt(col, 2*row+1))
			style := styleDefault.Foreground(top).Background(bottom)
			v.screen.SetContent(v.view.left+col, v.view.top+row, '▀', nil, style)
		}
	}
}

// cellColor converts a pixel to a terminal color. Mostly transparent pixels
// show the terminal background.
func cellColor(c color.RGBA) tcell.Color {
	if c.A < 0x80 {
		return tcell.ColorDefault
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func (v *Viewer) drawStatusBar(w, h int) {
	y := h - 1

	// Background
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	// File info
	fileInfo := "[none]"
	if v.file != nil {
		fileInfo = fmt.Sprintf("%s  %d slices", filepath.Base(v.filename), len(v.file.Slices))
	}
	x := v.drawString(1, y, truncate(fileInfo, w/3), styleStatus)

	// Hovered slice
	if v.chart != nil {
		if label, ok := v.chart.Hovered(); ok {
			v.drawString(x+2, y, truncate(label, w/3), styleLabel)
		}
	}

	// Message
	if v.message != "" {
		style := styleMsgInfo
		if v.messageType == MsgError {
			style = styleMsgError
		}
		msg := truncate(v.message, w/3)
		v.drawString(w-runewidth.StringWidth(msg)-1, y, msg, style)
	}

	// Help bar
	y = h - 2
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleDefault)
	}
	v.drawString(1, y, truncate(helpText, w-2), styleHelp)
}

// drawString draws s at (x, y) and returns the column after it.
func (v *Viewer) drawString(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

// truncate shortens s to at most maxWidth display columns.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "…")
}
