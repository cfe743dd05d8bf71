package pie

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Sweep is the arc sweep flag used for every slice: clockwise in screen
// coordinates.
const Sweep = 1

// Config describes a chart area. Zero fields take the defaults of
// DefaultConfig, and zero centre or radius are derived from the size.
type Config struct {
	Width  int     // surface width in pixels
	Height int     // surface height in pixels
	CX     float64 // centre x (0 = Width/2)
	CY     float64 // centre y (0 = Height/2)
	R      float64 // radius (0 = Width/2)
}

// DefaultConfig returns the default 250x250 chart area.
func DefaultConfig() Config {
	return Config{
		Width:  250,
		Height: 250,
	}
}

// Normalize fills in defaults.
func (c Config) Normalize() Config {
	if c.Width == 0 {
		c.Width = 250
	}
	if c.Height == 0 {
		c.Height = 250
	}
	if c.CX == 0 {
		c.CX = float64(c.Width) / 2
	}
	if c.CY == 0 {
		c.CY = float64(c.Height) / 2
	}
	if c.R == 0 {
		c.R = float64(c.Width) / 2
	}
	return c
}

// Chart returns the geometry for the configured area.
func (c Config) Chart() Chart {
	n := c.Normalize()
	return Chart{CX: n.CX, CY: n.CY, R: n.R}
}

// Chart is the fixed geometry of a pie: its centre and radius.
type Chart struct {
	CX, CY float64
	R      float64
}

// Center returns the centre point.
func (c Chart) Center() vec.Vec2 {
	return vec.Vec2{X: c.CX, Y: c.CY}
}

// Angle converts a cumulative fraction into radians.
func (c Chart) Angle(cumPct float64) float64 {
	return cumPct * 2 * math.Pi
}

// PointOnCircle returns the point on the boundary at cumulative fraction
// cumPct, measured clockwise from 3 o'clock.
func (c Chart) PointOnCircle(cumPct float64) vec.Vec2 {
	angle := c.Angle(cumPct)
	return vec.Vec2{
		X: c.CX + c.R*math.Cos(angle),
		Y: c.CY + c.R*math.Sin(angle),
	}
}

// Contains reports whether p lies inside the disc.
func (c Chart) Contains(p vec.Vec2) bool {
	return p.Sub(c.Center()).Length() <= c.R
}

// LargeArc returns the large-arc flag for a slice of the given size.
func LargeArc(pct float64) int {
	if pct > 0.5 {
		return 1
	}
	return 0
}

// IsFullCircle reports whether the list is a single slice covering the whole
// circle. Arc commands cannot express that case.
func IsFullCircle(slices []Slice) bool {
	return len(slices) == 1 && slices[0].pct == 1
}

// Wedge is a slice placed on the circle.
type Wedge struct {
	Index      int
	Slice      Slice
	StartPct   float64 // cumulative fraction before this slice
	EndPct     float64 // cumulative fraction after this slice
	StartAngle float64
	EndAngle   float64
	Start      vec.Vec2 // boundary point at StartPct
	End        vec.Vec2 // boundary point at EndPct
	LargeArc   int
	Label      string
}

// Layout folds the slice list into wedges. Each wedge starts where the
// previous one ended; the first starts at angle 0.
func (c Chart) Layout(slices []Slice) []Wedge {
	wedges := make([]Wedge, 0, len(slices))
	var total float64
	pen := c.PointOnCircle(0)
	for i, s := range slices {
		end := total + s.pct
		endPt := c.PointOnCircle(end)
		wedges = append(wedges, Wedge{
			Index:      i,
			Slice:      s,
			StartPct:   total,
			EndPct:     end,
			StartAngle: c.Angle(total),
			EndAngle:   c.Angle(end),
			Start:      pen,
			End:        endPt,
			LargeArc:   LargeArc(s.pct),
			Label:      FormatLabel(s),
		})
		total = end
		pen = endPt
	}
	return wedges
}
