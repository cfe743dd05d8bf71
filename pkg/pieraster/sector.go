package pieraster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/vec"
)

// painter builds one path at a time in surface coordinates and paints it.
// It is reset after every paint.
type painter struct {
	z      *vector.Rasterizer
	bounds image.Rectangle
}

func newPainter(b image.Rectangle) *painter {
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return &painter{z: z, bounds: b}
}

func (p *painter) local(v vec.Vec2) (float32, float32) {
	return float32(v.X - float64(p.bounds.Min.X)), float32(v.Y - float64(p.bounds.Min.Y))
}

func (p *painter) moveTo(v vec.Vec2) {
	x, y := p.local(v)
	p.z.MoveTo(x, y)
}

func (p *painter) lineTo(v vec.Vec2) {
	x, y := p.local(v)
	p.z.LineTo(x, y)
}

func (p *painter) cubeTo(c1, c2, to vec.Vec2) {
	x1, y1 := p.local(c1)
	x2, y2 := p.local(c2)
	x3, y3 := p.local(to)
	p.z.CubeTo(x1, y1, x2, y2, x3, y3)
}

// paint composites the current path onto dst in color c and starts a new
// path.
func (p *painter) paint(dst draw.Image, c color.Color) {
	p.z.Draw(dst, p.bounds, image.NewUniform(c), p.bounds.Min)
	p.z.Reset(p.bounds.Dx(), p.bounds.Dy())
	p.z.DrawOp = draw.Over
}

func polar(center vec.Vec2, r, angle float64) vec.Vec2 {
	return vec.Vec2{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)}
}

// arc appends a circular arc from a0 to a1 as cubic Béziers of at most a
// quarter turn each. The current point must already be at a0.
func (p *painter) arc(center vec.Vec2, r, a0, a1 float64) {
	delta := a1 - a0
	n := int(math.Ceil(math.Abs(delta) / (math.Pi / 2)))
	if n == 0 {
		return
	}
	step := delta / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4) * r
	for i := 0; i < n; i++ {
		t0 := a0 + float64(i)*step
		t1 := t0 + step
		p0 := polar(center, r, t0)
		p3 := polar(center, r, t1)
		c1 := p0.Add(vec.Vec2{X: -math.Sin(t0), Y: math.Cos(t0)}.Mul(k))
		c2 := p3.Sub(vec.Vec2{X: -math.Sin(t1), Y: math.Cos(t1)}.Mul(k))
		p.cubeTo(c1, c2, p3)
	}
}

// sector adds a pie wedge: arc from a0 to a1, a line back to the centre,
// closed.
func (p *painter) sector(center vec.Vec2, r, a0, a1 float64) {
	p.moveTo(polar(center, r, a0))
	p.arc(center, r, a0, a1)
	p.lineTo(center)
	p.z.ClosePath()
}

func (p *painter) rect(r rectF) {
	p.moveTo(vec.Vec2{X: r.x0, Y: r.y0})
	p.lineTo(vec.Vec2{X: r.x1, Y: r.y0})
	p.lineTo(vec.Vec2{X: r.x1, Y: r.y1})
	p.lineTo(vec.Vec2{X: r.x0, Y: r.y1})
	p.z.ClosePath()
}

// stroke adds a ribbon of the given width along the polyline. Each segment
// is a rectangle extended by half the width at both ends, which covers the
// joins. All ribbons wind the same way so overlaps do not cancel.
func (p *painter) stroke(pts []vec.Vec2, width float64) {
	hw := width / 2
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		d := b.Sub(a)
		l := d.Length()
		if l == 0 {
			continue
		}
		d = d.Mul(1 / l)
		n := vec.Vec2{X: -d.Y, Y: d.X}.Mul(hw)
		a = a.Sub(d.Mul(hw))
		b = b.Add(d.Mul(hw))
		p.moveTo(a.Add(n))
		p.lineTo(b.Add(n))
		p.lineTo(b.Sub(n))
		p.lineTo(a.Sub(n))
		p.z.ClosePath()
	}
}

// sectorOutline flattens a wedge outline into a closed polyline with
// segments of about two pixels along the arc.
func sectorOutline(center vec.Vec2, r, a0, a1 float64) []vec.Vec2 {
	n := int(math.Ceil(math.Abs(a1-a0) * r / 2))
	if n < 1 {
		n = 1
	}
	pts := make([]vec.Vec2, 0, n+3)
	for i := 0; i <= n; i++ {
		pts = append(pts, polar(center, r, a0+(a1-a0)*float64(i)/float64(n)))
	}
	return append(pts, center, pts[0])
}

func rectOutline(r rectF) []vec.Vec2 {
	return []vec.Vec2{
		{X: r.x0, Y: r.y0}, {X: r.x1, Y: r.y0},
		{X: r.x1, Y: r.y1}, {X: r.x0, Y: r.y1},
		{X: r.x0, Y: r.y0},
	}
}

// sectorBounds returns the pixel rectangle that can hold the wedge: the
// centre, both arc ends and every axis crossing of the arc, padded by one
// pixel.
func sectorBounds(center vec.Vec2, r, a0, a1 float64) image.Rectangle {
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	pts := []vec.Vec2{center, polar(center, r, a0), polar(center, r, a1)}
	quarter := math.Pi / 2
	for k := math.Ceil(a0 / quarter); k*quarter <= a1; k++ {
		pts = append(pts, polar(center, r, k*quarter))
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, q := range pts {
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
		maxX = math.Max(maxX, q.X)
		maxY = math.Max(maxY, q.Y)
	}
	return image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
}

type rectF struct {
	x0, y0, x1, y1 float64
}
