// Package piesvg renders pie charts as vector shapes and writes them as SVG.
package piesvg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"seehuhn.de/go/geom/vec"
)

// Kind distinguishes the shapes a renderer emits.
type Kind int

const (
	KindPath   Kind = iota // closed wedge path
	KindCircle             // full circle, used when one slice covers everything
)

// Shape is one emitted element: a wedge path or a full circle.
type Shape struct {
	Kind   Kind
	Fill   string
	Stroke string
	Title  string // hover title

	Center vec.Vec2
	R      float64

	// Path only.
	Move     vec.Vec2 // pen position at the start of the arc
	End      vec.Vec2 // arc end point
	LargeArc int
	Sweep    int
}

// D returns the SVG path data for a wedge. It is empty for circles.
func (s Shape) D() string {
	if s.Kind != KindPath {
		return ""
	}
	return fmt.Sprintf("M%s %s A %s %s, 0, %d, %d, %s %s L %s %s Z",
		num(s.Move.X), num(s.Move.Y),
		num(s.R), num(s.R), s.LargeArc, s.Sweep, num(s.End.X), num(s.End.Y),
		num(s.Center.X), num(s.Center.Y))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Container receives shapes in drawing order.
type Container interface {
	Append(Shape)
}

// Document is an in-memory SVG document.
type Document struct {
	Width  int
	Height int
	Class  string // class attribute on the root element
	Shapes []Shape
}

// NewDocument returns an empty document of the given size.
func NewDocument(width, height int) *Document {
	return &Document{Width: width, Height: height, Class: "svg-pie"}
}

// Append adds a shape to the document.
func (d *Document) Append(s Shape) {
	d.Shapes = append(d.Shapes, s)
}

// Reset drops all shapes.
func (d *Document) Reset() {
	d.Shapes = d.Shapes[:0]
}

// WriteTo writes the document as SVG. Each shape is wrapped in a group that
// carries its title.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	var ns []string
	if d.Class != "" {
		ns = append(ns, fmt.Sprintf(`class="%s"`, html.EscapeString(d.Class)))
	}
	canvas.Start(d.Width, d.Height, ns...)
	for _, s := range d.Shapes {
		canvas.Group(`class="slice"`)
		canvas.Title(s.Title)
		paint := []string{
			fmt.Sprintf(`fill="%s"`, html.EscapeString(s.Fill)),
			fmt.Sprintf(`stroke="%s"`, html.EscapeString(s.Stroke)),
		}
		switch s.Kind {
		case KindCircle:
			// svgo only takes integer circles.
			fmt.Fprintf(canvas.Writer, `<circle cx="%s" cy="%s" r="%s" %s %s/>`+"\n",
				num(s.Center.X), num(s.Center.Y), num(s.R), paint[0], paint[1])
		default:
			canvas.Path(s.D(), paint...)
		}
		canvas.Gend()
	}
	canvas.End()
	return buf.WriteTo(w)
}

// String returns the SVG text.
func (d *Document) String() string {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.String()
}
