package pieraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
)

// Options configures raster rendering.
type Options struct {
	Stroke      string     // outline color of slices and the tooltip box
	StrokeWidth float64    // outline width in pixels
	FontSize    float64    // tooltip font size in points
	Background  string     // composite background; "" is transparent
	Placement   ClientRect // where the surfaces sit on the host screen
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Stroke:      "black",
		StrokeWidth: 1,
		FontSize:    10,
	}
}

// Chart is a pie chart drawn on three layers. Slices are painted on the main
// layer and, in a unique solid color each, on the hidden hit layer; pointer
// moves read the hit layer to find the slice under the pointer and draw its
// label on the tooltip layer.
//
// A Chart is not safe for concurrent use. Handlers run on whatever goroutine
// delivers the event, so hosts deliver events and call Draw from one
// goroutine.
type Chart struct {
	chart pie.Chart
	surf  Surfaces
	opts  Options

	stroke     color.RGBA
	background color.RGBA
	colors     palette
	pen        *painter
	mask       *image.Alpha
	text       *textContext

	lookup   pie.ColorLookup
	hovered  string
	hasHover bool

	cancel []func()
	closed bool
}

var _ pie.Renderer = (*Chart)(nil)

// New returns a chart drawing on surfaces. If events is non-nil the
// pointer handlers are registered with it once, here, and removed by Close.
func New(chart pie.Chart, surfaces Surfaces, events EventSource, opts Options) (*Chart, error) {
	if err := surfaces.validate(); err != nil {
		return nil, err
	}
	def := DefaultOptions()
	if opts.Stroke == "" {
		opts.Stroke = def.Stroke
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = def.StrokeWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}

	stroke, err := ParseColor(opts.Stroke)
	if err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}
	var background color.RGBA
	if opts.Background != "" {
		background, err = ParseColor(opts.Background)
		if err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}
	text, err := newTextContext(opts.FontSize)
	if err != nil {
		return nil, fmt.Errorf("tooltip font: %w", err)
	}

	b := surfaces.Main.Bounds()
	c := &Chart{
		chart:      chart,
		surf:       surfaces,
		opts:       opts,
		stroke:     stroke,
		background: background,
		colors:     make(palette),
		pen:        newPainter(b),
		mask:       image.NewAlpha(b),
		text:       text,
		lookup:     make(pie.ColorLookup),
	}

	if events != nil {
		c.cancel = append(c.cancel,
			events.OnPointerMove(c.HandlePointerMove),
			events.OnPointerLeave(c.HandlePointerLeave),
		)
		pie.Logger().Debug("pieraster: handlers registered")
	}
	return c, nil
}

// Close removes the pointer handlers. Further draws fail with ErrClosed.
// Close is idempotent.
func (c *Chart) Close() error {
	if c.closed {
		return nil
	}
	for _, cancel := range c.cancel {
		cancel()
	}
	c.cancel = nil
	c.closed = true
	pie.Logger().Debug("pieraster: handlers removed")
	return nil
}

// Surfaces returns the chart's layers.
func (c *Chart) Surfaces() Surfaces { return c.surf }

// SetPlacement records where the surfaces appear on the host screen.
func (c *Chart) SetPlacement(r ClientRect) { c.opts.Placement = r }

// Draw clears all three layers and paints slices. Every slice color is
// resolved before any layer is touched, so a failed draw leaves the previous
// chart intact.
func (c *Chart) Draw(slices []pie.Slice) error {
	if c.closed {
		return ErrClosed
	}
	if len(slices) > pie.MaxSlices {
		return fmt.Errorf("%w: %d slices, limit %d", pie.ErrTooManySlices, len(slices), pie.MaxSlices)
	}
	fills := make([]color.RGBA, len(slices))
	for i, s := range slices {
		rgba, err := c.colors.resolve(s.Color())
		if err != nil {
			pie.Logger().Warn("pieraster: draw rejected", "slice", i, "err", err)
			return fmt.Errorf("slice %d: %w", i, err)
		}
		fills[i] = rgba
	}

	clearLayer(c.surf.Main)
	clearLayer(c.surf.Hit)
	clearLayer(c.surf.Tip)
	c.hovered, c.hasHover = "", false

	lookup := make(pie.ColorLookup, len(slices))
	var keys pie.KeyCounter
	center := c.chart.Center()
	for _, w := range c.chart.Layout(slices) {
		c.pen.sector(center, c.chart.R, w.StartAngle, w.EndAngle)
		c.pen.paint(c.surf.Main, fills[w.Index])
		c.pen.stroke(sectorOutline(center, c.chart.R, w.StartAngle, w.EndAngle), c.opts.StrokeWidth)
		c.pen.paint(c.surf.Main, c.stroke)

		key, err := keys.Next()
		if err != nil {
			return err
		}
		c.paintHit(center, w, key)
		lookup[key] = w.Label
	}
	c.lookup = lookup

	b := c.surf.Main.Bounds()
	pie.Logger().Debug("pieraster: draw", "slices", len(slices), "width", b.Dx(), "height", b.Dy())
	return nil
}

// paintHit paints the wedge on the hit layer in the key color. Coverage is
// thresholded at one half so edge pixels carry exactly one key and never a
// blend of two.
func (c *Chart) paintHit(center vec.Vec2, w pie.Wedge, key pie.ColorKey) {
	box := sectorBounds(center, c.chart.R, w.StartAngle, w.EndAngle).Intersect(c.mask.Bounds())
	if box.Empty() {
		return
	}
	draw.Draw(c.mask, box, image.Transparent, image.Point{}, draw.Src)
	c.pen.sector(center, c.chart.R, w.StartAngle, w.EndAngle)
	c.pen.paint(c.mask, color.Opaque)

	kc := key.RGBA()
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if c.mask.AlphaAt(x, y).A >= 0x80 {
				c.surf.Hit.SetRGBA(x, y, kc)
			}
		}
	}
}

// Lookup returns the label of the slice painted at pixel (x, y) of the hit
// layer. Unpainted pixels and pixels outside the layer have no label.
func (c *Chart) Lookup(x, y int) (string, bool) {
	if !(image.Point{X: x, Y: y}).In(c.surf.Hit.Bounds()) {
		return "", false
	}
	px := c.surf.Hit.RGBAAt(x, y)
	if px.A != 0xff {
		return "", false
	}
	label, ok := c.lookup[pie.KeyOf(px)]
	return label, ok
}

// Labels returns a copy of the color key table built by the last draw.
func (c *Chart) Labels() pie.ColorLookup {
	out := make(pie.ColorLookup, len(c.lookup))
	for k, v := range c.lookup {
		out[k] = v
	}
	return out
}

// Hovered returns the label shown by the last pointer move, if any.
func (c *Chart) Hovered() (string, bool) {
	return c.hovered, c.hasHover
}

// toLocal maps client coordinates to surface pixel coordinates through the
// placement rectangle.
func (c *Chart) toLocal(ev PointerEvent) (float64, float64) {
	p := c.opts.Placement
	b := c.surf.Hit.Bounds()
	sx, sy := 1.0, 1.0
	if p.Width > 0 && p.Height > 0 {
		sx = float64(b.Dx()) / p.Width
		sy = float64(b.Dy()) / p.Height
	}
	return (ev.ClientX-p.Left)*sx + float64(b.Min.X), (ev.ClientY-p.Top)*sy + float64(b.Min.Y)
}

// HandlePointerMove clears the tooltip layer and, if the pointer is over a
// slice, draws that slice's label at the pointer.
func (c *Chart) HandlePointerMove(ev PointerEvent) {
	x, y := c.toLocal(ev)
	clearLayer(c.surf.Tip)
	c.hovered, c.hasHover = "", false

	label, ok := c.Lookup(int(math.Floor(x)), int(math.Floor(y)))
	if !ok {
		return
	}
	c.hovered, c.hasHover = label, true
	c.callout(x, y, label)
	pie.Logger().Debug("pieraster: hover", "x", x, "y", y, "label", label)
}

// HandlePointerLeave clears the tooltip layer.
func (c *Chart) HandlePointerLeave() {
	clearLayer(c.surf.Tip)
	c.hovered, c.hasHover = "", false
}

// Composite returns the main and tooltip layers flattened over the
// background color.
func (c *Chart) Composite() *image.RGBA {
	b := c.surf.Main.Bounds()
	out := image.NewRGBA(b)
	fillLayer(out, c.background)
	draw.Draw(out, b, c.surf.Main, b.Min, draw.Over)
	draw.Draw(out, b, c.surf.Tip, b.Min, draw.Over)
	return out
}

// Image returns the requested layer.
func (c *Chart) Image(l Layer) *image.RGBA {
	switch l {
	case LayerHit:
		return c.surf.Hit
	case LayerTip:
		return c.surf.Tip
	case LayerComposite:
		return c.Composite()
	}
	return c.surf.Main
}

// WritePNG encodes a layer as PNG.
func (c *Chart) WritePNG(w io.Writer, l Layer) error {
	return png.Encode(w, c.Image(l))
}
