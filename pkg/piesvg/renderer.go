package piesvg

import (
	"errors"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
)

// ErrNoContainer is returned when a renderer has nowhere to put its shapes.
var ErrNoContainer = errors.New("piesvg: no container")

// Options controls vector rendering.
type Options struct {
	Stroke string // outline color of every shape
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Stroke: "black",
	}
}

// Renderer emits one shape per slice into a container.
type Renderer struct {
	chart  pie.Chart
	target Container
	opts   Options
}

var _ pie.Renderer = (*Renderer)(nil)

// New returns a renderer for the given geometry that appends to target.
func New(chart pie.Chart, target Container, opts Options) *Renderer {
	if opts.Stroke == "" {
		opts.Stroke = "black"
	}
	return &Renderer{chart: chart, target: target, opts: opts}
}

// Draw appends the shapes for slices to the container, in slice order.
// A single slice covering the whole circle becomes one circle: an arc whose
// start and end coincide does not render.
func (r *Renderer) Draw(slices []pie.Slice) error {
	if r.target == nil {
		return ErrNoContainer
	}
	pie.Logger().Debug("piesvg: draw", "slices", len(slices))

	if pie.IsFullCircle(slices) {
		s := slices[0]
		r.target.Append(Shape{
			Kind:   KindCircle,
			Fill:   s.Color(),
			Stroke: r.opts.Stroke,
			Title:  pie.FormatLabel(s),
			Center: r.chart.Center(),
			R:      r.chart.R,
		})
		return nil
	}

	for _, w := range r.chart.Layout(slices) {
		r.target.Append(Shape{
			Kind:     KindPath,
			Fill:     w.Slice.Color(),
			Stroke:   r.opts.Stroke,
			Title:    w.Label,
			Center:   r.chart.Center(),
			R:        r.chart.R,
			Move:     w.Start,
			End:      w.End,
			LargeArc: w.LargeArc,
			Sweep:    pie.Sweep,
		})
	}
	return nil
}
