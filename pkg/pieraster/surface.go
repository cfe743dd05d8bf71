// Package pieraster renders pie charts onto layered RGBA surfaces and
// resolves pointer positions to slices through a color-keyed hit layer.
package pieraster

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var (
	ErrSurfaceSize = errors.New("pieraster: surfaces must be non-nil and share the same bounds")
	ErrClosed      = errors.New("pieraster: chart is closed")
)

// Surfaces are the three layers a chart draws on. Main is shown to the user,
// Hit is never shown and carries one solid key color per slice, Tip is a
// transparent overlay for the tooltip.
type Surfaces struct {
	Main *image.RGBA
	Hit  *image.RGBA
	Tip  *image.RGBA
}

// NewSurfaces allocates three transparent layers of the given size.
func NewSurfaces(width, height int) Surfaces {
	r := image.Rect(0, 0, width, height)
	return Surfaces{
		Main: image.NewRGBA(r),
		Hit:  image.NewRGBA(r),
		Tip:  image.NewRGBA(r),
	}
}

func (s Surfaces) validate() error {
	if s.Main == nil || s.Hit == nil || s.Tip == nil {
		return ErrSurfaceSize
	}
	b := s.Main.Bounds()
	if b.Empty() || s.Hit.Bounds() != b || s.Tip.Bounds() != b {
		return ErrSurfaceSize
	}
	return nil
}

// Layer selects one of the surfaces, or the flattened view of the visible
// ones.
type Layer int

const (
	LayerMain Layer = iota
	LayerHit
	LayerTip
	LayerComposite // main and tooltip over the background
)

// ParseLayer maps "main", "hit", "tip" and "composite" to a Layer.
func ParseLayer(s string) (Layer, bool) {
	switch s {
	case "main":
		return LayerMain, true
	case "hit":
		return LayerHit, true
	case "tip":
		return LayerTip, true
	case "composite", "":
		return LayerComposite, true
	}
	return 0, false
}

// ClientRect is where a surface appears on the host screen, in the host's
// pointer coordinates. A zero Width or Height means one client unit per
// pixel.
type ClientRect struct {
	Left, Top     float64
	Width, Height float64
}

func clearLayer(img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func fillLayer(img *image.RGBA, c color.Color) {
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}
