package pieraster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Tooltip colors and padding.
var (
	colorTipFill = color.RGBA{255, 255, 255, 255}
	colorTipText = color.RGBA{0, 0, 0, 255}
)

const tipPadding = 12 // horizontal padding added to the text width

// textContext holds the face used for tooltip labels.
type textContext struct {
	face     font.Face
	fontSize float64 // points
}

func newTextContext(fontSize float64) (*textContext, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	// Sizes are in points; 96 DPI makes 10pt come out at the same pixel
	// height as a browser canvas font.
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     96,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &textContext{face: face, fontSize: fontSize}, nil
}

func (tc *textContext) measure(text string) float64 {
	return float64(font.MeasureString(tc.face, text)) / 64
}

// callout draws a label box centred horizontally on (x, y) with the text
// baseline at y: a white box as wide as the text plus padding, fontSize+10
// tall, its top half the nominal callout height above y.
func (c *Chart) callout(x, y float64, text string) {
	fs := c.text.fontSize
	width := c.text.measure(text) + tipPadding
	height := fs*2 + 10
	box := rectF{
		x0: x - width/2,
		y0: y - height/2,
		x1: x + width/2,
		y1: y - height/2 + fs + 10,
	}

	c.pen.rect(box)
	c.pen.paint(c.surf.Tip, colorTipFill)
	c.pen.stroke(rectOutline(box), c.opts.StrokeWidth)
	c.pen.paint(c.surf.Tip, c.stroke)

	drawTextCentered(c.surf.Tip, c.text.face, x, y, text, colorTipText)
}

// drawTextCentered draws text centred horizontally on x with its baseline at y.
func drawTextCentered(dst *image.RGBA, face font.Face, x, y float64, text string, c color.Color) {
	width := font.MeasureString(face, text)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(x*64) - width/2,
			Y: fixed.Int26_6(y * 64),
		},
	}
	d.DrawString(text)
}
