package pieraster

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("pieraster: unknown color")

// ParseColor resolves a CSS-style color: a named color ("red"), "#rgb",
// "#rrggbb", "rgb(r, g, b)" or "transparent".
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	switch {
	case name == "transparent":
		return color.RGBA{}, nil
	case strings.HasPrefix(name, "#"):
		c, err := colorful.Hex(name)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
	case strings.HasPrefix(name, "rgb(") && strings.HasSuffix(name, ")"):
		parts := strings.Split(name[len("rgb("):len(name)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
			}
			ch[i] = uint8(v)
		}
		return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// palette caches parsed slice colors across draws.
type palette map[string]color.RGBA

func (p palette) resolve(s string) (color.RGBA, error) {
	if c, ok := p[s]; ok {
		return c, nil
	}
	c, err := ParseColor(s)
	if err != nil {
		return color.RGBA{}, err
	}
	p[s] = c
	return c, nil
}
