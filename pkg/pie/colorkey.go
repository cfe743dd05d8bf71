package pie

import (
	"fmt"
	"image/color"
)

// MaxSlices is the largest slice count that gets distinct color keys.
const MaxSlices = 256*256*256 - 1

// ColorKey identifies a slice on a hit-test surface by its solid color.
type ColorKey [3]uint8

// String returns "r,g,b".
func (k ColorKey) String() string {
	return fmt.Sprintf("%d,%d,%d", k[0], k[1], k[2])
}

// RGBA returns the opaque color used to paint the key.
func (k ColorKey) RGBA() color.RGBA {
	return color.RGBA{R: k[0], G: k[1], B: k[2], A: 0xff}
}

// KeyOf returns the key stored in an RGB pixel value.
func KeyOf(c color.RGBA) ColorKey {
	return ColorKey{c.R, c.G, c.B}
}

// KeyCounter hands out keys in order: channel 0 counts up and carries into
// channel 1, then channel 2. The zero value starts at (0,0,0).
type KeyCounter struct {
	next ColorKey
	n    int
}

// Next returns the current key and advances the counter. It fails once
// MaxSlices keys have been issued.
func (c *KeyCounter) Next() (ColorKey, error) {
	if c.n >= MaxSlices {
		return ColorKey{}, ErrTooManySlices
	}
	k := c.next
	for i := range c.next {
		c.next[i]++
		if c.next[i] != 0 {
			break
		}
	}
	c.n++
	return k, nil
}

// Issued returns how many keys have been handed out.
func (c *KeyCounter) Issued() int { return c.n }

// ColorLookup maps hit-test keys back to slice labels.
type ColorLookup map[ColorKey]string
