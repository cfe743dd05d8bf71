// Package pie provides the slice model, geometry and label formatting shared
// by the vector and raster pie chart renderers.
package pie

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidPct    = errors.New("pct must be a finite fraction in (0, 1]")
	ErrEmptyColor    = errors.New("slice color is empty")
	ErrEmptyLabel    = errors.New("slice label is empty; omit it instead")
	ErrTooManySlices = errors.New("too many slices for the color key space")
)

// Slice is one wedge of the pie. The zero value is not a valid slice; use
// NewSlice or NewLabeledSlice.
type Slice struct {
	pct      float64
	color    string
	label    string
	hasLabel bool
}

// NewSlice returns an unlabeled slice covering pct of the circle.
func NewSlice(pct float64, color string) (Slice, error) {
	if math.IsNaN(pct) || math.IsInf(pct, 0) || pct <= 0 || pct > 1 {
		return Slice{}, fmt.Errorf("%w: got %v", ErrInvalidPct, pct)
	}
	if color == "" {
		return Slice{}, ErrEmptyColor
	}
	return Slice{pct: pct, color: color}, nil
}

// NewLabeledSlice returns a slice with a label. An empty label is rejected so
// that "no label" has exactly one spelling.
func NewLabeledSlice(pct float64, color, label string) (Slice, error) {
	if label == "" {
		return Slice{}, ErrEmptyLabel
	}
	s, err := NewSlice(pct, color)
	if err != nil {
		return Slice{}, err
	}
	s.label = label
	s.hasLabel = true
	return s, nil
}

// MustSlice is like NewSlice or NewLabeledSlice but panics on error.
// An empty label means no label.
func MustSlice(pct float64, color, label string) Slice {
	var (
		s   Slice
		err error
	)
	if label == "" {
		s, err = NewSlice(pct, color)
	} else {
		s, err = NewLabeledSlice(pct, color, label)
	}
	if err != nil {
		panic(err)
	}
	return s
}

// Pct returns the fraction of the circle covered by the slice.
func (s Slice) Pct() float64 { return s.pct }

// Color returns the fill identifier as supplied by the caller.
func (s Slice) Color() string { return s.color }

// Label returns the slice label and whether one was set.
func (s Slice) Label() (string, bool) { return s.label, s.hasLabel }

// Sum returns the total of the slice fractions.
func Sum(slices []Slice) float64 {
	var total float64
	for _, s := range slices {
		total += s.pct
	}
	return total
}

// Renderer draws a slice list onto whatever surface it owns.
type Renderer interface {
	Draw(slices []Slice) error
}
