// Package piefile reads and writes pie chart files.
//
// A chart file is JSON:
//
//	{
//	  "name": "budget",
//	  "width": 250, "height": 250,
//	  "slices": [
//	    {"pct": 0.5, "color": "red", "label": "Rent"},
//	    {"pct": 0.5, "color": "#336699"}
//	  ]
//	}
//
// cx, cy and r are optional. Slices may give "value" instead of "pct" when
// every slice does; values are then scaled to fractions of their total.
package piefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
)

var (
	ErrMixedWeights = errors.New("piefile: slices mix pct and value")
	ErrNoWeight     = errors.New("piefile: slice has neither pct nor value")
	ErrZeroTotal    = errors.New("piefile: slice values sum to zero")
)

// File is a parsed chart file.
type File struct {
	Name   string
	Config pie.Config
	Slices []pie.Slice
}

// Chart returns the chart geometry with defaults applied.
func (f *File) Chart() pie.Chart {
	return f.Config.Chart()
}

// jsonChart is the JSON representation of a chart file.
type jsonChart struct {
	Name   string      `json:"name,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	CX     float64     `json:"cx,omitempty"`
	CY     float64     `json:"cy,omitempty"`
	R      float64     `json:"r,omitempty"`
	Slices []jsonSlice `json:"slices"`
}

type jsonSlice struct {
	Pct   *float64 `json:"pct,omitempty"`
	Value *float64 `json:"value,omitempty"`
	Color string   `json:"color"`
	Label string   `json:"label,omitempty"`
}

// ParseJSON parses a chart file.
func ParseJSON(data []byte) (*File, error) {
	var j jsonChart
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}

	pcts, err := weights(j.Slices)
	if err != nil {
		return nil, err
	}

	f := &File{
		Name: j.Name,
		Config: pie.Config{
			Width:  j.Width,
			Height: j.Height,
			CX:     j.CX,
			CY:     j.CY,
			R:      j.R,
		},
		Slices: make([]pie.Slice, 0, len(j.Slices)),
	}
	for i, js := range j.Slices {
		var s pie.Slice
		if js.Label != "" {
			s, err = pie.NewLabeledSlice(pcts[i], js.Color, js.Label)
		} else {
			s, err = pie.NewSlice(pcts[i], js.Color)
		}
		if err != nil {
			return nil, fmt.Errorf("slice %d: %w", i, err)
		}
		f.Slices = append(f.Slices, s)
	}
	return f, nil
}

// weights returns each slice's fraction. Either every slice has a pct, or
// every slice has a value and the values are scaled by their total.
func weights(slices []jsonSlice) ([]float64, error) {
	var withPct, withValue int
	for i, s := range slices {
		switch {
		case s.Pct != nil && s.Value != nil:
			return nil, fmt.Errorf("slice %d: %w", i, ErrMixedWeights)
		case s.Pct != nil:
			withPct++
		case s.Value != nil:
			withValue++
		default:
			return nil, fmt.Errorf("slice %d: %w", i, ErrNoWeight)
		}
	}
	if withPct > 0 && withValue > 0 {
		return nil, ErrMixedWeights
	}

	out := make([]float64, len(slices))
	if withPct > 0 {
		for i, s := range slices {
			out[i] = *s.Pct
		}
		return out, nil
	}

	var total float64
	for _, s := range slices {
		total += *s.Value
	}
	if len(slices) > 0 && total <= 0 {
		return nil, ErrZeroTotal
	}
	for i, s := range slices {
		out[i] = *s.Value / total
	}
	return out, nil
}

// ToJSON converts a chart file to JSON. Slices are always written with pct.
func ToJSON(f *File, pretty bool) ([]byte, error) {
	j := jsonChart{
		Name:   f.Name,
		Width:  f.Config.Width,
		Height: f.Config.Height,
		CX:     f.Config.CX,
		CY:     f.Config.CY,
		R:      f.Config.R,
		Slices: make([]jsonSlice, 0, len(f.Slices)),
	}
	for _, s := range f.Slices {
		pct := s.Pct()
		label, _ := s.Label()
		j.Slices = append(j.Slices, jsonSlice{
			Pct:   &pct,
			Color: s.Color(),
			Label: label,
		})
	}

	if pretty {
		return json.MarshalIndent(j, "", "  ")
	}
	return json.Marshal(j)
}

// ReadFile reads and parses a chart file.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = path
	}
	return f, nil
}

// WriteFile writes a chart file as indented JSON.
func WriteFile(path string, f *File) error {
	data, err := ToJSON(f, true)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
