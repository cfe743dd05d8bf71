// Package fuzz provides fuzz testing for chart parsing and layout.
// Run with: go test -fuzz=FuzzParseJSON -fuzztime=30s ./tests/fuzz/
package fuzz

import (
	"math"
	"testing"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
	"github.com/ha1tch/pie-toolkit/pkg/piefile"
	"github.com/ha1tch/pie-toolkit/pkg/pieraster"
)

// FuzzParseJSON tests the chart file parser with arbitrary input.
func FuzzParseJSON(f *testing.F) {
	// Seed with valid JSON
	f.Add(`{"slices": [{"pct": 1, "color": "red"}]}`)
	f.Add(`{"width": 100, "height": 80, "slices": [{"pct": 0.5, "color": "red", "label": "a"}, {"pct": 0.5, "color": "#00f"}]}`)
	f.Add(`{"slices": [{"value": 3, "color": "red"}, {"value": 1, "color": "blue"}]}`)

	// Seed with edge cases
	f.Add(``)
	f.Add(`{}`)
	f.Add(`{"slices": []}`)
	f.Add(`{"slices": [{"pct": 0, "color": "red"}]}`)
	f.Add(`{"slices": [{"value": -1, "color": "red"}, {"value": 2, "color": "red"}]}`)
	f.Add(`{"slices": [{"pct": 1e308, "color": "red"}]}`)
	f.Add(`{"slices": null}`)

	f.Fuzz(func(t *testing.T, data string) {
		file, err := piefile.ParseJSON([]byte(data))
		if err != nil {
			return
		}
		// Anything that parses must survive a round trip and a check.
		out, err := piefile.ToJSON(file, false)
		if err != nil {
			t.Fatalf("ToJSON failed on parsed file: %v", err)
		}
		again, err := piefile.ParseJSON(out)
		if err != nil {
			t.Fatalf("reparse failed: %v\n%s", err, out)
		}
		if len(again.Slices) != len(file.Slices) {
			t.Fatalf("round trip changed slice count %d -> %d", len(file.Slices), len(again.Slices))
		}
		_ = piefile.Check(file)
	})
}

// FuzzLayout tests that wedges chain for arbitrary valid fractions.
func FuzzLayout(f *testing.F) {
	f.Add(0.5, 0.25, 0.25)
	f.Add(1.0, 0.0, 0.0)
	f.Add(0.999999, 1e-7, 0.3)
	f.Add(0.1, 0.1, 0.1)

	f.Fuzz(func(t *testing.T, a, b, c float64) {
		var slices []pie.Slice
		for _, p := range []float64{a, b, c} {
			if s, err := pie.NewSlice(p, "red"); err == nil {
				slices = append(slices, s)
			}
		}
		chart := pie.Config{}.Chart()
		wedges := chart.Layout(slices)
		if len(wedges) != len(slices) {
			t.Fatalf("%d wedges for %d slices", len(wedges), len(slices))
		}
		for i, w := range wedges {
			if w.LargeArc != pie.LargeArc(w.Slice.Pct()) {
				t.Errorf("wedge %d: large arc flag %d for pct %v", i, w.LargeArc, w.Slice.Pct())
			}
			if d := w.End.Sub(chart.Center()).Length(); math.Abs(d-chart.R) > 1e-9 {
				t.Errorf("wedge %d: end point %v is %v from the centre", i, w.End, d)
			}
			if i > 0 && w.Start != wedges[i-1].End {
				t.Errorf("wedge %d does not start where wedge %d ended", i, i-1)
			}
		}
	})
}

// FuzzParseColor tests the color parser with arbitrary input.
func FuzzParseColor(f *testing.F) {
	for _, s := range []string{"red", "#fff", "#a0b0c0", "rgb(1,2,3)", "transparent", "", "#", "rgb(", "rgb(,,)"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		// Should not panic
		_, _ = pieraster.ParseColor(s)
	})
}
