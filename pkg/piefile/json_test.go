package piefile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tdewolff/test"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
)

const budget = `{
  "name": "budget",
  "width": 300,
  "height": 200,
  "slices": [
    {"pct": 0.5, "color": "red", "label": "Rent"},
    {"pct": 0.25, "color": "green"},
    {"pct": 0.25, "color": "#0000ff", "label": "Other"}
  ]
}`

func TestParseJSON(t *testing.T) {
	f, err := ParseJSON([]byte(budget))
	test.Error(t, err)

	test.String(t, f.Name, "budget")
	test.T(t, f.Config, pie.Config{Width: 300, Height: 200})
	test.T(t, f.Chart(), pie.Chart{CX: 150, CY: 100, R: 150})
	test.T(t, len(f.Slices), 3)

	labels := make([]string, len(f.Slices))
	for i, s := range f.Slices {
		labels[i] = pie.FormatLabel(s)
	}
	test.T(t, labels, []string{"50%: Rent", "25%", "25%: Other"})
	test.String(t, f.Slices[2].Color(), "#0000ff")
}

func TestParseJSONValues(t *testing.T) {
	f, err := ParseJSON([]byte(`{"slices": [
		{"value": 30, "color": "red"},
		{"value": 10, "color": "blue"}
	]}`))
	test.Error(t, err)
	test.Float(t, f.Slices[0].Pct(), 0.75)
	test.Float(t, f.Slices[1].Pct(), 0.25)
	test.T(t, Check(f), []string(nil))
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
	}{
		{"mixed", `{"slices": [{"pct": 0.5, "color": "red"}, {"value": 1, "color": "red"}]}`, ErrMixedWeights},
		{"both", `{"slices": [{"pct": 1, "value": 1, "color": "red"}]}`, ErrMixedWeights},
		{"neither", `{"slices": [{"color": "red"}]}`, ErrNoWeight},
		{"zero total", `{"slices": [{"value": 0, "color": "red"}]}`, ErrZeroTotal},
		{"bad pct", `{"slices": [{"pct": 1.5, "color": "red"}]}`, pie.ErrInvalidPct},
		{"zero pct", `{"slices": [{"pct": 0, "color": "red"}]}`, pie.ErrInvalidPct},
		{"no color", `{"slices": [{"pct": 1}]}`, pie.ErrEmptyColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.data))
			test.That(t, errors.Is(err, tt.err), "got", err)
		})
	}

	_, err := ParseJSON([]byte(`{"slices": [`))
	test.That(t, err != nil, "truncated JSON must fail")
}

func TestToJSONRoundTrip(t *testing.T) {
	f, err := ParseJSON([]byte(budget))
	test.Error(t, err)

	data, err := ToJSON(f, false)
	test.Error(t, err)
	test.That(t, !strings.Contains(string(data), `"value"`))

	g, err := ParseJSON(data)
	test.Error(t, err)
	test.T(t, g, f)
}

func TestToJSONPretty(t *testing.T) {
	f := &File{Slices: []pie.Slice{pie.MustSlice(1, "purple", "All")}}
	data, err := ToJSON(f, true)
	test.Error(t, err)
	test.String(t, string(data), `{
  "slices": [
    {
      "pct": 1,
      "color": "purple",
      "label": "All"
    }
  ]
}`)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.json")
	test.Error(t, os.WriteFile(path, []byte(`{"slices": [{"pct": 1, "color": "red"}]}`), 0644))

	f, err := ReadFile(path)
	test.Error(t, err)
	test.String(t, f.Name, path, "unnamed files take their path")

	out := filepath.Join(dir, "out.json")
	test.Error(t, WriteFile(out, f))
	g, err := ReadFile(out)
	test.Error(t, err)
	test.T(t, g.Slices, f.Slices)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	test.That(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	test.Error(t, os.WriteFile(bad, []byte(`{"slices": [{"pct": 2, "color": "red"}]}`), 0644))
	_, err = ReadFile(bad)
	test.That(t, errors.Is(err, pie.ErrInvalidPct))
	test.That(t, strings.HasPrefix(err.Error(), bad))
}

func TestCheck(t *testing.T) {
	clean, err := ParseJSON([]byte(budget))
	test.Error(t, err)
	clean.Config = pie.Config{}
	test.T(t, len(Check(clean)), 0)

	tests := []struct {
		name string
		file *File
		want string
	}{
		{"empty", &File{}, "chart has no slices"},
		{"short sum", &File{Slices: []pie.Slice{pie.MustSlice(0.5, "red", "")}}, "slice percentages sum to 0.5, not 1"},
		{"off canvas", &File{
			Config: pie.Config{Width: 100, Height: 100, R: 80},
			Slices: []pie.Slice{pie.MustSlice(1, "red", "")},
		}, "circle at (50, 50) r=80 does not fit 100x100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.file)
			test.T(t, len(got), 1, got)
			test.String(t, got[0], tt.want)
		})
	}

	// Floating-point drift well inside the tolerance is fine.
	tenths := make([]pie.Slice, 10)
	for i := range tenths {
		tenths[i] = pie.MustSlice(0.1, "red", "")
	}
	test.T(t, len(Check(&File{Slices: tenths})), 0)
}
