package piefile

import (
	"fmt"
	"math"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
)

// SumTolerance is how far the slice total may drift from 1 before Check
// warns about it.
const SumTolerance = 1e-9

// Check reports problems that do not stop a chart from drawing but are
// probably mistakes. An empty result means the file is clean.
func Check(f *File) []string {
	var warnings []string

	if len(f.Slices) == 0 {
		warnings = append(warnings, "chart has no slices")
	}
	if len(f.Slices) > pie.MaxSlices {
		warnings = append(warnings, fmt.Sprintf("%d slices exceed the raster limit of %d", len(f.Slices), pie.MaxSlices))
	}
	if len(f.Slices) > 0 {
		if sum := pie.Sum(f.Slices); math.Abs(sum-1) > SumTolerance {
			warnings = append(warnings, fmt.Sprintf("slice percentages sum to %v, not 1", sum))
		}
	}

	cfg := f.Config.Normalize()
	if cfg.Width < 0 || cfg.Height < 0 {
		warnings = append(warnings, fmt.Sprintf("negative size %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.R < 0 {
		warnings = append(warnings, fmt.Sprintf("negative radius %v", cfg.R))
	}
	if cfg.CX-cfg.R < 0 || cfg.CY-cfg.R < 0 ||
		cfg.CX+cfg.R > float64(cfg.Width) || cfg.CY+cfg.R > float64(cfg.Height) {
		warnings = append(warnings, fmt.Sprintf("circle at (%v, %v) r=%v does not fit %dx%d",
			cfg.CX, cfg.CY, cfg.R, cfg.Width, cfg.Height))
	}
	return warnings
}
