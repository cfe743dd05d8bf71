package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/vec"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
	"github.com/ha1tch/pie-toolkit/pkg/piefile"
	"github.com/ha1tch/pie-toolkit/pkg/pieraster"
	"github.com/ha1tch/pie-toolkit/pkg/piesvg"
)

// writeOutput writes through fn to path, or to stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" {
		return fn(cmd.OutOrStdout())
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(out); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Written: %s\n", path)
	return nil
}

func (a *app) svgCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "svg <chart.json>",
		Short: "Render a chart as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadChart(args[0])
			if err != nil {
				return err
			}
			cfg := f.Config.Normalize()
			doc := piesvg.NewDocument(cfg.Width, cfg.Height)
			r := piesvg.New(f.Chart(), doc, piesvg.Options{Stroke: a.settings().Stroke})
			if err := r.Draw(f.Slices); err != nil {
				return err
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				_, err := doc.WriteTo(w)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// rasterize draws f on fresh surfaces. events may be nil.
func (a *app) rasterize(f *piefile.File, events pieraster.EventSource) (*pieraster.Chart, error) {
	cfg := f.Config.Normalize()
	c, err := pieraster.New(f.Chart(), pieraster.NewSurfaces(cfg.Width, cfg.Height), events, a.settings().rasterOptions())
	if err != nil {
		return nil, err
	}
	if err := c.Draw(f.Slices); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (a *app) pngCmd() *cobra.Command {
	var output, layer string
	cmd := &cobra.Command{
		Use:   "png <chart.json>",
		Short: "Render a chart as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, ok := pieraster.ParseLayer(layer)
			if !ok {
				return fmt.Errorf("unknown layer %q (want main, hit, tip or composite)", layer)
			}
			f, err := loadChart(args[0])
			if err != nil {
				return err
			}
			c, err := a.rasterize(f, nil)
			if err != nil {
				return err
			}
			defer c.Close()
			return writeOutput(cmd, output, func(w io.Writer) error {
				return c.WritePNG(w, l)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&layer, "layer", "composite", "layer to write: main, hit, tip or composite")
	return cmd
}

func (a *app) probeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "probe <chart.json> <x> <y>",
		Short: "Print the label of the slice at a pixel",
		Long: `Draw the chart, move the pointer to (x, y) and print the tooltip label,
or "no slice". With -o the composite image, tooltip included, is written too.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x %q", args[1])
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y %q", args[2])
			}
			f, err := loadChart(args[0])
			if err != nil {
				return err
			}

			events := pieraster.NewDispatcher()
			c, err := a.rasterize(f, events)
			if err != nil {
				return err
			}
			defer c.Close()

			events.PointerMove(pieraster.PointerEvent{ClientX: x, ClientY: y})
			if label, ok := c.Hovered(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), label)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no slice")
				where := "outside the pie"
				if f.Chart().Contains(vec.Vec2{X: x, Y: y}) {
					where = "on a slice edge"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "(%v, %v) is %s\n", x, y, where)
			}

			if output == "" {
				return nil
			}
			return writeOutput(cmd, output, func(w io.Writer) error {
				return c.WritePNG(w, pieraster.LayerComposite)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the composite PNG here")
	return cmd
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <chart.json>",
		Short: "Show chart information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadChart(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			cfg := f.Config.Normalize()

			fmt.Fprintf(w, "Name:    %s\n", f.Name)
			fmt.Fprintf(w, "Size:    %dx%d\n", cfg.Width, cfg.Height)
			fmt.Fprintf(w, "Centre:  %v,%v\n", cfg.CX, cfg.CY)
			fmt.Fprintf(w, "Radius:  %v\n", cfg.R)
			fmt.Fprintf(w, "Slices:  %d\n", len(f.Slices))
			fmt.Fprintf(w, "Total:   %v\n", pie.Sum(f.Slices))
			fmt.Fprintln(w)
			for i, s := range f.Slices {
				fmt.Fprintf(w, "  %3d  %-12s %s\n", i+1, s.Color(), pie.FormatLabel(s))
			}
			return nil
		},
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <chart.json>",
		Short: "Check a chart file for likely mistakes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadChart(args[0])
			if err != nil {
				return err
			}

			warnings := piefile.Check(f)
			for i, s := range f.Slices {
				if _, err := pieraster.ParseColor(s.Color()); err != nil {
					warnings = append(warnings, fmt.Sprintf("slice %d: color %q cannot be rasterized", i+1, s.Color()))
				}
			}
			if len(warnings) > 0 {
				for _, msg := range warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", msg)
				}
				return fmt.Errorf("validation failed: %d warning(s)", len(warnings))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid chart with %d slices\n", args[0], len(f.Slices))
			return nil
		},
	}
}
