// Command pie renders pie chart files as SVG or PNG and inspects them.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ha1tch/pie-toolkit/pkg/pie"
	"github.com/ha1tch/pie-toolkit/pkg/piefile"
	"github.com/ha1tch/pie-toolkit/pkg/pieraster"
)

const long = `pie - pie chart toolkit

Chart files are JSON:

  {"width": 250, "height": 250,
   "slices": [{"pct": 0.5, "color": "red", "label": "Rent"}, ...]}

Defaults for stroke, stroke_width, font_size and background are read from
flags, PIE_* environment variables and ~/.pie.toml, in that order.`

const example = `  pie svg budget.json -o budget.svg
  pie png budget.json -o budget.png --background white
  pie png budget.json --layer hit -o hit.png
  pie probe budget.json 125 190
  pie info budget.json`

// settings are the rendering defaults shared by every command.
type settings struct {
	Stroke      string
	StrokeWidth float64
	FontSize    float64
	Background  string
}

func (s settings) rasterOptions() pieraster.Options {
	return pieraster.Options{
		Stroke:      s.Stroke,
		StrokeWidth: s.StrokeWidth,
		FontSize:    s.FontSize,
		Background:  s.Background,
	}
}

type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "pie",
		Short:         "Pie chart toolkit",
		Long:          long,
		Example:       example,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				pie.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return a.loadConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default ~/.pie.toml)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")
	flags.String("stroke", "black", "outline color")
	flags.Float64("stroke-width", 1, "outline width in pixels (png)")
	flags.Float64("font-size", 10, "tooltip font size in points (png)")
	flags.String("background", "", "background color of composite images (png)")

	for key, flag := range map[string]string{
		"stroke":       "stroke",
		"stroke_width": "stroke-width",
		"font_size":    "font-size",
		"background":   "background",
	} {
		// Lookup cannot fail for flags defined above.
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
	a.v.SetEnvPrefix("pie")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.svgCmd(),
		a.pngCmd(),
		a.probeCmd(),
		a.infoCmd(),
		a.validateCmd(),
	)
	return root
}

// loadConfig reads the config file named by --config, or ~/.pie.toml if it
// exists. A missing default file is not an error.
func (a *app) loadConfig() error {
	path := a.cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".pie.toml")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	a.v.SetConfigFile(path)
	a.v.SetConfigType("toml")
	if err := a.v.ReadInConfig(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	pie.Logger().Debug("config loaded", "path", path)
	return nil
}

func (a *app) settings() settings {
	return settings{
		Stroke:      a.v.GetString("stroke"),
		StrokeWidth: a.v.GetFloat64("stroke_width"),
		FontSize:    a.v.GetFloat64("font_size"),
		Background:  a.v.GetString("background"),
	}
}

func loadChart(path string) (*piefile.File, error) {
	f, err := piefile.ReadFile(path)
	if err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("loading %s: %w", path, pe.Err)
		}
		return nil, fmt.Errorf("loading %w", err)
	}
	return f, nil
}
