package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagSave     = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagDataset  = flag.String("dataset", "", "Path to the elevation grid (netCDF)")
	flagMode     = flag.String("mode", "", "Projection: sphere, cylinder or rectangle")
	flagZScale   = flag.Float64("zscale", 0, "Vertical exaggeration divisor")
	flagLimits   = flag.String("limits", "", "Crop box as lon_min,lon_max,lat_min,lat_max")
	flagColormap = flag.String("colormap", "", "Bathymetry colormap")
	flagReverse  = flag.Bool("reverse", false, "Reverse the bathymetry colormap")
	flagLand     = flag.Bool("land", false, "Draw land in a constant color")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDataset != "" {
		cfg.Data.Dataset = *flagDataset
	}
	if *flagMode != "" {
		cfg.Render.Mode = *flagMode
	}
	if *flagZScale > 0 {
		cfg.Render.ZScale = *flagZScale
	}
	if *flagLimits != "" {
		limits, err := parseLimits(*flagLimits)
		if err != nil {
			return err
		}
		cfg.Render.TopoLimits = limits
	}
	if *flagColormap != "" {
		cfg.Render.Colormap = *flagColormap
	}
	if *flagReverse {
		cfg.Render.Reverse = true
	}
	if *flagLand {
		cfg.Render.LandConstant = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	return nil
}

// parseLimits reads four comma separated numbers.
func parseLimits(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("-limits needs 4 values, got %d", len(parts))
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("-limits value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}
