package config

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Faultbox/bathy3d/pkg/bathy"
	"github.com/Faultbox/bathy3d/pkg/grid"
	"github.com/Faultbox/bathy3d/pkg/projection"
	"github.com/Faultbox/bathy3d/pkg/scene"
)

// RenderOptions converts the render and camera sections into bathy options.
func (c *Config) RenderOptions() (bathy.Options, error) {
	mode, err := projection.ParseMode(c.Render.Mode)
	if err != nil {
		return bathy.Options{}, fmt.Errorf("render.mode: %w", err)
	}
	if c.Render.ZScale < 0 {
		return bathy.Options{}, fmt.Errorf("render.zscale must be positive, got %g", c.Render.ZScale)
	}

	opts := bathy.Options{
		Mode:                mode,
		ZScale:              c.Render.ZScale,
		TopoColormap:        c.Render.Colormap,
		TopoVmin:            c.Render.Vmin,
		TopoVmax:            c.Render.Vmax,
		TopoColormapReverse: c.Render.Reverse,
		LandConstant:        c.Render.LandConstant,
	}

	switch len(c.Render.TopoLimits) {
	case 0:
	case 4:
		l := c.Render.TopoLimits
		opts.TopoLimits = &grid.BBox{LonMin: l[0], LonMax: l[1], LatMin: l[2], LatMax: l[3]}
	default:
		return bathy.Options{}, fmt.Errorf("render.topo_limits needs 4 values, got %d", len(c.Render.TopoLimits))
	}

	if len(c.Render.LandColor) > 0 {
		land, err := unitColor(c.Render.LandColor)
		if err != nil {
			return bathy.Options{}, fmt.Errorf("render.land_color: %w", err)
		}
		opts.LandColor = land
	}

	if !c.Camera.Auto {
		v := scene.View{
			Azimuth:   c.Camera.Azimuth,
			Elevation: c.Camera.Elevation,
			Distance:  c.Camera.Distance,
		}
		switch len(c.Camera.FocalPoint) {
		case 0:
		case 3:
			copy(v.FocalPoint[:], c.Camera.FocalPoint)
		default:
			return bathy.Options{}, fmt.Errorf("camera.focal_point needs 3 values, got %d", len(c.Camera.FocalPoint))
		}
		if v.Distance <= 0 {
			return bathy.Options{}, fmt.Errorf("camera.distance must be positive, got %g", v.Distance)
		}
		opts.View = &v
	}
	return opts, nil
}

// FigureConfig returns the figure settings for the window section.
func (c *Config) FigureConfig() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Width = c.Window.Width
	cfg.Height = c.Window.Height
	return cfg
}

// unitColor converts an r, g, b triple in [0, 1] to an opaque color.
func unitColor(rgb []float64) (color.NRGBA, error) {
	if len(rgb) != 3 {
		return color.NRGBA{}, fmt.Errorf("needs 3 components, got %d", len(rgb))
	}
	var out [3]uint8
	for i, v := range rgb {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return color.NRGBA{}, fmt.Errorf("component %d = %g outside [0, 1]", i, v)
		}
		out[i] = uint8(math.Round(v * 255))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: 255}, nil
}
