package bathy

import (
	"image/color"

	"gonum.org/v1/gonum/mat"

	"github.com/Faultbox/bathy3d/pkg/grid"
	"github.com/Faultbox/bathy3d/pkg/projection"
	"github.com/Faultbox/bathy3d/pkg/scene"
)

// Defaults applied to zero Options fields.
const (
	DefaultZScale          = 500.0
	DefaultTopoColormap    = "bone"
	DefaultTopoVmin        = 0.0
	DefaultTopoVmax        = 7000.0
	DefaultOverlayColormap = "blue-red"
)

// DefaultLandColor is the flat land color, 0.7 gray.
var DefaultLandColor = color.NRGBA{R: 179, G: 179, B: 179, A: 255}

// Options configures one bathymetry render.
type Options struct {
	// Mode selects the projection. It has no default; the zero value is
	// rejected with ErrInvalidMode.
	Mode projection.Mode

	// Overlay is an optional data surface drawn over the bathymetry.
	Overlay *Overlay

	// TopoLimits crops the bathymetry. Nil means the whole globe.
	TopoLimits *grid.BBox

	// ZScale divides heights before projection. Zero means DefaultZScale.
	ZScale float64

	// TopoColormap names the colormap for depth. Empty means bone.
	TopoColormap string
	// TopoVmin and TopoVmax bound the depth color range in meters.
	TopoVmin, TopoVmax *float64
	// TopoColormapReverse flips the depth lookup table end to end.
	TopoColormapReverse bool

	// LandConstant draws land in LandColor on top of the bathymetry.
	LandConstant bool
	LandColor    color.NRGBA

	// View sets the camera explicitly. Nil fits the camera to the scene.
	View *scene.View
}

// Overlay is a data surface on its own lon/lat grid. Depth is positive down.
type Overlay struct {
	Lon   []float64
	Lat   []float64
	Depth *mat.Dense

	// Scalars colors the surface. Nil colors it by projected height.
	// NaN values are drawn fully transparent.
	Scalars *mat.Dense

	// Colormap names the overlay colormap. Empty means blue-red.
	Colormap string
	// Vmin and Vmax bound the color range. Nil means the finite data range.
	Vmin, Vmax *float64
	// Opacity in [0, 1]. Nil means opaque; zero hides the overlay.
	Opacity *float64
}

// Float returns a pointer to v, for the optional range fields.
func Float(v float64) *float64 {
	return &v
}

func (o Options) withDefaults() Options {
	if o.ZScale == 0 {
		o.ZScale = DefaultZScale
	}
	if o.TopoColormap == "" {
		o.TopoColormap = DefaultTopoColormap
	}
	if o.TopoVmin == nil {
		o.TopoVmin = Float(DefaultTopoVmin)
	}
	if o.TopoVmax == nil {
		o.TopoVmax = Float(DefaultTopoVmax)
	}
	if o.LandColor == (color.NRGBA{}) {
		o.LandColor = DefaultLandColor
	}
	return o
}
