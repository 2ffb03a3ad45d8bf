package scene

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/Faultbox/bathy3d/pkg/colormap"
	"github.com/Faultbox/bathy3d/pkg/projection"
)

// ActorOptions controls how a surface is colored and which points are drawn.
type ActorOptions struct {
	// Name identifies the actor in logs.
	Name string

	// Scalars colors each point through LUT over [Vmin, Vmax]. When nil the
	// first LUT entry is used for every point.
	Scalars    *mat.Dense
	LUT        colormap.LUT
	Vmin, Vmax float64

	// Opacity scales the alpha of every color. Nil means fully opaque; zero
	// hides the surface.
	Opacity *float64

	// Hidden reports points to leave out. Triangles touching them are dropped.
	Hidden func(i, j int) bool
}

// Actor is a colored triangle mesh ready to draw.
type Actor struct {
	Name        string
	Mesh        *Mesh
	Opacity     float64
	Translucent bool
}

// NewSurfaceActor triangulates a projected surface and colors its vertices.
func NewSurfaceActor(s *projection.Surface, opts ActorOptions) (*Actor, error) {
	if s == nil {
		return nil, errors.New("scene: nil surface")
	}
	if opts.LUT.Len() == 0 {
		return nil, errors.New("scene: empty lookup table")
	}
	n, m := s.Dims()
	if opts.Scalars != nil {
		if r, c := opts.Scalars.Dims(); r != n || c != m {
			return nil, fmt.Errorf("scene: scalars are %dx%d, surface is %dx%d", r, c, n, m)
		}
	}

	opacity := 1.0
	if opts.Opacity != nil {
		opacity = *opts.Opacity
		if opacity < 0 || opacity > 1 || math.IsNaN(opacity) {
			return nil, fmt.Errorf("scene: opacity %g outside [0, 1]", opacity)
		}
	}
	lut := opts.LUT
	if opacity < 1 {
		lut = lut.WithAlpha(opacity)
	}

	colorAt := func(i, j int) color.NRGBA {
		if opts.Scalars == nil {
			return lut.Entries[0]
		}
		return lut.Color(opts.Scalars.At(i, j), opts.Vmin, opts.Vmax)
	}

	mesh := buildMesh(s, colorAt, opts.Hidden)
	return &Actor{
		Name:        opts.Name,
		Mesh:        mesh,
		Opacity:     opacity,
		Translucent: opacity < 1 || mesh.translucent(),
	}, nil
}

// Bounds returns the bounds of the drawn triangles.
func (a *Actor) Bounds() Bounds {
	return a.Mesh.Bounds
}
