// Package bathy renders global bathymetry as a 3D surface on a sphere, a
// cylinder or a flat rectangle, with an optional data surface on top.
package bathy

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/Faultbox/bathy3d/internal/logger"
	"github.com/Faultbox/bathy3d/pkg/colormap"
	"github.com/Faultbox/bathy3d/pkg/grid"
	"github.com/Faultbox/bathy3d/pkg/projection"
	"github.com/Faultbox/bathy3d/pkg/scene"
)

// Errors returned by Render.
var (
	ErrInvalidMode       = projection.ErrInvalidMode
	ErrEmptyCropRegion   = grid.ErrEmptyCropRegion
	ErrIncompleteOverlay = errors.New("bathy: overlay needs lon, lat and depth")
)

// Actor names, in draw order.
const (
	ActorBathymetry = "bathymetry"
	ActorLand       = "land"
	ActorOverlay    = "overlay"
)

// RenderFile loads the dataset at path (DefaultDataset when empty), renders
// it into a new default figure and returns the figure. The caller owns the
// figure and must Close it.
func RenderFile(path string, opts Options) (*scene.Figure, error) {
	if path == "" {
		path = grid.DefaultDataset
	}
	g, err := grid.Load(path)
	if err != nil {
		return nil, err
	}
	fig := scene.NewFigure(scene.DefaultConfig())
	if err := Render(fig, g, opts); err != nil {
		_ = fig.Close()
		return nil, err
	}
	return fig, nil
}

// Render clears fig and draws the bathymetry of g into it. g is not
// modified.
func Render(fig *scene.Figure, g *grid.Grid, opts Options) error {
	if fig == nil {
		return errors.New("bathy: nil figure")
	}
	if g == nil {
		return errors.New("bathy: nil grid")
	}
	if !opts.Mode.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidMode, opts.Mode)
	}
	if err := opts.Overlay.validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()
	log := logger.Named("bathy")

	work := g.Clone()
	grid.Prepare(work)
	if opts.TopoLimits != nil {
		cropped, err := work.Crop(*opts.TopoLimits)
		if err != nil {
			return err
		}
		work = cropped
	}
	nLon, nLat := work.Dims()
	log.Debug("grid prepared",
		zap.Stringer("mode", opts.Mode),
		zap.Int("lon", nLon),
		zap.Int("lat", nLat),
		zap.Bool("wrapped", work.Wrapped),
	)

	surf, err := projection.Project(opts.Mode, work.Lon, work.Lat, work.Elev, opts.ZScale, projection.Elevation)
	if err != nil {
		return err
	}

	if err := fig.Clear(); err != nil {
		return err
	}

	base, err := bathymetryActor(surf, work, opts)
	if err != nil {
		return err
	}
	if err := fig.Add(base); err != nil {
		return err
	}
	log.Debug("bathymetry added", zap.Int("triangles", base.Mesh.Triangles()))

	if opts.LandConstant {
		land, err := landActor(surf, work, opts)
		if err != nil {
			return err
		}
		if err := fig.Add(land); err != nil {
			return err
		}
		log.Debug("land mask added", zap.Int("triangles", land.Mesh.Triangles()))
	}

	if opts.Overlay != nil {
		ov, err := overlayActor(opts.Overlay, opts)
		if err != nil {
			return err
		}
		if err := fig.Add(ov); err != nil {
			return err
		}
		log.Debug("overlay added",
			zap.Int("triangles", ov.Mesh.Triangles()),
			zap.Bool("translucent", ov.Translucent),
		)
	}

	if opts.View != nil {
		return fig.SetView(*opts.View)
	}
	return fig.AutoView()
}

// bathymetryActor colors the surface by depth (negated elevation).
func bathymetryActor(surf *projection.Surface, g *grid.Grid, opts Options) (*scene.Actor, error) {
	lut, err := colormap.Named(opts.TopoColormap)
	if err != nil {
		return nil, err
	}
	if opts.TopoColormapReverse {
		lut = lut.Reverse()
	}
	depth := mat.DenseCopyOf(g.Elev)
	depth.Scale(-1, depth)

	return scene.NewSurfaceActor(surf, scene.ActorOptions{
		Name:    ActorBathymetry,
		Scalars: depth,
		LUT:     lut,
		Vmin:    *opts.TopoVmin,
		Vmax:    *opts.TopoVmax,
	})
}

// landActor draws the same surface in a flat color, hiding every point below
// sea level.
func landActor(surf *projection.Surface, g *grid.Grid, opts Options) (*scene.Actor, error) {
	return scene.NewSurfaceActor(surf, scene.ActorOptions{
		Name: ActorLand,
		LUT:  colormap.Solid(opts.LandColor),
		Hidden: func(i, j int) bool {
			return g.Elev.At(i, j) < 0
		},
	})
}

func (o *Overlay) validate() error {
	if o == nil {
		return nil
	}
	var missing []string
	if len(o.Lon) == 0 {
		missing = append(missing, "lon")
	}
	if len(o.Lat) == 0 {
		missing = append(missing, "lat")
	}
	if o.Depth == nil || o.Depth.IsEmpty() {
		missing = append(missing, "depth")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrIncompleteOverlay, missing)
	}

	n, m := len(o.Lon), len(o.Lat)
	if r, c := o.Depth.Dims(); r != n || c != m {
		return fmt.Errorf("bathy: overlay depth is %dx%d, coordinates are %dx%d", r, c, n, m)
	}
	if o.Scalars != nil {
		if r, c := o.Scalars.Dims(); r != n || c != m {
			return fmt.Errorf("bathy: overlay scalars are %dx%d, coordinates are %dx%d", r, c, n, m)
		}
	}
	if o.Opacity != nil && !(*o.Opacity >= 0 && *o.Opacity <= 1) {
		return fmt.Errorf("bathy: overlay opacity %g outside [0, 1]", *o.Opacity)
	}
	return nil
}

// overlayActor projects the data surface with depth positive down and colors
// it by its scalars, or by projected height when it has none.
func overlayActor(o *Overlay, opts Options) (*scene.Actor, error) {
	surf, err := projection.Project(opts.Mode, o.Lon, o.Lat, o.Depth, opts.ZScale, projection.Depth)
	if err != nil {
		return nil, fmt.Errorf("overlay: %w", err)
	}

	name := o.Colormap
	if name == "" {
		name = DefaultOverlayColormap
	}
	lut, err := colormap.Named(name)
	if err != nil {
		return nil, err
	}

	scalars := o.Scalars
	if scalars == nil {
		scalars = surf.Z
	}
	lo, hi := finiteRange(scalars)
	if o.Vmin != nil {
		lo = *o.Vmin
	}
	if o.Vmax != nil {
		hi = *o.Vmax
	}

	return scene.NewSurfaceActor(surf, scene.ActorOptions{
		Name:    ActorOverlay,
		Scalars: scalars,
		LUT:     lut,
		Vmin:    lo,
		Vmax:    hi,
		Opacity: o.Opacity,
	})
}

// finiteRange returns the smallest and largest finite values of m, or
// (0, 0) when there are none.
func finiteRange(m mat.Matrix) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}
