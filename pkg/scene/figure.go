// Package scene holds the rendering state for bathymetry plots: colored
// surface meshes, the camera and a figure that owns both.
package scene

import (
	"errors"
	"image/color"
	gomath "math"
	"sync"

	"github.com/Faultbox/bathy3d/pkg/math"
)

// ErrClosed is returned by operations on a closed figure.
var ErrClosed = errors.New("scene: figure is closed")

// Config contains figure options.
type Config struct {
	Width       int
	Height      int
	Background  color.NRGBA
	Foreground  color.NRGBA
	FieldOfView float64 // vertical, degrees
}

// DefaultConfig returns a default figure configuration.
func DefaultConfig() Config {
	return Config{
		Width:       1024,
		Height:      768,
		Background:  color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Foreground:  color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		FieldOfView: DefaultFieldOfView,
	}
}

// Figure is an explicit rendering target. It is safe to call from multiple
// goroutines, but rendering into one figure concurrently interleaves actors.
type Figure struct {
	mu      sync.Mutex
	config  Config
	actors  []*Actor
	view    View
	hasView bool
	closed  bool
}

// NewFigure creates an empty figure. Zero fields of cfg take their defaults.
func NewFigure(cfg Config) *Figure {
	def := DefaultConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Background == (color.NRGBA{}) {
		cfg.Background = def.Background
	}
	if cfg.Foreground == (color.NRGBA{}) {
		cfg.Foreground = def.Foreground
	}
	if cfg.FieldOfView <= 0 || cfg.FieldOfView >= 180 {
		cfg.FieldOfView = def.FieldOfView
	}
	return &Figure{config: cfg}
}

// Config returns the figure configuration.
func (f *Figure) Config() Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.config
}

// Resize changes the output size.
func (f *Figure) Resize(width, height int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if width > 0 {
		f.config.Width = width
	}
	if height > 0 {
		f.config.Height = height
	}
	return nil
}

// Clear removes all actors and resets the camera.
func (f *Figure) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.actors = nil
	f.view = View{}
	f.hasView = false
	return nil
}

// Add appends an actor to the figure.
func (f *Figure) Add(a *Actor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.actors = append(f.actors, a)
	return nil
}

// Actors returns a copy of the actor list in draw order.
func (f *Figure) Actors() []*Actor {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Actor(nil), f.actors...)
}

// Bounds returns the union of all actor bounds.
func (f *Figure) Bounds() Bounds {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boundsLocked()
}

func (f *Figure) boundsLocked() Bounds {
	b := emptyBounds()
	for _, a := range f.actors {
		b.union(a.Bounds())
	}
	return b
}

// AutoView fits the camera to the current scene.
func (f *Figure) AutoView() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	b := f.boundsLocked()
	if b.Empty() {
		b = Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
	}
	f.view = FitView(b, f.config.FieldOfView)
	f.hasView = true
	return nil
}

// SetView applies a camera tuple as given.
func (f *Figure) SetView(v View) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.view = v
	f.hasView = true
	return nil
}

// View returns the current camera. Before any view is set it is fitted to
// the scene bounds.
func (f *Figure) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasView {
		b := f.boundsLocked()
		if b.Empty() {
			b = Bounds{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}
		}
		return FitView(b, f.config.FieldOfView)
	}
	return f.view
}

// ViewProjection returns the combined projection * view matrix and the eye
// position for the current camera and output size.
func (f *Figure) ViewProjection() (math.Mat4, math.Vec3) {
	v := f.View()
	cfg := f.Config()
	b := f.Bounds()

	radius := 1.0
	if !b.Empty() {
		// Enclose the whole scene even when the focal point is off center.
		c := b.Center()
		dx := v.FocalPoint[0] - float64(c[0])
		dy := v.FocalPoint[1] - float64(c[1])
		dz := v.FocalPoint[2] - float64(c[2])
		radius = float64(b.Radius()) + gomath.Sqrt(dx*dx+dy*dy+dz*dz)
	}
	aspect := float64(cfg.Width) / float64(cfg.Height)
	proj := v.Projection(cfg.FieldOfView, aspect, radius)
	return proj.Mul(v.ViewMatrix()), v.Position()
}

// Close releases the figure. Further operations return ErrClosed.
func (f *Figure) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	f.actors = nil
	return nil
}

// Closed reports whether Close has been called.
func (f *Figure) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
