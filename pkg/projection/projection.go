package projection

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Field tells Project how to read the height matrix.
type Field int

const (
	// Elevation is positive up (bathymetry is negative).
	Elevation Field = iota
	// Depth is positive down, as in ocean data products.
	Depth
)

// AngularGrid is the (colatitude, azimuth) mesh of a lon/lat grid.
// Both matrices are len(lon) x len(lat).
type AngularGrid struct {
	Colat *mat.Dense
	Azim  *mat.Dense
}

// Surface is a grid of Cartesian points. X, Y and Z share one shape.
type Surface struct {
	X, Y, Z *mat.Dense
}

// Dims returns the grid shape of the surface.
func (s *Surface) Dims() (r, c int) {
	return s.X.Dims()
}

// Point returns the Cartesian point at grid index (i, j).
func (s *Surface) Point(i, j int) (x, y, z float64) {
	return s.X.At(i, j), s.Y.At(i, j), s.Z.At(i, j)
}

// Colatitude converts a latitude in degrees to the polar angle in radians.
// Latitude -90 maps to 0 and 90 maps to pi.
func Colatitude(lat float64) float64 {
	return lat*math.Pi/180 + math.Pi/2
}

// Azimuth converts a longitude in degrees to the azimuthal angle in radians.
func Azimuth(lon float64) float64 {
	return lon * math.Pi / 180
}

// NewAngularGrid broadcasts the 1D angle arrays into a mesh so that cell
// (i, j) holds (Azimuth(lon[i]), Colatitude(lat[j])).
func NewAngularGrid(lon, lat []float64) AngularGrid {
	n, m := len(lon), len(lat)
	colat := mat.NewDense(n, m, nil)
	azim := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		theta := Azimuth(lon[i])
		for j := 0; j < m; j++ {
			colat.Set(i, j, Colatitude(lat[j]))
			azim.Set(i, j, theta)
		}
	}
	return AngularGrid{Colat: colat, Azim: azim}
}

// Project maps heights h (len(lon) x len(lat)) into Cartesian space under
// mode. zscale divides heights before they enter the geometry.
//
// For Sphere and Cylinder the azimuth mesh is flipped along the longitude
// axis so the globe keeps east to the right when seen from outside.
func Project(mode Mode, lon, lat []float64, h *mat.Dense, zscale float64, field Field) (*Surface, error) {
	if zscale <= 0 || math.IsNaN(zscale) {
		return nil, fmt.Errorf("projection: zscale must be positive, got %g", zscale)
	}
	n, m := len(lon), len(lat)
	if n == 0 || m == 0 {
		return nil, errors.New("projection: empty grid")
	}
	if r, c := h.Dims(); r != n || c != m {
		return nil, fmt.Errorf("projection: heights are %dx%d, coordinates are %dx%d", r, c, n, m)
	}

	switch mode {
	case Sphere:
		return sphere(lon, lat, h, zscale, field), nil
	case Cylinder:
		return cylinder(lon, lat, h, zscale), nil
	case Rectangle:
		return rectangle(lon, lat, h, zscale, field), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, mode)
	}
}

func sphere(lon, lat []float64, h *mat.Dense, zscale float64, field Field) *Surface {
	ag := NewAngularGrid(lon, lat)
	n, m := ag.Colat.Dims()
	s := newSurface(n, m)
	sign := 1.0
	if field == Depth {
		sign = -1
	}
	for i := 0; i < n; i++ {
		azim := ag.Azim.At(n-1-i, 0)
		sinA, cosA := math.Sincos(azim)
		for j := 0; j < m; j++ {
			sinC, cosC := math.Sincos(ag.Colat.At(i, j))
			r := 1 + sign*h.At(i, j)/zscale
			s.X.Set(i, j, sinC*cosA*r)
			s.Y.Set(i, j, sinC*sinA*r)
			s.Z.Set(i, j, cosC*r)
		}
	}
	return s
}

func cylinder(lon, lat []float64, h *mat.Dense, zscale float64) *Surface {
	ag := NewAngularGrid(lon, lat)
	n, m := ag.Colat.Dims()
	s := newSurface(n, m)
	for i := 0; i < n; i++ {
		sinA, cosA := math.Sincos(ag.Azim.At(n-1-i, 0))
		for j := 0; j < m; j++ {
			sinC := math.Sin(ag.Colat.At(i, j))
			s.X.Set(i, j, sinC*cosA)
			s.Y.Set(i, j, sinC*sinA)
			s.Z.Set(i, j, h.At(i, j)/zscale)
		}
	}
	return s
}

func rectangle(lon, lat []float64, h *mat.Dense, zscale float64, field Field) *Surface {
	n, m := len(lon), len(lat)
	s := newSurface(n, m)
	sign := 1.0
	if field == Depth {
		sign = -1
	}
	for i := 0; i < n; i++ {
		x := lon[i]
		// A closing seam column repeats the first longitude; draw it one
		// full turn east instead of folding the plane back.
		if i == n-1 && n > 1 && lon[i] == lon[0] {
			x += 360
		}
		for j := 0; j < m; j++ {
			s.X.Set(i, j, x)
			s.Y.Set(i, j, lat[j])
			s.Z.Set(i, j, sign*h.At(i, j)/zscale)
		}
	}
	return s
}

func newSurface(n, m int) *Surface {
	return &Surface{
		X: mat.NewDense(n, m, nil),
		Y: mat.NewDense(n, m, nil),
		Z: mat.NewDense(n, m, nil),
	}
}
