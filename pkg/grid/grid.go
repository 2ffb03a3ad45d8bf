// Package grid loads and preprocesses gridded global elevation data.
//
// A Grid is indexed [lon][lat]: Elev has one row per longitude and one
// column per latitude, matching the order of the angular mesh built by the
// projection package.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrShape is returned when coordinate and elevation dimensions disagree.
var ErrShape = errors.New("grid: shape mismatch")

// Grid holds coordinates and elevation values in meters.
type Grid struct {
	Lon  []float64  // degrees east, -180..180
	Lat  []float64  // degrees north, -90..90
	Elev *mat.Dense // len(Lon) x len(Lat)

	// Wrapped is set once the first longitude has been appended to close
	// the seam at the date line.
	Wrapped bool
}

// New validates the shapes and returns a grid. The slices and matrix are
// used as given, not copied.
func New(lon, lat []float64, elev *mat.Dense) (*Grid, error) {
	if len(lon) == 0 || len(lat) == 0 || elev == nil {
		return nil, fmt.Errorf("%w: empty grid", ErrShape)
	}
	r, c := elev.Dims()
	if r != len(lon) || c != len(lat) {
		return nil, fmt.Errorf("%w: elevation is %dx%d, coordinates are %dx%d",
			ErrShape, r, c, len(lon), len(lat))
	}
	return &Grid{Lon: lon, Lat: lat, Elev: elev}, nil
}

// Dims returns the number of longitudes and latitudes.
func (g *Grid) Dims() (nLon, nLat int) {
	return len(g.Lon), len(g.Lat)
}

// ClampOcean flattens land to sea level so only bathymetry remains.
func (g *Grid) ClampOcean() {
	g.Elev.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return 0
		}
		return v
	}, g.Elev)
}

// WrapLongitude appends a copy of the first longitude and of its elevation
// row so the mesh closes at the date line. Calling it twice is a no-op.
func (g *Grid) WrapLongitude() {
	if g.Wrapped {
		return
	}
	r, c := g.Elev.Dims()
	wrapped := mat.NewDense(r+1, c, nil)
	wrapped.Slice(0, r, 0, c).(*mat.Dense).Copy(g.Elev)
	wrapped.SetRow(r, g.Elev.RawRowView(0))

	g.Lon = append(append(make([]float64, 0, r+1), g.Lon...), g.Lon[0])
	g.Elev = wrapped
	g.Wrapped = true
}

// Prepare applies the preprocessing every bathymetry render needs:
// land is clamped to sea level and the longitude seam is closed.
func Prepare(g *Grid) {
	g.ClampOcean()
	g.WrapLongitude()
}

// MaxElevation returns the largest finite elevation in the grid.
func (g *Grid) MaxElevation() float64 {
	maxV := math.Inf(-1)
	r, c := g.Elev.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := g.Elev.At(i, j); !math.IsNaN(v) && v > maxV {
				maxV = v
			}
		}
	}
	return maxV
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Lon:     append([]float64(nil), g.Lon...),
		Lat:     append([]float64(nil), g.Lat...),
		Elev:    mat.DenseCopyOf(g.Elev),
		Wrapped: g.Wrapped,
	}
}
