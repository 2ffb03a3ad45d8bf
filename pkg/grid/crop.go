package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrEmptyCropRegion is returned when a bounding box selects no usable
// grid cells, for example when the bounds are inverted.
var ErrEmptyCropRegion = errors.New("grid: crop region is empty")

// BBox is a longitude/latitude bounding box in degrees.
type BBox struct {
	LonMin, LonMax float64
	LatMin, LatMax float64
}

// String formats the box as [lonMin, lonMax, latMin, latMax].
func (b BBox) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", b.LonMin, b.LonMax, b.LatMin, b.LatMax)
}

// Global is the whole-earth bounding box.
var Global = BBox{LonMin: -180, LonMax: 180, LatMin: -90, LatMax: 90}

// NearestIndex returns the index of the value closest to v. Values outside
// the data range resolve to the nearest edge; ties resolve to the first index.
func NearestIndex(values []float64, v float64) int {
	dist := make([]float64, len(values))
	for i, x := range values {
		dist[i] = math.Abs(x - v)
	}
	return floats.MinIdx(dist)
}

// Crop returns a new grid restricted to the bounding box. Each bound snaps
// to the nearest coordinate and the resulting index ranges are inclusive.
func (g *Grid) Crop(b BBox) (*Grid, error) {
	lonLo, lonHi := NearestIndex(g.Lon, b.LonMin), NearestIndex(g.Lon, b.LonMax)
	latLo, latHi := NearestIndex(g.Lat, b.LatMin), NearestIndex(g.Lat, b.LatMax)

	if lonLo >= lonHi {
		return nil, fmt.Errorf("%w: longitude %g..%g selects indices %d..%d",
			ErrEmptyCropRegion, b.LonMin, b.LonMax, lonLo, lonHi)
	}
	if latLo >= latHi {
		return nil, fmt.Errorf("%w: latitude %g..%g selects indices %d..%d",
			ErrEmptyCropRegion, b.LatMin, b.LatMax, latLo, latHi)
	}

	return &Grid{
		Lon:     append([]float64(nil), g.Lon[lonLo:lonHi+1]...),
		Lat:     append([]float64(nil), g.Lat[latLo:latHi+1]...),
		Elev:    mat.DenseCopyOf(g.Elev.Slice(lonLo, lonHi+1, latLo, latHi+1)),
		Wrapped: g.Wrapped && lonHi == len(g.Lon)-1,
	}, nil
}

// Bounds returns the bounding box covered by the grid coordinates.
func (g *Grid) Bounds() BBox {
	return BBox{
		LonMin: floats.Min(g.Lon), LonMax: floats.Max(g.Lon),
		LatMin: floats.Min(g.Lat), LatMax: floats.Max(g.Lat),
	}
}
