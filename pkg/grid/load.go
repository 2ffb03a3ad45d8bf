package grid

import (
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"gonum.org/v1/gonum/mat"
)

// DefaultDataset is the bundled 30 arc-minute global relief grid, looked up
// relative to the working directory.
const DefaultDataset = "etopo1_30min.nc"

// Variable names of the bundle. The layout follows GMT/ETOPO grids:
// x(x), y(y) and z(y, x).
const (
	VarLon  = "x"
	VarLat  = "y"
	VarElev = "z"
)

// Load reads an elevation grid from a netCDF classic file.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	g, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return g, nil
}

// Decode reads the x, y and z variables from an open netCDF file and
// transposes z from (lat, lon) storage into the grid's (lon, lat) order.
func Decode(r cdf.ReaderWriterAt) (*Grid, error) {
	nc, err := cdf.Open(r)
	if err != nil {
		return nil, err
	}

	lon, err := readVar(nc, VarLon)
	if err != nil {
		return nil, err
	}
	lat, err := readVar(nc, VarLat)
	if err != nil {
		return nil, err
	}
	z, err := readVar(nc, VarElev)
	if err != nil {
		return nil, err
	}

	dims := nc.Header.Lengths(VarElev)
	if len(dims) != 2 || dims[0] != len(lat) || dims[1] != len(lon) {
		return nil, fmt.Errorf("%w: %s has dims %v, want [%d %d]",
			ErrShape, VarElev, dims, len(lat), len(lon))
	}

	// z is stored row-major as (lat, lon); the transpose view is copied
	// into a fresh (lon, lat) matrix.
	stored := mat.NewDense(len(lat), len(lon), z)
	elev := mat.DenseCopyOf(stored.T())

	return New(lon, lat, elev)
}

// readVar reads a whole variable as float64, whatever its storage type, and
// replaces _FillValue entries with NaN.
func readVar(nc *cdf.File, name string) ([]float64, error) {
	if len(nc.Header.Lengths(name)) == 0 {
		return nil, fmt.Errorf("variable %q not found", name)
	}
	r := nc.Reader(name, nil, nil)
	buf := r.Zero(-1)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("reading variable %q: %w", name, err)
	}

	data, err := toFloat64(buf)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}

	if fill := nc.Header.GetAttribute(name, "_FillValue"); fill != nil {
		fv, err := toFloat64(fill)
		if err != nil || len(fv) == 0 {
			return nil, fmt.Errorf("variable %q: invalid _FillValue %T", name, fill)
		}
		for i, v := range data {
			if v == fv[0] {
				data[i] = math.NaN()
			}
		}
	}
	return data, nil
}

func toFloat64(v interface{}) ([]float64, error) {
	switch d := v.(type) {
	case []float64:
		return d, nil
	case []float32:
		return convert(d), nil
	case []int32:
		return convert(d), nil
	case []int16:
		return convert(d), nil
	case []int8:
		return convert(d), nil
	default:
		return nil, fmt.Errorf("unsupported storage type %T", v)
	}
}

func convert[T float32 | int32 | int16 | int8](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
