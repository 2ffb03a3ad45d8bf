package grid

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/cdf"
	"gonum.org/v1/gonum/mat"
)

// testGrid returns a 4x3 grid with land and ocean cells.
func testGrid(t *testing.T) *Grid {
	t.Helper()
	elev := mat.NewDense(4, 3, []float64{
		-4000, 120, -10,
		-3500, -200, 800,
		0, -50, -6000,
		2500, -1, -7,
	})
	g, err := New([]float64{-180, -90, 0, 90}, []float64{-60, 0, 60}, elev)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := New([]float64{0, 1}, []float64{0, 1, 2}, mat.NewDense(3, 2, nil))
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	_, err = New(nil, []float64{0}, mat.NewDense(1, 1, nil))
	if !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for empty grid, got %v", err)
	}
}

func TestClampOcean(t *testing.T) {
	g := testGrid(t)
	g.ClampOcean()

	if maxV := g.MaxElevation(); maxV > 0 {
		t.Errorf("max elevation after clamp = %f, want <= 0", maxV)
	}
	if got := g.Elev.At(0, 0); got != -4000 {
		t.Errorf("ocean cell changed: got %f, want -4000", got)
	}
	if got := g.Elev.At(3, 0); got != 0 {
		t.Errorf("land cell = %f, want 0", got)
	}
}

func TestWrapLongitude(t *testing.T) {
	g := testGrid(t)
	orig := g.Clone()
	g.WrapLongitude()

	nLon, nLat := g.Dims()
	if nLon != 5 || nLat != 3 {
		t.Fatalf("dims after wrap = %dx%d, want 5x3", nLon, nLat)
	}
	if g.Lon[4] != g.Lon[0] {
		t.Errorf("seam longitude = %f, want %f", g.Lon[4], g.Lon[0])
	}
	for j := 0; j < nLat; j++ {
		if g.Elev.At(4, j) != orig.Elev.At(0, j) {
			t.Errorf("seam row col %d = %f, want %f", j, g.Elev.At(4, j), orig.Elev.At(0, j))
		}
	}
	if !mat.Equal(g.Elev.Slice(0, 4, 0, 3), orig.Elev) {
		t.Error("wrap changed the original rows")
	}

	// Wrapping twice must not grow the grid again.
	g.WrapLongitude()
	if n, _ := g.Dims(); n != 5 {
		t.Errorf("second wrap grew grid to %d longitudes", n)
	}
}

func TestPrepare(t *testing.T) {
	g := testGrid(t)
	Prepare(g)

	if !g.Wrapped {
		t.Error("expected grid to be wrapped")
	}
	if maxV := g.MaxElevation(); maxV > 0 {
		t.Errorf("max elevation after Prepare = %f", maxV)
	}
}

func TestNearestIndex(t *testing.T) {
	values := []float64{-180, -90, 0, 90, 180}
	tests := []struct {
		v    float64
		want int
	}{
		{-180, 0},
		{-100, 1},
		{44, 2},
		{46, 3},
		{1000, 4},  // above range clamps to the last index
		{-1000, 0}, // below range clamps to the first index
		{-135, 0},  // tie resolves to the first index
	}
	for _, tt := range tests {
		if got := NearestIndex(values, tt.v); got != tt.want {
			t.Errorf("NearestIndex(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestCropFullExtentIsIdentity(t *testing.T) {
	g := testGrid(t)
	c, err := g.Crop(g.Bounds())
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if !mat.Equal(c.Elev, g.Elev) {
		t.Error("full-extent crop changed elevation")
	}
	if len(c.Lon) != len(g.Lon) || len(c.Lat) != len(g.Lat) {
		t.Errorf("full-extent crop dims = %dx%d", len(c.Lon), len(c.Lat))
	}
}

func TestCropSubset(t *testing.T) {
	g := testGrid(t)
	c, err := g.Crop(BBox{LonMin: -95, LonMax: 10, LatMin: -1, LatMax: 70})
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	wantLon := []float64{-90, 0}
	wantLat := []float64{0, 60}
	for i, v := range wantLon {
		if c.Lon[i] != v {
			t.Errorf("Lon[%d] = %f, want %f", i, c.Lon[i], v)
		}
	}
	for i, v := range wantLat {
		if c.Lat[i] != v {
			t.Errorf("Lat[%d] = %f, want %f", i, c.Lat[i], v)
		}
	}
	want := mat.NewDense(2, 2, []float64{-200, 800, -50, -6000})
	if !mat.Equal(c.Elev, want) {
		t.Errorf("cropped elevation = %v, want %v", mat.Formatted(c.Elev), mat.Formatted(want))
	}

	// The crop owns its data.
	c.Elev.Set(0, 0, 1)
	if g.Elev.At(1, 1) != -200 {
		t.Error("crop shares storage with the source grid")
	}
}

func TestCropEmptyRegion(t *testing.T) {
	g := testGrid(t)
	tests := []struct {
		name string
		box  BBox
	}{
		{"inverted longitude", BBox{LonMin: 90, LonMax: -90, LatMin: -60, LatMax: 60}},
		{"inverted latitude", BBox{LonMin: -180, LonMax: 90, LatMin: 60, LatMax: -60}},
		{"single longitude", BBox{LonMin: 0, LonMax: 1, LatMin: -60, LatMax: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Crop(tt.box)
			if !errors.Is(err, ErrEmptyCropRegion) {
				t.Errorf("expected ErrEmptyCropRegion, got %v", err)
			}
		})
	}
}

// writeDataset writes a small GMT-style grid: x(x), y(y), z(y, x).
func writeDataset(t *testing.T, lon, lat []float64, z []int16) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "relief.nc")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating dataset: %v", err)
	}
	defer f.Close()

	h := cdf.NewHeader([]string{VarLon, VarLat}, []int{len(lon), len(lat)})
	h.AddVariable(VarLon, []string{VarLon}, []float64{0})
	h.AddVariable(VarLat, []string{VarLat}, []float64{0})
	h.AddVariable(VarElev, []string{VarLat, VarLon}, []int16{0})
	h.AddAttribute(VarElev, "_FillValue", []int16{-32768})
	h.Define()

	nc, err := cdf.Create(f, h)
	if err != nil {
		t.Fatalf("cdf.Create: %v", err)
	}
	write := func(name string, data interface{}) {
		end := nc.Header.Lengths(name)
		w := nc.Writer(name, make([]int, len(end)), end)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	write(VarLon, lon)
	write(VarLat, lat)
	write(VarElev, z)
	return path
}

func TestLoad(t *testing.T) {
	lon := []float64{-180, 0, 180}
	lat := []float64{-45, 45}
	// Stored (lat, lon).
	z := []int16{
		-100, -200, -32768,
		400, -500, -600,
	}
	path := writeDataset(t, lon, lat, z)

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n, m := g.Dims(); n != 3 || m != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", n, m)
	}
	tests := []struct {
		i, j int
		want float64
	}{
		{0, 0, -100},
		{1, 0, -200},
		{0, 1, 400},
		{2, 1, -600},
	}
	for _, tt := range tests {
		if got := g.Elev.At(tt.i, tt.j); got != tt.want {
			t.Errorf("Elev(%d,%d) = %f, want %f", tt.i, tt.j, got, tt.want)
		}
	}
	if !math.IsNaN(g.Elev.At(2, 0)) {
		t.Errorf("fill value not mapped to NaN: %f", g.Elev.At(2, 0))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.nc")); err == nil {
		t.Error("expected error for missing dataset")
	}
}
