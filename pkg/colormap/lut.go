package colormap

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/palette"
)

// LUT is an ordered table of colors indexed by a normalized scalar.
type LUT struct {
	Entries []color.NRGBA

	// NaNColor is used for NaN scalars. The zero value is fully transparent.
	NaNColor color.NRGBA
}

// NewLUT samples n evenly spaced colors across the range of cm.
func NewLUT(cm palette.ColorMap, n int) (LUT, error) {
	if n < 1 {
		return LUT{}, fmt.Errorf("colormap: lookup table needs at least one entry, got %d", n)
	}
	lo, hi := cm.Min(), cm.Max()
	entries := make([]color.NRGBA, n)
	for i := range entries {
		v := lo
		if n > 1 {
			v = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		c, err := cm.At(v)
		if err != nil {
			return LUT{}, fmt.Errorf("colormap: sampling %g: %w", v, err)
		}
		entries[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return LUT{Entries: entries}, nil
}

// Named builds a DefaultSize table for a registered colormap name.
func Named(name string) (LUT, error) {
	cm, err := Lookup(name)
	if err != nil {
		return LUT{}, err
	}
	return NewLUT(cm, DefaultSize)
}

// Solid returns a one-entry table of a single color.
func Solid(c color.NRGBA) LUT {
	return LUT{Entries: []color.NRGBA{c}}
}

// Len returns the number of entries.
func (l LUT) Len() int {
	return len(l.Entries)
}

// Reverse returns a new table with the entries in opposite order.
// The receiver is not modified, so reversing twice yields the original.
func (l LUT) Reverse() LUT {
	n := len(l.Entries)
	out := make([]color.NRGBA, n)
	for i, c := range l.Entries {
		out[n-1-i] = c
	}
	return LUT{Entries: out, NaNColor: l.NaNColor}
}

// WithAlpha returns a copy whose entries have their alpha scaled by opacity.
func (l LUT) WithAlpha(opacity float64) LUT {
	opacity = math.Max(0, math.Min(1, opacity))
	out := make([]color.NRGBA, len(l.Entries))
	for i, c := range l.Entries {
		c.A = uint8(math.Round(float64(c.A) * opacity))
		out[i] = c
	}
	return LUT{Entries: out, NaNColor: l.NaNColor}
}

// Index returns the table index for v within [vmin, vmax]. Values outside the
// range clamp to the first or last entry. It returns -1 for NaN.
func (l LUT) Index(v, vmin, vmax float64) int {
	n := len(l.Entries)
	if math.IsNaN(v) || n == 0 {
		return -1
	}
	if vmax <= vmin {
		if v < vmin {
			return 0
		}
		return n - 1
	}
	i := int(math.Floor((v - vmin) / (vmax - vmin) * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Color maps v within [vmin, vmax] to a table color.
func (l LUT) Color(v, vmin, vmax float64) color.NRGBA {
	i := l.Index(v, vmin, vmax)
	if i < 0 {
		return l.NaNColor
	}
	return l.Entries[i]
}
