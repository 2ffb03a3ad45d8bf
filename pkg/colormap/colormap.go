// Package colormap provides named color maps and fixed-size lookup tables
// used to color meshes by a scalar field.
package colormap

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// ErrUnknownColormap is returned by Lookup for an unregistered name.
var ErrUnknownColormap = errors.New("colormap: unknown colormap")

// DefaultSize is the number of entries in a lookup table.
const DefaultSize = 256

var registry = map[string]func() (palette.ColorMap, error){
	"bone": func() (palette.ColorMap, error) {
		return luminance(
			color.NRGBA{A: 255},
			color.NRGBA{R: 84, G: 84, B: 116, A: 255},
			color.NRGBA{R: 169, G: 200, B: 200, A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		)
	},
	"gray": func() (palette.ColorMap, error) {
		return luminance(
			color.NRGBA{A: 255},
			color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		)
	},
	"blue-red": func() (palette.ColorMap, error) {
		return moreland.SmoothBlueRed(), nil
	},
	"purple-orange": func() (palette.ColorMap, error) {
		return moreland.SmoothPurpleOrange(), nil
	},
	"black-body": func() (palette.ColorMap, error) {
		return moreland.BlackBody(), nil
	},
	"extended-black-body": func() (palette.ColorMap, error) {
		return moreland.ExtendedBlackBody(), nil
	},
	"kindlmann": func() (palette.ColorMap, error) {
		return moreland.Kindlmann(), nil
	},
	"extended-kindlmann": func() (palette.ColorMap, error) {
		return moreland.ExtendedKindlmann(), nil
	},
}

// luminance builds a map interpolated in perceptual space between control
// colors of monotonic lightness.
func luminance(controls ...color.Color) (palette.ColorMap, error) {
	cm, err := moreland.NewLuminance(controls)
	if err != nil {
		return nil, err
	}
	return cm, nil
}

// Lookup returns a fresh color map for name. Names are case-insensitive.
// The returned map spans [0, 1]; callers set their own range.
func Lookup(name string) (palette.ColorMap, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColormap, name)
	}
	cm, err := fn()
	if err != nil {
		return nil, fmt.Errorf("building colormap %q: %w", name, err)
	}
	cm.SetMin(0)
	cm.SetMax(1)
	return cm, nil
}

// Names lists the registered colormaps in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
