// Package projection maps longitude/latitude grids into Cartesian space.
package projection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for a projection mode outside Sphere,
// Cylinder and Rectangle.
var ErrInvalidMode = errors.New("projection: unsupported mode")

// Mode selects the coordinate system of the 3D surface.
type Mode int

const (
	// Sphere wraps the grid around a unit sphere; elevation moves points
	// along the radius.
	Sphere Mode = iota + 1
	// Cylinder wraps the grid around a unit cylinder; elevation becomes
	// the height along the axis.
	Cylinder
	// Rectangle keeps longitude and latitude as x and y.
	Rectangle
)

// String returns the short mode name.
func (m Mode) String() string {
	switch m {
	case Sphere:
		return "sphere"
	case Cylinder:
		return "cylinder"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == Sphere || m == Cylinder || m == Rectangle
}

// ParseMode converts a mode name into a Mode. The long forms "spherical",
// "cylindrical" and "rectangular" are accepted as well.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sphere", "spherical":
		return Sphere, nil
	case "cylinder", "cylindrical":
		return Cylinder, nil
	case "rectangle", "rectangular":
		return Rectangle, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
