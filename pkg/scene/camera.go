package scene

import (
	gomath "math"

	"github.com/Faultbox/bathy3d/pkg/math"
)

// Default view angles in degrees. The elevation puts the eye on the
// (1, 1, 1) diagonal of the scene.
const (
	DefaultAzimuth     = 45.0
	DefaultElevation   = 54.735610317245346
	DefaultFieldOfView = 30.0
)

// View places the camera on a sphere around FocalPoint.
// Azimuth is measured in the x-y plane from +x, Elevation from +z,
// both in degrees.
type View struct {
	Azimuth    float64
	Elevation  float64
	Distance   float64
	FocalPoint [3]float64
}

// FitView returns the default-angle view that frames b for a vertical field
// of view of fovY degrees.
func FitView(b Bounds, fovY float64) View {
	c := b.Center()
	radius := float64(b.Radius())
	if radius <= 0 {
		radius = 1
	}
	half := fovY * gomath.Pi / 360
	return View{
		Azimuth:    DefaultAzimuth,
		Elevation:  DefaultElevation,
		Distance:   radius / gomath.Sin(half),
		FocalPoint: [3]float64{float64(c[0]), float64(c[1]), float64(c[2])},
	}
}

// direction returns the unit vector from the focal point to the eye.
func (v View) direction() (dx, dy, dz float64) {
	sinA, cosA := gomath.Sincos(v.Azimuth * gomath.Pi / 180)
	sinE, cosE := gomath.Sincos(v.Elevation * gomath.Pi / 180)
	return sinE * cosA, sinE * sinA, cosE
}

// Position returns the eye position in world space.
func (v View) Position() math.Vec3 {
	dx, dy, dz := v.direction()
	return math.V3(
		v.FocalPoint[0]+v.Distance*dx,
		v.FocalPoint[1]+v.Distance*dy,
		v.FocalPoint[2]+v.Distance*dz,
	)
}

// Up returns the camera up vector. It is the tangent of the view sphere
// pointing toward +z, so it never lines up with the view direction.
func (v View) Up() math.Vec3 {
	sinA, cosA := gomath.Sincos(v.Azimuth * gomath.Pi / 180)
	sinE, cosE := gomath.Sincos(v.Elevation * gomath.Pi / 180)
	return math.V3(-cosE*cosA, -cosE*sinA, sinE)
}

// ViewMatrix returns the view matrix for this camera.
func (v View) ViewMatrix() math.Mat4 {
	center := math.V3(v.FocalPoint[0], v.FocalPoint[1], v.FocalPoint[2])
	return math.LookAt(v.Position(), center, v.Up())
}

// Projection returns a perspective matrix whose clipping planes enclose a
// sphere of the given radius around the focal point.
func (v View) Projection(fovY, aspect, radius float64) math.Mat4 {
	if radius <= 0 {
		radius = 1
	}
	near := v.Distance - 1.5*radius
	if lo := v.Distance * 1e-3; near < lo {
		near = lo
	}
	far := v.Distance + 1.5*radius
	return math.Perspective(float32(fovY*gomath.Pi/180), float32(aspect), float32(near), float32(far))
}
