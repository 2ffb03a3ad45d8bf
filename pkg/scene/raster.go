package scene

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Faultbox/bathy3d/pkg/math"
)

// Headlight shading terms.
const (
	ambient = 0.3
	diffuse = 0.7
)

type screenVertex struct {
	x, y, z float32
	color   [4]float32
	visible bool
}

type raster struct {
	img   *image.NRGBA
	depth []float32
	w, h  int
}

// Snapshot rasterizes the current scene into an image using a depth buffer
// and a light at the camera. Opaque actors are drawn first, then translucent
// ones are blended over them in draw order.
func (f *Figure) Snapshot() (*image.NRGBA, error) {
	if f.Closed() {
		return nil, ErrClosed
	}
	cfg := f.Config()
	actors := f.Actors()
	vp, eye := f.ViewProjection()
	v := f.View()

	r := newRaster(cfg.Width, cfg.Height)
	r.clear(cfg.Background)

	focal := math.V3(v.FocalPoint[0], v.FocalPoint[1], v.FocalPoint[2])
	light := eye.Sub(focal).Normalize()

	for _, blend := range []bool{false, true} {
		for _, a := range actors {
			if a.Translucent != blend {
				continue
			}
			r.drawMesh(a.Mesh, vp, light, blend)
		}
	}
	return r.img, nil
}

func newRaster(w, h int) *raster {
	depth := make([]float32, w*h)
	for i := range depth {
		depth[i] = float32(gomath.Inf(1))
	}
	return &raster{
		img:   image.NewNRGBA(image.Rect(0, 0, w, h)),
		depth: depth,
		w:     w,
		h:     h,
	}
}

// clear fills the image with an opaque background.
func (r *raster) clear(c color.NRGBA) {
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i+0] = c.R
		r.img.Pix[i+1] = c.G
		r.img.Pix[i+2] = c.B
		r.img.Pix[i+3] = 255
	}
}

func (r *raster) drawMesh(m *Mesh, vp math.Mat4, light math.Vec3, blend bool) {
	verts := make([]screenVertex, len(m.Vertices))
	for i, vert := range m.Vertices {
		clip := vp.Clip(math.Vec3{X: vert.Position[0], Y: vert.Position[1], Z: vert.Position[2]})
		if clip[3] <= 1e-6 {
			continue
		}
		n := math.Vec3{X: vert.Normal[0], Y: vert.Normal[1], Z: vert.Normal[2]}
		shade := ambient + diffuse*float32(gomath.Abs(float64(n.Dot(light))))
		verts[i] = screenVertex{
			x: (clip[0]/clip[3] + 1) * 0.5 * float32(r.w),
			y: (1 - clip[1]/clip[3]) * 0.5 * float32(r.h),
			z: clip[2] / clip[3],
			color: [4]float32{
				vert.Color[0] * shade,
				vert.Color[1] * shade,
				vert.Color[2] * shade,
				vert.Color[3],
			},
			visible: true,
		}
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := verts[m.Indices[t]], verts[m.Indices[t+1]], verts[m.Indices[t+2]]
		if !a.visible || !b.visible || !c.visible {
			continue
		}
		r.triangle(a, b, c, blend)
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func (r *raster) triangle(a, b, c screenVertex, blend bool) {
	area := edge(a, b, c.x, c.y)
	if area == 0 || gomath.IsNaN(float64(area)) {
		return
	}
	if max(a.x, b.x, c.x) < 0 || min(a.x, b.x, c.x) > float32(r.w) ||
		max(a.y, b.y, c.y) < 0 || min(a.y, b.y, c.y) > float32(r.h) {
		return
	}
	minX := clampInt(int(gomath.Floor(float64(min(a.x, b.x, c.x)))), 0, r.w-1)
	maxX := clampInt(int(gomath.Ceil(float64(max(a.x, b.x, c.x)))), 0, r.w-1)
	minY := clampInt(int(gomath.Floor(float64(min(a.y, b.y, c.y)))), 0, r.h-1)
	maxY := clampInt(int(gomath.Ceil(float64(max(a.y, b.y, c.y)))), 0, r.h-1)

	for py := minY; py <= maxY; py++ {
		sy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			sx := float32(px) + 0.5
			w0 := edge(b, c, sx, sy) / area
			w1 := edge(c, a, sx, sy) / area
			w2 := edge(a, b, sx, sy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			if z < -1 || z > 1 {
				continue
			}
			idx := py*r.w + px
			// Later actors win ties so coincident overlays stay visible.
			if z > r.depth[idx] {
				continue
			}
			var col [4]float32
			for k := range col {
				col[k] = w0*a.color[k] + w1*b.color[k] + w2*c.color[k]
			}
			off := r.img.PixOffset(px, py)
			pix := r.img.Pix[off : off+4 : off+4]
			if !blend {
				r.depth[idx] = z
				pix[0] = toByte(col[0])
				pix[1] = toByte(col[1])
				pix[2] = toByte(col[2])
				pix[3] = 255
				continue
			}
			alpha := col[3]
			if alpha <= 0 {
				continue
			}
			for k := 0; k < 3; k++ {
				dst := float32(pix[k]) / 255
				pix[k] = toByte(col[k]*alpha + dst*(1-alpha))
			}
		}
	}
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
