package scene

import (
	"image/color"
	"math"

	"github.com/Faultbox/bathy3d/pkg/projection"
)

// Vertex is a mesh vertex laid out for direct GPU upload.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// emptyBounds returns inverted bounds ready to be grown.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))},
		Max: [3]float32{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))},
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Radius returns half the diagonal.
func (b Bounds) Radius() float32 {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	dz := b.Max[2] - b.Min[2]
	return float32(math.Sqrt(float64(dx*dx+dy*dy+dz*dz))) / 2
}

func (b *Bounds) add(p [3]float32) {
	for k := 0; k < 3; k++ {
		if p[k] < b.Min[k] {
			b.Min[k] = p[k]
		}
		if p[k] > b.Max[k] {
			b.Max[k] = p[k]
		}
	}
}

func (b *Bounds) union(o Bounds) {
	if o.Empty() {
		return
	}
	b.add(o.Min)
	b.add(o.Max)
}

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// translucent reports whether any vertex referenced by a triangle is not
// fully opaque. Vertices of dropped cells do not count.
func (m *Mesh) translucent() bool {
	for _, idx := range m.Indices {
		if m.Vertices[idx].Color[3] < 1 {
			return true
		}
	}
	return false
}

// buildMesh triangulates a surface grid, two triangles per cell. A cell is
// dropped when any of its corners is hidden or has a non-finite position.
func buildMesh(s *projection.Surface, colorAt func(i, j int) color.NRGBA, hidden func(i, j int) bool) *Mesh {
	n, m := s.Dims()
	mesh := &Mesh{
		Vertices: make([]Vertex, n*m),
		Bounds:   emptyBounds(),
	}
	usable := make([]bool, n*m)

	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			x, y, z := s.Point(i, j)
			idx := i*m + j
			c := colorAt(i, j)
			mesh.Vertices[idx] = Vertex{
				Position: [3]float32{float32(x), float32(y), float32(z)},
				Color: [4]float32{
					float32(c.R) / 255,
					float32(c.G) / 255,
					float32(c.B) / 255,
					float32(c.A) / 255,
				},
			}
			finite := !math.IsNaN(x+y+z) && !math.IsInf(x+y+z, 0)
			usable[idx] = finite && (hidden == nil || !hidden(i, j))
		}
	}

	for i := 0; i+1 < n; i++ {
		for j := 0; j+1 < m; j++ {
			a := uint32(i*m + j)
			b := uint32((i+1)*m + j)
			c := uint32(i*m + j + 1)
			d := uint32((i+1)*m + j + 1)
			if !usable[a] || !usable[b] || !usable[c] || !usable[d] {
				continue
			}
			mesh.Indices = append(mesh.Indices, a, b, c, c, b, d)
		}
	}

	for _, idx := range mesh.Indices {
		mesh.Bounds.add(mesh.Vertices[idx].Position)
	}
	computeNormals(mesh)
	return mesh
}

// computeNormals accumulates face normals into shared vertices, which
// smooths shading across neighbouring cells.
func computeNormals(m *Mesh) {
	for t := 0; t+2 < len(m.Indices); t += 3 {
		ia, ib, ic := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		pa, pb, pc := m.Vertices[ia].Position, m.Vertices[ib].Position, m.Vertices[ic].Position
		edge1 := [3]float32{pb[0] - pa[0], pb[1] - pa[1], pb[2] - pa[2]}
		edge2 := [3]float32{pc[0] - pa[0], pc[1] - pa[1], pc[2] - pa[2]}
		fn := cross(edge1, edge2)
		for _, idx := range []uint32{ia, ib, ic} {
			for k := 0; k < 3; k++ {
				m.Vertices[idx].Normal[k] += fn[k]
			}
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = normalize(m.Vertices[i].Normal)
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit vector; degenerate normals point up.
func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-12 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
