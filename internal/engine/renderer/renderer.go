// Package renderer draws a scene.Figure with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/bathy3d/internal/logger"
	"github.com/Faultbox/bathy3d/pkg/math"
	"github.com/Faultbox/bathy3d/pkg/scene"
)

// Headlight terms, matching the software rasterizer.
const (
	ambient = 0.3
	diffuse = 0.7
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// meshBuffers holds the GPU objects of one uploaded actor.
type meshBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
	translucent   bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program     uint32
	locViewProj int32
	locLightDir int32
	locAmbient  int32
	locDiffuse  int32

	meshes []meshBuffers
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	r.program, err = compileProgram(surfaceVertexShader, surfaceFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.locViewProj = uniform(r.program, "uViewProj")
	r.locLightDir = uniform(r.program, "uLightDir")
	r.locAmbient = uniform(r.program, "uAmbient")
	r.locDiffuse = uniform(r.program, "uDiffuse")

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.release()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize sets the viewport to the drawable size in pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Upload replaces the GPU meshes with the actors of fig.
func (r *Renderer) Upload(fig *scene.Figure) {
	r.release()
	for _, a := range fig.Actors() {
		if a.Mesh.Triangles() == 0 {
			continue
		}
		r.meshes = append(r.meshes, uploadMesh(a.Mesh, a.Translucent))
		logger.Debug("actor uploaded",
			zap.String("actor", a.Name),
			zap.Int("vertices", len(a.Mesh.Vertices)),
			zap.Int("triangles", a.Mesh.Triangles()),
		)
	}
}

// Draw renders the uploaded meshes with the camera and background of fig.
// Opaque meshes go first; translucent ones are blended without writing depth.
func (r *Renderer) Draw(fig *scene.Figure) {
	bg := fig.Config().Background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj, eye := fig.ViewProjection()
	v := fig.View()
	light := eye.Sub(math.V3(v.FocalPoint[0], v.FocalPoint[1], v.FocalPoint[2])).Normalize()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locViewProj, 1, false, viewProj.Ptr())
	gl.Uniform3f(r.locLightDir, light.X, light.Y, light.Z)
	gl.Uniform1f(r.locAmbient, ambient)
	gl.Uniform1f(r.locDiffuse, diffuse)

	for _, translucent := range []bool{false, true} {
		if translucent {
			gl.Enable(gl.BLEND)
			gl.DepthMask(false)
		}
		for _, m := range r.meshes {
			if m.translucent != translucent {
				continue
			}
			gl.BindVertexArray(m.vao)
			gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
		}
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}

func uploadMesh(mesh *scene.Mesh, translucent bool) meshBuffers {
	var b meshBuffers
	b.indexCount = int32(len(mesh.Indices))
	b.translucent = translucent

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	vertexSize := int(unsafe.Sizeof(scene.Vertex{}))
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// Color
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return b
}

func (r *Renderer) release() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil
}
