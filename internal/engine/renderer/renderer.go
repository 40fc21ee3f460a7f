// Package renderer provides OpenGL rendering of scene meshes.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockfield/internal/engine/renderer/shaders"
	"github.com/Faultbox/blockfield/internal/engine/shader"
	"github.com/Faultbox/blockfield/internal/engine/terrain"
	"github.com/Faultbox/blockfield/internal/engine/texture"
	"github.com/Faultbox/blockfield/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	MeshColor  [4]float32 // Used for meshes without texture coordinates
	LightDir   mgl32.Vec3 // Direction sunlight travels
}

// Renderer draws one scene mesh per frame.
type Renderer struct {
	config Config

	program uint32

	// Uniform locations
	locProjView int32
	locColormap int32
	locTextured int32
	locColor    int32
	locLightDir int32

	// Scene mesh
	vao        uint32
	vboPos     uint32
	vboUV      uint32
	ebo        uint32
	indexCount int32
	textured   bool
	colormap   uint32
	triangles  int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])

	program, err := shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	r.program = program

	r.locProjView = shader.Uniform(program, "uProjView")
	r.locColormap = shader.Uniform(program, "uColormap")
	r.locTextured = shader.Uniform(program, "uTextured")
	r.locColor = shader.Uniform(program, "uColor")
	r.locLightDir = shader.Uniform(program, "uLightDir")

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	logger.Debug("scene program created", zap.Uint32("program", program))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.clearMesh()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Triangles returns the triangle count of the uploaded mesh.
func (r *Renderer) Triangles() int {
	return r.triangles
}

// Upload replaces the scene mesh. Any previous buffers and colormap are
// released first so nothing from an earlier scene survives a reload.
func (r *Renderer) Upload(mesh *terrain.Mesh, colormap image.Image) {
	r.clearMesh()

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	r.vboPos = uploadFloats(0, 3, mesh.Positions)

	r.textured = mesh.Textured() && colormap != nil
	if r.textured {
		r.vboUV = uploadFloats(1, 2, mesh.TexCoords)
		r.colormap = texture.Upload(colormap, texture.Nearest)
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib2f(1, 0, 0)
	}

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	if len(mesh.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(len(mesh.Indices))
	r.triangles = mesh.TriangleCount()

	logger.Debug("scene mesh uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", r.triangles),
		zap.Bool("textured", r.textured),
	)
}

// uploadFloats creates a VBO bound to attribute loc of the current VAO.
func uploadFloats(loc uint32, size int32, data []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}
	gl.VertexAttribPointer(loc, size, gl.FLOAT, false, size*4, nil)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

func (r *Renderer) clearMesh() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	for _, buf := range []*uint32{&r.vboPos, &r.vboUV, &r.ebo} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	texture.Delete(&r.colormap)
	r.indexCount = 0
	r.triangles = 0
	r.textured = false
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues the single draw call for the scene mesh.
func (r *Renderer) Draw(projView mgl32.Mat4) {
	if r.indexCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProjView, 1, false, &projView[0])
	l := r.config.LightDir
	gl.Uniform3f(r.locLightDir, l[0], l[1], l[2])

	if r.textured {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.colormap)
		gl.Uniform1i(r.locColormap, 0)
		gl.Uniform1i(r.locTextured, 1)
	} else {
		c := r.config.MeshColor
		gl.Uniform1i(r.locTextured, 0)
		gl.Uniform4f(r.locColor, c[0], c[1], c[2], c[3])
	}

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels returns the framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
