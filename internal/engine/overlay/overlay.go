// Package overlay draws screen-space UI panels on top of the scene.
package overlay

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockfield/internal/engine/renderer/shaders"
	"github.com/Faultbox/blockfield/internal/engine/shader"
	"github.com/Faultbox/blockfield/internal/engine/texture"
)

// Panel is an RGBA image kept in a GPU texture.
type Panel struct {
	tex           uint32
	width, height int
}

// Size returns the panel size in pixels.
func (p *Panel) Size() (int, int) {
	return p.width, p.height
}

// Overlay renders panels as textured quads in pixel coordinates.
type Overlay struct {
	program       uint32
	locProjection int32
	locTexture    int32
	vao, vbo      uint32
	screenW       int
	screenH       int
	panels        []*Panel
	quad          [24]float32
}

// New creates the overlay pipeline. Requires a current GL context.
func New(width, height int) (*Overlay, error) {
	program, err := shader.CompileProgram(shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}

	o := &Overlay{
		program:       program,
		locProjection: shader.Uniform(program, "uProjection"),
		locTexture:    shader.Uniform(program, "uTexture"),
		screenW:       width,
		screenH:       height,
	}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(o.quad)*4, nil, gl.DYNAMIC_DRAW)

	// Interleaved x, y, u, v
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return o, nil
}

// Resize updates the screen size used for pixel coordinates.
func (o *Overlay) Resize(width, height int) {
	o.screenW, o.screenH = width, height
}

// NewPanel allocates a panel owned by the overlay.
func (o *Overlay) NewPanel() *Panel {
	p := &Panel{}
	o.panels = append(o.panels, p)
	return p
}

// SetImage replaces the panel contents.
func (o *Overlay) SetImage(p *Panel, img *image.RGBA) {
	if p.tex == 0 {
		p.tex = texture.Upload(img, texture.Nearest)
	} else {
		texture.Update(p.tex, img)
	}
	p.width, p.height = img.Rect.Dx(), img.Rect.Dy()
}

// Begin sets 2D state: no depth, no culling, alpha blending.
func (o *Overlay) Begin() {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	proj := mgl32.Ortho2D(0, float32(o.screenW), float32(o.screenH), 0)
	gl.UseProgram(o.program)
	gl.UniformMatrix4fv(o.locProjection, 1, false, &proj[0])
	gl.Uniform1i(o.locTexture, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(o.vao)
}

// Draw places panel p with its top-left corner at (x, y).
func (o *Overlay) Draw(p *Panel, x, y int) {
	if p.tex == 0 {
		return
	}
	x0, y0 := float32(x), float32(y)
	x1, y1 := x0+float32(p.width), y0+float32(p.height)
	o.quad = [24]float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x1, y0, 1, 0,
	}

	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(o.quad)*4, unsafe.Pointer(&o.quad[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// End restores the 3D state the scene renderer expects.
func (o *Overlay) End() {
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Close releases every panel texture and the quad buffers.
func (o *Overlay) Close() {
	for _, p := range o.panels {
		texture.Delete(&p.tex)
	}
	o.panels = nil
	if o.vbo != 0 {
		gl.DeleteBuffers(1, &o.vbo)
	}
	if o.vao != 0 {
		gl.DeleteVertexArrays(1, &o.vao)
	}
	if o.program != 0 {
		gl.DeleteProgram(o.program)
	}
}
