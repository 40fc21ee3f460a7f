// Package texture uploads images to OpenGL textures.
package texture

import (
	"image"
	"image/draw"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ToRGBA returns img as tightly packed RGBA with its origin at (0, 0).
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Filter selects texture sampling.
type Filter int32

const (
	Nearest Filter = gl.NEAREST
	Linear  Filter = gl.LINEAR
)

// Upload creates a 2D texture from img and returns its ID.
func Upload(img image.Image, filter Filter) uint32 {
	rgba := ToRGBA(img)

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int32(filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int32(filter))

	w, h := int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())
	var pix unsafe.Pointer
	if len(rgba.Pix) > 0 {
		pix = unsafe.Pointer(&rgba.Pix[0])
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Update replaces the contents of an existing texture, resizing it.
func Update(tex uint32, img *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var pix unsafe.Pointer
	if len(img.Pix) > 0 {
		pix = unsafe.Pointer(&img.Pix[0])
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Delete releases a texture. Zero IDs are ignored.
func Delete(tex *uint32) {
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}
