package hud

import (
	"fmt"
	"image/color"
	"slices"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/neowatch/internal/engine/shader"
	"github.com/Faultbox/neowatch/internal/engine/shader/shaders"
)

var (
	textColor = color.RGBA{R: 230, G: 235, B: 255, A: 255}
	backdrop  = color.RGBA{R: 0, G: 0, B: 0, A: 140}
)

// Overlay renders a block of text in the top-left corner.
type Overlay struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	tex     uint32

	lines         []string
	width, height int
}

// NewOverlay compiles the overlay shader and allocates buffers.
func NewOverlay() (*Overlay, error) {
	prog, err := shader.NewProgram(shaders.HUDVertexShader, shaders.HUDFragmentShader,
		"uScreen", "uAtlas", "uTint")
	if err != nil {
		return nil, fmt.Errorf("hud shader: %w", err)
	}
	o := &Overlay{program: prog}

	gl.GenVertexArrays(1, &o.vao)
	gl.BindVertexArray(o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)

	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return o, nil
}

// SetLines replaces the text. The texture is only rebuilt on change.
func (o *Overlay) SetLines(lines []string) {
	if slices.Equal(lines, o.lines) {
		return
	}
	o.lines = slices.Clone(lines)
	if len(lines) == 0 {
		o.width, o.height = 0, 0
		return
	}

	img := Rasterize(lines, textColor, backdrop)
	o.width, o.height = img.Bounds().Dx(), img.Bounds().Dy()
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(o.width), int32(o.height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
}

// Draw renders the overlay for a framebuffer of the given size.
func (o *Overlay) Draw(screenW, screenH int) {
	if o.width == 0 {
		return
	}
	x0, y0 := float32(Padding), float32(Padding)
	x1, y1 := x0+float32(o.width), y0+float32(o.height)
	quad := [24]float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x1, y0, 1, 0,
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	o.program.Use()
	gl.Uniform2f(o.program.Uniform("uScreen"), float32(screenW), float32(screenH))
	gl.Uniform4f(o.program.Uniform("uTint"), 1, 1, 1, 1)
	gl.Uniform1i(o.program.Uniform("uAtlas"), 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)

	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, unsafe.Pointer(&quad[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Close releases GL resources.
func (o *Overlay) Close() {
	gl.DeleteTextures(1, &o.tex)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
	o.program.Delete()
}
