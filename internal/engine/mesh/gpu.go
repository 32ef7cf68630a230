package mesh

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// ErrEmpty is returned when uploading geometry without triangles.
var ErrEmpty = errors.New("mesh: empty geometry")

// GPU is an uploaded mesh.
type GPU struct {
	vao, vbo, ebo uint32
	count         int32
}

// Upload copies g into a new vertex array object.
func Upload(g *Geometry) (*GPU, error) {
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return nil, ErrEmpty
	}
	m := &GPU{count: int32(len(g.Indices))}
	vertexSize := int(unsafe.Sizeof(Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Vertices)*vertexSize, unsafe.Pointer(&g.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// Color
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)
	// TexCoord
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, int32(vertexSize), 10*4)
	gl.EnableVertexAttribArray(3)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return m, nil
}

// Draw issues the indexed draw. Uniforms must already be set.
func (m *GPU) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases GPU buffers.
func (m *GPU) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
}
