package mesh

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/logger"
)

// VertexArray owns a GL vertex array object.
type VertexArray struct {
	id uint32
}

// NewVertexArray generates a vertex array object.
func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

// Bind makes the vertex array current.
func (va *VertexArray) Bind() { gl.BindVertexArray(va.id) }

// Unbind clears the current vertex array.
func (va *VertexArray) Unbind() { gl.BindVertexArray(0) }

// Close deletes the vertex array. It is safe to call more than once.
func (va *VertexArray) Close() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}

// VertexBuffer owns a GL array buffer filled once with static data.
type VertexBuffer struct {
	id uint32
}

// NewVertexBuffer uploads data into a new static array buffer. The buffer
// is left bound to GL_ARRAY_BUFFER.
func NewVertexBuffer(data []float32) *VertexBuffer {
	vb := &VertexBuffer{}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*floatSize, gl.Ptr(data), gl.STATIC_DRAW)
	return vb
}

// Bind makes the buffer the current array buffer.
func (vb *VertexBuffer) Bind() { gl.BindBuffer(gl.ARRAY_BUFFER, vb.id) }

// Unbind clears the current array buffer.
func (vb *VertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

// Close deletes the buffer. It is safe to call more than once.
func (vb *VertexBuffer) Close() {
	if vb.id != 0 {
		gl.DeleteBuffers(1, &vb.id)
		vb.id = 0
	}
}

// Mesh pairs a vertex array with the buffer feeding it.
type Mesh struct {
	vao      *VertexArray
	vbo      *VertexBuffer
	vertices int32
}

// New uploads data and records layout in a fresh vertex array.
func New(data []float32, layout Layout) (*Mesh, error) {
	count := layout.VertexCount(data)
	if count == 0 || len(data)%layout.Floats() != 0 {
		return nil, fmt.Errorf("vertex data has %d floats, not a multiple of %d", len(data), layout.Floats())
	}

	m := &Mesh{vao: NewVertexArray(), vertices: count}
	m.vao.Bind()
	m.vbo = NewVertexBuffer(data)

	stride := layout.Stride()
	for i, a := range layout {
		gl.VertexAttribPointerWithOffset(a.Location, a.Components, gl.FLOAT, false, stride, layout.Offset(i))
		gl.EnableVertexAttribArray(a.Location)
	}

	m.vao.Unbind()
	m.vbo.Unbind()

	logger.Debug("mesh created",
		zap.Uint32("vao", m.vao.id),
		zap.Uint32("vbo", m.vbo.id),
		zap.Int32("vertices", count),
	)
	return m, nil
}

// Draw issues one non-indexed triangle draw of every vertex.
func (m *Mesh) Draw() {
	m.vao.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertices)
	m.vao.Unbind()
}

// Vertices returns the number of vertices drawn per call.
func (m *Mesh) Vertices() int32 {
	return m.vertices
}

// Close releases the vertex array and buffer.
func (m *Mesh) Close() {
	m.vao.Close()
	if m.vbo != nil {
		m.vbo.Close()
	}
}
