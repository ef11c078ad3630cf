// Package mesh owns vertex data on the GPU: vertex array and buffer
// wrappers and the interleaved attribute layout that ties them together.
package mesh

const floatSize = 4

// Attribute describes one float vector inside an interleaved vertex.
type Attribute struct {
	Location   uint32
	Components int32
}

// Layout is an ordered list of float attributes packed with no padding.
type Layout []Attribute

// PositionUV is three position floats followed by two texture coordinates.
var PositionUV = Layout{
	{Location: 0, Components: 3},
	{Location: 1, Components: 2},
}

// Floats returns the number of floats in one vertex.
func (l Layout) Floats() int {
	n := 0
	for _, a := range l {
		n += int(a.Components)
	}
	return n
}

// Stride returns the byte size of one vertex.
func (l Layout) Stride() int32 {
	return int32(l.Floats() * floatSize)
}

// Offset returns the byte offset of attribute i within a vertex.
func (l Layout) Offset(i int) uintptr {
	n := 0
	for _, a := range l[:i] {
		n += int(a.Components)
	}
	return uintptr(n * floatSize)
}

// VertexCount returns how many whole vertices data holds.
func (l Layout) VertexCount(data []float32) int32 {
	per := l.Floats()
	if per == 0 {
		return 0
	}
	return int32(len(data) / per)
}

// Quad is a unit square centred on the origin in the XY plane, as two
// counter-clockwise triangles in PositionUV layout.
var Quad = []float32{
	-0.5, -0.5, 0.0, 0.0, 0.0,
	0.5, -0.5, 0.0, 1.0, 0.0,
	0.5, 0.5, 0.0, 1.0, 1.0,
	0.5, 0.5, 0.0, 1.0, 1.0,
	-0.5, 0.5, 0.0, 0.0, 1.0,
	-0.5, -0.5, 0.0, 0.0, 0.0,
}
