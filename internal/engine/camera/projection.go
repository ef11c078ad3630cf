package camera

import "github.com/Faultbox/flyview/pkg/math"

// Projection holds the perspective parameters.
type Projection struct {
	FovY float32 // vertical field of view, degrees
	Near float32
	Far  float32
}

// DefaultProjection is a 45 degree frustum from 0.1 to 100 units.
func DefaultProjection() Projection {
	return Projection{FovY: 45, Near: 0.1, Far: 100}
}

// Matrix returns the projection for a viewport of the given size.
// A zero height (minimized window) is treated as square.
func (p Projection) Matrix(width, height int) math.Mat4 {
	aspect := float32(1)
	if height > 0 && width > 0 {
		aspect = float32(width) / float32(height)
	}
	return math.Perspective(math.Radians(p.FovY), aspect, p.Near, p.Far)
}
