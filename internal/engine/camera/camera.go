// Package camera provides the first-person fly camera driven by mouse look
// and WASD movement.
package camera

import (
	"github.com/Faultbox/flyview/pkg/math"
)

// Pitch limits in degrees. Staying a degree short of vertical keeps Front
// from becoming parallel to WorldUp, so the strafe vector is never zero.
const (
	MinPitch float32 = -89
	MaxPitch float32 = 89
)

// Settings configures a FlyCamera.
type Settings struct {
	Position    math.Vec3
	Yaw         float32 // degrees, -90 faces -Z
	Pitch       float32 // degrees
	Sensitivity float32 // degrees per pointer unit
	Speed       float32 // world units per tick
}

// DefaultSettings returns the starting pose: three units back on +Z,
// facing down -Z.
func DefaultSettings() Settings {
	return Settings{
		Position:    math.Vec3{X: 0, Y: 0, Z: 3},
		Yaw:         -90,
		Pitch:       0,
		Sensitivity: 0.1,
		Speed:       0.03,
	}
}

// Mouse tracks the previous pointer sample so motion can be turned into
// deltas.
type Mouse struct {
	LastX, LastY float64
	// FirstSample is true until the first pointer event has been seen.
	FirstSample bool
}

// Movement is the set of directional keys held during a tick.
type Movement struct {
	Forward, Back, Left, Right bool
}

// Any reports whether any direction is held.
func (m Movement) Any() bool {
	return m.Forward || m.Back || m.Left || m.Right
}

// FlyCamera is a free-look camera. Front is derived from Yaw and Pitch and
// is always unit length.
type FlyCamera struct {
	Position math.Vec3
	WorldUp  math.Vec3

	yaw   float32
	pitch float32
	front math.Vec3

	Sensitivity float32
	Speed       float32

	mouse Mouse
}

// New creates a camera at the pose described by s.
func New(s Settings) *FlyCamera {
	c := &FlyCamera{
		Position:    s.Position,
		WorldUp:     math.Vec3{X: 0, Y: 1, Z: 0},
		Sensitivity: s.Sensitivity,
		Speed:       s.Speed,
	}
	c.SetOrientation(s.Yaw, s.Pitch)
	c.ResetMouse()
	return c
}

// Yaw returns the horizontal look angle in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the vertical look angle in degrees.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Front returns the unit look direction.
func (c *FlyCamera) Front() math.Vec3 { return c.front }

// Mouse returns the pointer tracking state.
func (c *FlyCamera) Mouse() Mouse { return c.mouse }

// Right returns the unit strafe direction, perpendicular to Front and WorldUp.
func (c *FlyCamera) Right() math.Vec3 {
	return c.front.Cross(c.WorldUp).Normalize()
}

// SetOrientation sets yaw and pitch (clamped) and recomputes Front.
func (c *FlyCamera) SetOrientation(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = math.Clamp(pitch, MinPitch, MaxPitch)
	c.front = FrontFromAngles(c.yaw, c.pitch)
}

// ResetMouse forgets the previous pointer sample, so the next
// PointerMove causes no rotation.
func (c *FlyCamera) ResetMouse() {
	c.mouse = Mouse{FirstSample: true}
}

// PointerMove feeds an absolute pointer position. The first call after
// New or ResetMouse only records the position. Later calls rotate by the
// difference from the previous sample; screen Y grows downward so the
// vertical delta is inverted.
func (c *FlyCamera) PointerMove(x, y float64) {
	if c.mouse.FirstSample {
		c.mouse = Mouse{LastX: x, LastY: y}
		return
	}

	dx := float32(x-c.mouse.LastX) * c.Sensitivity
	dy := float32(c.mouse.LastY-y) * c.Sensitivity
	c.mouse.LastX, c.mouse.LastY = x, y

	c.SetOrientation(c.yaw+dx, c.pitch+dy)
}

// Tick moves the camera by one fixed step of Speed per held key.
// The step does not depend on frame time.
func (c *FlyCamera) Tick(m Movement) {
	c.Move(m, c.Speed)
}

// Move translates the camera by step along Front for forward/back and
// along Right for strafing. Opposing keys cancel.
func (c *FlyCamera) Move(m Movement, step float32) {
	if !m.Any() {
		return
	}
	if m.Forward {
		c.Position = c.Position.Add(c.front.Scale(step))
	}
	if m.Back {
		c.Position = c.Position.Sub(c.front.Scale(step))
	}
	right := c.Right()
	if m.Left {
		c.Position = c.Position.Sub(right.Scale(step))
	}
	if m.Right {
		c.Position = c.Position.Add(right.Scale(step))
	}
}

// ViewMatrix looks from Position along Front.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.front), c.WorldUp)
}

// FrontFromAngles converts yaw and pitch in degrees into a unit direction.
func FrontFromAngles(yaw, pitch float32) math.Vec3 {
	y := math.Radians(yaw)
	p := math.Radians(pitch)
	return math.Vec3{
		X: math.Cos(y) * math.Cos(p),
		Y: math.Sin(p),
		Z: math.Sin(y) * math.Cos(p),
	}.Normalize()
}
