// Package viewer runs the per-frame loop: drain input, move the camera,
// compute the frame's matrices, draw and present.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/pkg/math"
)

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Closing
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Closing:
		return "closing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EventSource supplies each frame's input in arrival order.
type EventSource interface {
	Update()
	Events() []input.Event
	Held(input.Key) bool
}

// Renderer draws a frame.
type Renderer interface {
	Resize(width, height int)
	Draw(t *renderer.Transforms) error
}

// Surface presents frames and reports the drawable size.
type Surface interface {
	SwapBuffers()
	DrawableSize() (int, int)
}

// Options are the fixed scene parameters.
type Options struct {
	Projection    camera.Projection
	ModelPosition math.Vec3

	// ScaleByDelta scales each movement step by elapsed time, with the
	// camera speed taken as units per 1/60 s. When false every frame
	// moves by exactly one speed step.
	ScaleByDelta bool
}

// referenceFrame is the frame time the camera speed is expressed in when
// ScaleByDelta is on.
const referenceFrame = time.Second / 60

// Loop owns the camera and drives one iteration per Step.
type Loop struct {
	state    State
	camera   *camera.FlyCamera
	events   EventSource
	renderer Renderer
	surface  Surface
	opts     Options

	width, height int
	frames        uint64
	transforms    renderer.Transforms
}

// New creates a loop in the Running state.
func New(cam *camera.FlyCamera, events EventSource, r Renderer, surface Surface, opts Options) *Loop {
	l := &Loop{
		state:    Running,
		camera:   cam,
		events:   events,
		renderer: r,
		surface:  surface,
		opts:     opts,
	}
	l.width, l.height = surface.DrawableSize()
	return l
}

// State returns the current lifecycle state.
func (l *Loop) State() State { return l.state }

// Camera returns the camera the loop drives.
func (l *Loop) Camera() *camera.FlyCamera { return l.camera }

// Frames returns how many frames have been presented.
func (l *Loop) Frames() uint64 { return l.frames }

// Transforms returns the matrices used for the last drawn frame.
func (l *Loop) Transforms() renderer.Transforms { return l.transforms }

// RequestClose moves the loop to Closing. No further frames are drawn.
func (l *Loop) RequestClose() {
	if l.state != Closing {
		logger.Info("close requested")
	}
	l.state = Closing
}

// Step runs one iteration. dt is the time since the previous iteration.
// Once the loop is Closing, Step does nothing.
func (l *Loop) Step(dt time.Duration) (State, error) {
	if l.state == Closing {
		return l.state, nil
	}

	l.events.Update()
	l.applyEvents(l.events.Events())
	// Escape may already be down when no key-down event arrives for it,
	// e.g. when focus returns with the key held.
	if l.state == Running && l.events.Held(input.KeyEscape) {
		l.RequestClose()
	}
	if l.state == Closing {
		return l.state, nil
	}

	l.move(dt)

	l.transforms = ComputeTransforms(l.camera, l.opts.Projection, l.opts.ModelPosition, l.width, l.height)
	if err := l.renderer.Draw(&l.transforms); err != nil {
		return l.state, fmt.Errorf("draw: %w", err)
	}

	l.surface.SwapBuffers()
	l.frames++
	return l.state, nil
}

// applyEvents feeds events to the camera in order. Anything after a close
// request is dropped.
func (l *Loop) applyEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			l.RequestClose()
		case input.EventKeyDown:
			if e.Key == input.KeyEscape {
				l.RequestClose()
			}
		case input.EventMouseMove:
			l.camera.PointerMove(e.X, e.Y)
		case input.EventWindowResize:
			l.width, l.height = l.surface.DrawableSize()
			l.renderer.Resize(l.width, l.height)
		}
		if l.state == Closing {
			return
		}
	}
}

func (l *Loop) move(dt time.Duration) {
	m := camera.Movement{
		Forward: l.events.Held(input.KeyW),
		Back:    l.events.Held(input.KeyS),
		Left:    l.events.Held(input.KeyA),
		Right:   l.events.Held(input.KeyD),
	}
	if !l.opts.ScaleByDelta {
		l.camera.Tick(m)
		return
	}
	scale := float32(dt.Seconds() / referenceFrame.Seconds())
	l.camera.Move(m, l.camera.Speed*scale)
}

// Run steps until the loop is Closing or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	logger.Info("starting frame loop")

	last := time.Now()
	fpsTimer := last
	var fpsFrames uint64

	for l.state == Running {
		if ctx.Err() != nil {
			l.RequestClose()
			break
		}

		now := time.Now()
		dt := now.Sub(last)
		last = now

		if _, err := l.Step(dt); err != nil {
			return err
		}

		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Uint64("frames", l.frames-fpsFrames),
				zap.Duration("dt", dt),
				zap.Float32("yaw", l.camera.Yaw()),
				zap.Float32("pitch", l.camera.Pitch()),
			)
			fpsFrames = l.frames
			fpsTimer = now
		}
	}

	logger.Info("frame loop stopped", zap.Uint64("frames", l.frames))
	return nil
}
