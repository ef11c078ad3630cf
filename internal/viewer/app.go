package viewer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/config"
	"github.com/Faultbox/flyview/internal/engine/camera"
	"github.com/Faultbox/flyview/internal/engine/input"
	"github.com/Faultbox/flyview/internal/engine/renderer"
	"github.com/Faultbox/flyview/internal/engine/window"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/pkg/math"
)

// App wires the SDL window, the GL renderer and the input pump into a Loop.
type App struct {
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	loop     *Loop
}

// NewApp creates the window and GPU resources described by cfg.
// Anything created before a failure is released.
func NewApp(cfg *config.Config) (*App, error) {
	logger.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{}

	var err error
	a.window, err = window.New(window.Config{
		Title:         cfg.Window.Title,
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		VSync:         cfg.Window.VSync,
		CaptureCursor: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:          width,
		Height:         height,
		ClearColor:     cfg.Scene.ClearColor,
		VertexShader:   cfg.Shaders.Vertex,
		FragmentShader: cfg.Shaders.Fragment,
		HotReload:      cfg.Shaders.HotReload,
		Texture:        cfg.Scene.Texture,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New(a.window.Center())
	a.input.SetRelative(a.window.Relative())

	cam := camera.New(CameraSettings(cfg.Camera))
	a.loop = New(cam, a.input, a.renderer, a.window, Options{
		Projection:    ProjectionSettings(cfg.Camera),
		ModelPosition: vec3(cfg.Scene.ModelPosition),
		ScaleByDelta:  cfg.Camera.ScaleByDelta,
	})

	logger.Info("viewer initialized")
	return a, nil
}

// Run drives the frame loop until the window is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	return a.loop.Run(ctx)
}

// Close releases GPU resources, then the window.
func (a *App) Close() {
	logger.Info("closing viewer")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

// CameraSettings converts the camera section of the config.
func CameraSettings(c config.CameraConfig) camera.Settings {
	return camera.Settings{
		Position:    vec3(c.Position),
		Yaw:         c.Yaw,
		Pitch:       c.Pitch,
		Sensitivity: c.Sensitivity,
		Speed:       c.Speed,
	}
}

// ProjectionSettings extracts the frustum parameters.
func ProjectionSettings(c config.CameraConfig) camera.Projection {
	return camera.Projection{FovY: c.FovY, Near: c.Near, Far: c.Far}
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
