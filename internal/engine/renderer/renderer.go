// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/flyview/internal/engine/mesh"
	"github.com/Faultbox/flyview/internal/engine/shader"
	"github.com/Faultbox/flyview/internal/engine/texture"
	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/pkg/math"
)

// Uniform names every viewer shader program must declare.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
)

// RequiredUniforms lists the matrix uniforms uploaded each frame.
var RequiredUniforms = []string{UniformModel, UniformView, UniformProjection}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	ClearColor [4]float32

	VertexShader   string
	FragmentShader string
	HotReload      bool

	Texture string // empty uses the built-in checkerboard
}

// Transforms are the three matrices uploaded for one frame.
type Transforms struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
}

// Renderer draws the textured quad.
type Renderer struct {
	config Config

	program *shader.Program
	quad    *mesh.Mesh
	tex     *texture.Texture
	watcher *shader.Watcher
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
// On error every resource created so far is released.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}
	ok := false
	defer func() {
		if !ok {
			r.Close()
		}
	}()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Load(cfg.VertexShader, cfg.FragmentShader, RequiredUniforms...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.quad, err = mesh.New(mesh.Quad, mesh.PositionUV)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad: %w", err)
	}

	img := texture.DefaultImage()
	if cfg.Texture != "" {
		img, err = texture.LoadImage(cfg.Texture)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture: %w", err)
		}
	}
	r.tex, err = texture.New(img)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	if cfg.HotReload {
		r.watcher, err = shader.Watch(cfg.VertexShader, cfg.FragmentShader)
		if err != nil {
			return nil, fmt.Errorf("failed to watch shaders: %w", err)
		}
		logger.Info("shader hot reload enabled",
			zap.String("vertex", cfg.VertexShader),
			zap.String("fragment", cfg.FragmentShader),
		)
	}

	CheckErrors("init")
	ok = true
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.watcher != nil {
		if err := r.watcher.Close(); err != nil {
			logger.Warn("closing shader watcher", zap.Error(err))
		}
		r.watcher = nil
	}
	if r.tex != nil {
		r.tex.Close()
	}
	if r.quad != nil {
		r.quad.Close()
	}
	if r.program != nil {
		r.program.Close()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw clears the frame and draws the quad with the given transforms.
func (r *Renderer) Draw(t *Transforms) error {
	if r.watcher != nil && r.watcher.Changed() {
		r.reloadShaders()
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	if err := r.program.SetMat4(UniformView, &t.View); err != nil {
		return err
	}
	if err := r.program.SetMat4(UniformProjection, &t.Projection); err != nil {
		return err
	}
	if err := r.program.SetMat4(UniformModel, &t.Model); err != nil {
		return err
	}

	r.tex.Bind(0)
	r.quad.Draw()

	CheckErrors("draw")
	return nil
}

// reloadShaders swaps in a freshly built program. A broken edit is logged
// and the current program stays in use.
func (r *Renderer) reloadShaders() {
	p, err := shader.Load(r.config.VertexShader, r.config.FragmentShader, RequiredUniforms...)
	if err != nil {
		logger.Error("shader reload failed, keeping previous program", zap.Error(err))
		return
	}
	r.program.Close()
	r.program = p
	logger.Info("shaders reloaded", zap.Uint32("program", p.ID()))
}

// CheckErrors drains the GL error queue, logging each error against
// context. It returns the number of errors seen.
func CheckErrors(context string) int {
	n := 0
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Warn("OpenGL error",
			zap.String("context", context),
			zap.String("error", ErrorName(code)),
			zap.Uint32("code", code),
		)
		n++
		// A lost context reports errors forever.
		if n >= 16 {
			break
		}
	}
	return n
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}
