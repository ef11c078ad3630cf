// Package shader loads GLSL sources from disk and links them into programs.
package shader

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/flyview/internal/logger"
	"github.com/Faultbox/flyview/pkg/math"
)

// ErrUniformNotFound is returned when a required uniform is missing or
// was optimized out of the linked program.
var ErrUniformNotFound = errors.New("uniform not found")

// Sources holds the text of a vertex and fragment shader pair.
type Sources struct {
	Vertex   string
	Fragment string
}

// ReadSources reads both shader files in full. A missing file is an error.
func ReadSources(vertexPath, fragmentPath string) (Sources, error) {
	vert, err := os.ReadFile(vertexPath)
	if err != nil {
		return Sources{}, fmt.Errorf("reading vertex shader: %w", err)
	}
	frag, err := os.ReadFile(fragmentPath)
	if err != nil {
		return Sources{}, fmt.Errorf("reading fragment shader: %w", err)
	}
	return Sources{Vertex: string(vert), Fragment: string(frag)}, nil
}

// Program is a linked GL program with its uniform locations resolved.
type Program struct {
	id       uint32
	uniforms map[string]int32
}

// Load reads, compiles and links the shader pair, then resolves the
// required uniforms.
func Load(vertexPath, fragmentPath string, required ...string) (*Program, error) {
	src, err := ReadSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return New(src, required...)
}

// New compiles and links src. Every name in required must be an active
// uniform, otherwise the program is deleted and ErrUniformNotFound returned.
func New(src Sources, required ...string) (*Program, error) {
	id, err := CompileProgram(src.Vertex, src.Fragment)
	if err != nil {
		return nil, err
	}

	p := &Program{id: id, uniforms: make(map[string]int32, len(required))}
	for _, name := range required {
		loc := GetUniform(id, name)
		if loc < 0 {
			p.Close()
			return nil, fmt.Errorf("%w: %q", ErrUniformNotFound, name)
		}
		p.uniforms[name] = loc
	}

	logger.Debug("shader program linked",
		zap.Uint32("program", id),
		zap.Strings("uniforms", required),
	)
	return p, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// SetMat4 uploads m to the named uniform. Names not passed to New are
// looked up on first use; an unknown name returns ErrUniformNotFound.
func (p *Program) SetMat4(name string, m *math.Mat4) error {
	loc, ok := p.uniforms[name]
	if !ok {
		loc = GetUniform(p.id, name)
		if loc < 0 {
			return fmt.Errorf("%w: %q", ErrUniformNotFound, name)
		}
		p.uniforms[name] = loc
	}
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	return nil
}

// Close deletes the program. It is safe to call more than once.
func (p *Program) Close() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		}))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return shader, nil
}

// infoLog reads a GL info log of n bytes. Drivers may report a zero length.
func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "(no info log)"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return gl.GoStr(&buf[0])
}

// GetUniform returns the uniform location for the given name, or -1 if the
// uniform is not active.
func GetUniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
