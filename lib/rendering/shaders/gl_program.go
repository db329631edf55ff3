package shaders

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glboot/lib/cstr"
	"github.com/fosdem/glboot/lib/metrics"
)

func logger() *slog.Logger {
	return slog.With("module", "shaders")
}

// CompileError is returned when the driver rejects a shader source.
type CompileError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("ERROR::SHADER::%s::COMPILATION_FAILED: %s", e.Stage, e.Log)
}

// LinkError is returned when the driver refuses to link a program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("ERROR::SHADER::PROGRAM::LINKING_FAILED: %s", e.Log)
}

// Shader is a compiled shader object owned by the driver.
type Shader struct {
	ID    uint32
	Stage Stage
	Path  string

	drv Driver
}

// Close deletes the driver object. Calling it more than once is harmless.
func (s *Shader) Close() {
	if s == nil || s.ID == 0 {
		return
	}
	s.drv.DeleteShader(s.ID)
	s.ID = 0
}

// CompileShaderSource reads filename and compiles it as the given stage.
// The file is read before any driver object is created, so an I/O error
// leaves nothing behind.
func CompileShaderSource(drv Driver, filename string, stage Stage) (*Shader, error) {
	if !stage.valid() {
		return nil, fmt.Errorf("cannot compile %s: unsupported shader stage %s", filename, stage)
	}

	source, err := cstr.FromFile(filename)
	if err != nil {
		metrics.ShadersCompiled.WithLabelValues(stage.String(), metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("could not read %s shader: %w", stage, err)
	}

	shader := drv.CreateShader(stage)
	if shader == 0 {
		metrics.ShadersCompiled.WithLabelValues(stage.String(), metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("driver could not create a %s shader object", stage)
	}

	drv.ShaderSource(shader, cstr.String(source))
	drv.CompileShader(shader)

	if !drv.ShaderCompileStatus(shader) {
		logLength := drv.ShaderInfoLogLength(shader)
		clog := drv.ShaderInfoLog(shader, logLength)
		drv.DeleteShader(shader)

		metrics.ShadersCompiled.WithLabelValues(stage.String(), metrics.ResultFailed).Inc()
		return nil, &CompileError{Stage: stage, Path: filename, Log: clog}
	}

	metrics.ShadersCompiled.WithLabelValues(stage.String(), metrics.ResultOK).Inc()
	logger().Debug("compiled shader", "stage", stage.String(), "path", filename)

	return &Shader{ID: shader, Stage: stage, Path: filename, drv: drv}, nil
}

// LinkProgram links a vertex and a fragment shader into a program. The
// shaders stay owned by the caller.
func LinkProgram(drv Driver, vertexShader, fragmentShader *Shader) (*Program, error) {
	if vertexShader == nil || vertexShader.ID == 0 || fragmentShader == nil || fragmentShader.ID == 0 {
		return nil, fmt.Errorf("cannot link a program from a closed or missing shader")
	}

	program := drv.CreateProgram()
	if program == 0 {
		metrics.ProgramsLinked.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, fmt.Errorf("driver could not create a program object")
	}

	drv.AttachShader(program, vertexShader.ID)
	drv.AttachShader(program, fragmentShader.ID)
	drv.LinkProgram(program)

	if !drv.ProgramLinkStatus(program) {
		logLength := drv.ProgramInfoLogLength(program)
		logmsg := drv.ProgramInfoLog(program, logLength)
		drv.DeleteProgram(program)

		metrics.ProgramsLinked.WithLabelValues(metrics.ResultFailed).Inc()
		return nil, &LinkError{Log: logmsg}
	}

	metrics.ProgramsLinked.WithLabelValues(metrics.ResultOK).Inc()
	logger().Debug("linked program", "program", program)

	return newProgram(drv, program), nil
}

// BuildProgram compiles both stages and links them. The intermediate shader
// objects are released whether or not linking succeeds.
func BuildProgram(drv Driver, vertexPath, fragmentPath string) (*Program, error) {
	vertexShader, err := CompileShaderSource(drv, vertexPath, Vertex)
	if err != nil {
		return nil, err
	}
	defer vertexShader.Close()

	fragmentShader, err := CompileShaderSource(drv, fragmentPath, Fragment)
	if err != nil {
		return nil, err
	}
	defer fragmentShader.Close()

	program, err := LinkProgram(drv, vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}

	logger().Info("built program", "vertex", vertexPath, "fragment", fragmentPath)
	return program, nil
}
