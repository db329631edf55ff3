package shaders

import "fmt"

// Stage is a shader pipeline stage. The values are the GL shader type enums
// so a driver can pass them straight through.
type Stage uint32

const (
	Vertex   Stage = 0x8B31 // GL_VERTEX_SHADER
	Fragment Stage = 0x8B30 // GL_FRAGMENT_SHADER
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	default:
		return fmt.Sprintf("Stage(0x%x)", uint32(s))
	}
}

func (s Stage) valid() bool {
	return s == Vertex || s == Fragment
}

// Driver is the subset of the graphics driver the shader pipeline needs.
// Object ids are the driver's names; zero is never a valid object.
type Driver interface {
	CreateShader(stage Stage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompileStatus(shader uint32) bool
	ShaderInfoLogLength(shader uint32) int32
	// ShaderInfoLog returns at most bufSize bytes of the info log.
	ShaderInfoLog(shader uint32, bufSize int32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinkStatus(program uint32) bool
	ProgramInfoLogLength(program uint32) int32
	ProgramInfoLog(program uint32, bufSize int32) string
	DeleteProgram(program uint32)

	UseProgram(program uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, x, y, z float32)
	UniformMatrix4fv(location int32, m *[16]float32)
}
