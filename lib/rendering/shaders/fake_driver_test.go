package shaders_test

import (
	"strings"

	"github.com/fosdem/glboot/lib/rendering/shaders"
)

type fakeShader struct {
	stage    shaders.Stage
	source   string
	compiled bool
	log      string
}

type fakeProgram struct {
	attached []uint32
	linked   bool
	log      string
}

// fakeDriver behaves like a tiny GLSL compiler: sources containing
// "syntax error" fail to compile, and programs link only from exactly one
// vertex and one fragment shader.
type fakeDriver struct {
	nextID   uint32
	shaders  map[uint32]*fakeShader
	programs map[uint32]*fakeProgram

	deletedShaders  []uint32
	deletedPrograms []uint32
	inUse           uint32

	compileLog string
	uniforms   map[string]int32
	lookups    int
	set        map[int32][]float32
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		shaders:    make(map[uint32]*fakeShader),
		programs:   make(map[uint32]*fakeProgram),
		compileLog: "0:1(1): error: syntax error, unexpected IDENTIFIER",
		uniforms:   map[string]int32{"time": 0, "colour": 1, "model": 2},
		set:        make(map[int32][]float32),
	}
}

func (d *fakeDriver) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *fakeDriver) CreateShader(stage shaders.Stage) uint32 {
	id := d.id()
	d.shaders[id] = &fakeShader{stage: stage}
	return id
}

func (d *fakeDriver) ShaderSource(shader uint32, source string) {
	d.shaders[shader].source = source
}

func (d *fakeDriver) CompileShader(shader uint32) {
	s := d.shaders[shader]
	if strings.Contains(s.source, "syntax error") {
		s.log = d.compileLog
		return
	}
	s.compiled = true
}

func (d *fakeDriver) ShaderCompileStatus(shader uint32) bool {
	return d.shaders[shader].compiled
}

// GL reports the log length including the terminating NUL.
func (d *fakeDriver) ShaderInfoLogLength(shader uint32) int32 {
	l := d.shaders[shader].log
	if l == "" {
		return 0
	}
	return int32(len(l) + 1)
}

func (d *fakeDriver) ShaderInfoLog(shader uint32, bufSize int32) string {
	return truncate(d.shaders[shader].log, bufSize)
}

func (d *fakeDriver) DeleteShader(shader uint32) {
	delete(d.shaders, shader)
	d.deletedShaders = append(d.deletedShaders, shader)
}

func (d *fakeDriver) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &fakeProgram{}
	return id
}

func (d *fakeDriver) AttachShader(program, shader uint32) {
	p := d.programs[program]
	p.attached = append(p.attached, shader)
}

func (d *fakeDriver) LinkProgram(program uint32) {
	p := d.programs[program]
	var vertex, fragment int
	for _, id := range p.attached {
		s, ok := d.shaders[id]
		if !ok || !s.compiled {
			p.log = "error: linking with uncompiled/unspecialized shader"
			return
		}
		switch s.stage {
		case shaders.Vertex:
			vertex++
		case shaders.Fragment:
			fragment++
		}
	}
	if vertex != 1 || fragment != 1 {
		p.log = "error: program lacks a fragment shader"
		return
	}
	p.linked = true
}

func (d *fakeDriver) ProgramLinkStatus(program uint32) bool {
	return d.programs[program].linked
}

func (d *fakeDriver) ProgramInfoLogLength(program uint32) int32 {
	l := d.programs[program].log
	if l == "" {
		return 0
	}
	return int32(len(l) + 1)
}

func (d *fakeDriver) ProgramInfoLog(program uint32, bufSize int32) string {
	return truncate(d.programs[program].log, bufSize)
}

func (d *fakeDriver) DeleteProgram(program uint32) {
	delete(d.programs, program)
	d.deletedPrograms = append(d.deletedPrograms, program)
}

func (d *fakeDriver) UseProgram(program uint32) {
	d.inUse = program
}

func (d *fakeDriver) UniformLocation(program uint32, name string) int32 {
	d.lookups++
	location, ok := d.uniforms[name]
	if !ok {
		return -1
	}
	return location
}

func (d *fakeDriver) Uniform1f(location int32, v float32) {
	d.set[location] = []float32{v}
}

func (d *fakeDriver) Uniform3f(location int32, x, y, z float32) {
	d.set[location] = []float32{x, y, z}
}

func (d *fakeDriver) UniformMatrix4fv(location int32, m *[16]float32) {
	d.set[location] = m[:]
}

// truncate mimics glGet*InfoLog: at most bufSize-1 characters fit next to
// the terminator.
func truncate(l string, bufSize int32) string {
	if bufSize <= 0 {
		return ""
	}
	if int(bufSize-1) < len(l) {
		return l[:bufSize-1]
	}
	return l
}
