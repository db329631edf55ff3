package shaders

import "github.com/go-gl/mathgl/mgl32"

// Program is a linked GPU program owned by the driver.
type Program struct {
	ID uint32

	drv           Driver
	locationCache map[string]int32
}

func newProgram(drv Driver, id uint32) *Program {
	return &Program{
		ID:            id,
		drv:           drv,
		locationCache: make(map[string]int32),
	}
}

// Close deletes the driver object. Calling it more than once is harmless.
func (p *Program) Close() {
	if p == nil || p.ID == 0 {
		return
	}
	p.drv.DeleteProgram(p.ID)
	p.ID = 0
}

func (p *Program) Use() {
	p.drv.UseProgram(p.ID)
}

// UniformLocation returns the location of a uniform, or -1 when the linker
// dropped or never saw it.
func (p *Program) UniformLocation(name string) int32 {
	location, ok := p.locationCache[name]
	if !ok {
		location = p.drv.UniformLocation(p.ID, name)
		p.locationCache[name] = location
	}
	return location
}

// The setters below act on the program currently in use and silently skip
// unknown uniforms.

func (p *Program) UniformFloat32(name string, v float32) {
	location := p.UniformLocation(name)
	if location < 0 {
		return
	}
	p.drv.Uniform1f(location, v)
}

func (p *Program) UniformVec3(name string, v mgl32.Vec3) {
	location := p.UniformLocation(name)
	if location < 0 {
		return
	}
	p.drv.Uniform3f(location, v.X(), v.Y(), v.Z())
}

func (p *Program) UniformMat4(name string, m mgl32.Mat4) {
	location := p.UniformLocation(name)
	if location < 0 {
		return
	}
	arr := [16]float32(m)
	p.drv.UniformMatrix4fv(location, &arr)
}
